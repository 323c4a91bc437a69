package email

import (
	"bytes"
	"errors"
	"testing"

	"jobboard-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestSendNewApplicationEmail(t *testing.T) {
	svc := NewEmailService(&config.Config{
		SMTPHost: "smtp.example.com", SMTPPort: 587,
		SMTPUsername: "mailer", SMTPPassword: "secret", SMTPFromEmail: "noreply@example.com",
	})
	d := &recordingDialer{}
	svc.dialer = d

	err := svc.SendNewApplicationEmail("boss@example.com", NewApplicationEmailData{
		EmployerName:   "Erin",
		JobTitle:       "Go Engineer",
		ApplicantName:  "Sam",
		ApplicantEmail: "sam@example.com",
		CoverLetter:    "<b>hire me</b>",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"boss@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"New application: Go Engineer"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"sam@example.com"}, msg.GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<b>hire me</b>")
}

func TestSendNewApplicationEmailTransportError(t *testing.T) {
	svc := &EmailService{fromEmail: "noreply@example.com", dialer: &recordingDialer{err: errors.New("connection refused")}}
	err := svc.SendNewApplicationEmail("boss@example.com", NewApplicationEmailData{JobTitle: "Go Engineer"})
	assert.ErrorContains(t, err, "failed to send email")
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewEmailService(&config.Config{}).IsConfigured())
	assert.True(t, NewEmailService(&config.Config{SMTPHost: "h", SMTPUsername: "u", SMTPPassword: "p"}).IsConfigured())
	var nilSvc *EmailService
	assert.False(t, nilSvc.IsConfigured())
}

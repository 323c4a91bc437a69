package email

import (
	"bytes"
	"fmt"
	"html/template"

	"jobboard-backend/config"

	"gopkg.in/gomail.v2"
)

// dialer is satisfied by *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	username  string
	password  string
	fromEmail string
	dialer    dialer
}

// NewApplicationEmailData holds the data for the employer's new-application email
type NewApplicationEmailData struct {
	EmployerName   string
	JobTitle       string
	ApplicantName  string
	ApplicantEmail string
	CoverLetter    string
	DashboardURL   string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

const newApplicationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New application</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New application for {{.JobTitle}}</h1>
        </div>
        <div class="content">
            <p>Hi {{.EmployerName}},</p>
            <p>{{.ApplicantName}} ({{.ApplicantEmail}}) applied to <strong>{{.JobTitle}}</strong>.</p>
            {{if .CoverLetter}}<div class="message-box">{{.CoverLetter}}</div>{{end}}
            {{if .DashboardURL}}<p><a href="{{.DashboardURL}}">Review applications</a></p>{{end}}
        </div>
        <div class="footer">
            <p>You receive this email because you posted this job.</p>
        </div>
    </div>
</body>
</html>`

var newApplicationTmpl = template.Must(template.New("new_application").Parse(newApplicationTemplate))

// SendNewApplicationEmail notifies an employer that someone applied to their job.
func (s *EmailService) SendNewApplicationEmail(to string, data NewApplicationEmailData) error {
	var body bytes.Buffer
	if err := newApplicationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromEmail)
	m.SetHeader("To", to)
	if data.ApplicantEmail != "" {
		m.SetHeader("Reply-To", data.ApplicantEmail)
	}
	m.SetHeader("Subject", fmt.Sprintf("New application: %s", data.JobTitle))
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s != nil && s.host != "" && s.username != "" && s.password != ""
}

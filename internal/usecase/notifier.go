package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/email"

	"github.com/google/uuid"
)

// Mailer sends the employer e-mail. *email.EmailService implements it.
type Mailer interface {
	IsConfigured() bool
	SendNewApplicationEmail(to string, data email.NewApplicationEmailData) error
}

// Notifier stores a database notification for the employer and, when SMTP is
// configured, mails them in the background.
type Notifier struct {
	notificationRepo domain.NotificationRepository
	mailer           Mailer
	dashboardURL     string
	wg               sync.WaitGroup
	now              func() time.Time
}

func NewNotifier(notificationRepo domain.NotificationRepository, mailer Mailer, frontendURL string) *Notifier {
	dashboardURL := ""
	if frontendURL != "" {
		dashboardURL = frontendURL + "/dashboard/applications"
	}
	return &Notifier{
		notificationRepo: notificationRepo,
		mailer:           mailer,
		dashboardURL:     dashboardURL,
		now:              time.Now,
	}
}

func (n *Notifier) NotifyNewApplication(ctx context.Context, employer *domain.User, job *domain.Job, applicant *domain.User, coverLetter *string) error {
	data, err := json.Marshal(domain.NewApplicationData{
		JobID:         job.ID,
		JobTitle:      job.Title,
		ApplicantID:   applicant.ID,
		ApplicantName: applicant.Name,
		CoverLetter:   coverLetter,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	notification := &domain.Notification{
		ID:        uuid.New(),
		UserID:    employer.ID,
		Type:      domain.NotificationNewApplication,
		Data:      data,
		CreatedAt: n.now().UTC(),
	}
	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	if n.mailer != nil && n.mailer.IsConfigured() {
		mail := email.NewApplicationEmailData{
			EmployerName:   employer.Name,
			JobTitle:       job.Title,
			ApplicantName:  applicant.Name,
			ApplicantEmail: applicant.Email,
			CoverLetter:    deref(coverLetter),
			DashboardURL:   n.dashboardURL,
		}
		n.wg.Add(1)
		go func(to string) {
			defer n.wg.Done()
			if err := n.mailer.SendNewApplicationEmail(to, mail); err != nil {
				slog.Error("failed to send new application email",
					"job_id", job.ID, "employer_id", employer.ID, "error", err)
			}
		}(employer.Email)
	}
	return nil
}

// Wait blocks until queued e-mails have been handed to the SMTP server.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

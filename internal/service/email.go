package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/templui/okrledger/internal/model"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// SendMissingReviewsEmail reminds a user about overdue and due-now months.
// Nothing is sent when missing is empty.
func (s *EmailService) SendMissingReviewsEmail(user *model.User, missing []model.MissingReview) error {
	if len(missing) == 0 {
		return nil
	}

	subject, body := missingReviewsEmailTemplate(user.Name, missing, s.appURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "missing_reviews", "to", user.Email, "subject", subject, "missing", len(missing))
		return nil
	}

	return s.send(user.Email, subject, body, "missing_reviews")
}

func (s *EmailService) send(to, subject, body, kind string) error {
	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}

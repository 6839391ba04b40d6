package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mindtrack/mindtrack/internal/model"
	"github.com/resend/resend-go/v2"
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

func (s *EmailService) SendAchievementEmail(ctx context.Context, email, name string, achievements []*model.Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	subject, body := achievementEmailTemplate(name, achievements, s.appURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "achievement", "to", email, "subject", subject, "count", len(achievements))
		return nil
	}

	return s.send(ctx, "achievement", email, subject, body)
}

func (s *EmailService) SendExportReadyEmail(ctx context.Context, email, name, downloadURL string) error {
	subject, body := exportReadyEmailTemplate(name, downloadURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "export_ready", "to", email, "subject", subject, "url", downloadURL)
		return nil
	}

	return s.send(ctx, "export_ready", email, subject, body)
}

func (s *EmailService) send(ctx context.Context, kind, email, subject, body string) error {
	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", email)
	}
	return err
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/templui/habits/internal/model"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
	}
}

// Configured reports whether emails can actually be delivered.
func (s *EmailService) Configured() bool {
	return s.isDev || s.client != nil
}

func (s *EmailService) SendDigest(ctx context.Context, to string, digest *model.Digest) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "digest", "to", to, "subject", digest.Subject, "days", len(digest.Lines))
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: digest.Subject,
		Html:    digest.HTML,
		Text:    digest.Text,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "digest", "to", to)
	}
	return err
}

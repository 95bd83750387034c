// Package email sends outbound service mail through SendGrid. This is the
// assistant's own mail (provider-failure alerts), not the user's Gmail
// traffic.
package email

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service sends transactional emails via SendGrid
type Service struct {
	apiKey    string
	fromEmail string
}

// NewService creates a new email service instance
func NewService(apiKey, fromEmail string) *Service {
	if fromEmail == "" {
		fromEmail = "noreply@inboxpilot.app"
	}
	return &Service{
		apiKey:    apiKey,
		fromEmail: fromEmail,
	}
}

// SendProviderFailureEmail alerts a user that their AI provider rejected a
// call (bad key, exhausted quota, insufficient balance)
func (s *Service) SendProviderFailureEmail(userEmail, errorType, rawMessage string) error {
	if s.apiKey == "" {
		return fmt.Errorf("SendGrid API key not configured")
	}

	from := mail.NewEmail("Inbox Pilot", s.fromEmail)
	to := mail.NewEmail("", userEmail)

	subject := "Your email assistant hit an AI provider problem"
	body := fmt.Sprintf(`Your automated email rules could not run because the AI provider rejected the request.

Problem: %s
Provider message: %s
Time: %s

Automated rules that need AI-generated values will keep failing until this is fixed. Check your AI provider settings and API key.`,
		errorType, rawMessage, time.Now().UTC().Format(time.RFC3339))

	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

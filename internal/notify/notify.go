// Package notify fans a classified provider failure out to the user: a
// persisted in-app notification plus a best-effort email alert.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Store persists user-visible notifications
type Store interface {
	Add(ctx context.Context, userEmail, errorType, message string) error
}

// Mailer delivers failure alerts by email
type Mailer interface {
	SendProviderFailureEmail(userEmail, errorType, rawMessage string) error
}

// Service implements the LLM gateway's notification sink
type Service struct {
	store  Store
	mailer Mailer
	logger zerolog.Logger
}

// NewService creates a notification service. mailer may be nil when no
// email delivery is configured.
func NewService(store Store, mailer Mailer, logger zerolog.Logger) *Service {
	return &Service{store: store, mailer: mailer, logger: logger}
}

// Notify records the failure for the user. The stored notification is the
// durable record; email delivery failures are logged and swallowed.
func (s *Service) Notify(ctx context.Context, userEmail, errorType, message string) error {
	if err := s.store.Add(ctx, userEmail, errorType, message); err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendProviderFailureEmail(userEmail, errorType, message); err != nil {
			s.logger.Warn().Err(err).Str("user_email", userEmail).
				Msg("Failed to send provider failure email")
		}
	}
	return nil
}

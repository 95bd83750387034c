package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inboxpilot/internal/models"
)

// NotificationStore persists user-facing error messages (banner entries)
type NotificationStore struct {
	db *sqlx.DB
}

// NewNotificationStore creates a new notification store
func NewNotificationStore(db *sqlx.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Add records a user-visible error message
func (s *NotificationStore) Add(ctx context.Context, userEmail, errorType, message string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_notifications (user_email, error_type, message)
		VALUES ($1, $2, $3)`, userEmail, errorType, message)
	if err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

// Unseen returns the user's unseen notifications, newest first
func (s *NotificationStore) Unseen(ctx context.Context, userEmail string) ([]models.UserNotification, error) {
	var notifications []models.UserNotification
	err := s.db.SelectContext(ctx, &notifications, `
		SELECT id, user_email, error_type, message, seen, created_at
		FROM user_notifications
		WHERE user_email = $1 AND seen = FALSE
		ORDER BY created_at DESC`, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkSeen flags all of the user's notifications as seen
func (s *NotificationStore) MarkSeen(ctx context.Context, userEmail string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_notifications SET seen = TRUE WHERE user_email = $1`, userEmail)
	if err != nil {
		return fmt.Errorf("failed to mark notifications seen: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inboxpilot/internal/models"
)

// UserStore reads and writes connected mailbox owners
type UserStore struct {
	db *sqlx.DB
}

// NewUserStore creates a new user store
func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// GetUser returns a user by id
func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, about, ai_provider, ai_model, ai_api_key,
		       gmail_token, created_at, updated_at
		FROM users
		WHERE id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return &user, nil
}

// UpsertUser inserts a user or refreshes its mutable fields
func (s *UserStore) UpsertUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, about, ai_provider, ai_model, ai_api_key, gmail_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			about = EXCLUDED.about,
			ai_provider = EXCLUDED.ai_provider,
			ai_model = EXCLUDED.ai_model,
			ai_api_key = EXCLUDED.ai_api_key,
			gmail_token = EXCLUDED.gmail_token,
			updated_at = CURRENT_TIMESTAMP`,
		user.ID, user.Email, user.About, user.AIProvider,
		user.AIModel, user.AIAPIKey, user.GmailToken)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"inboxpilot/internal/models"
)

// UsageStore appends AI usage rows for billing and observability.
// Rows are append-only and never mutated; a daily aggregate table is
// maintained alongside for cheap reporting queries.
type UsageStore struct {
	db     *sqlx.DB
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewUsageStore creates a new usage store
func NewUsageStore(db *sqlx.DB, logger zerolog.Logger) *UsageStore {
	return &UsageStore{db: db, logger: logger}
}

// Record appends one usage row and updates the daily aggregate.
// An aggregate failure is logged but does not fail the call: the
// append-only row is the source of truth.
func (s *UsageStore) Record(ctx context.Context, record models.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_usage (email, provider, model, label,
		                      prompt_tokens, completion_tokens, total_tokens)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.Email, record.Provider, record.Model, record.Label,
		record.Usage.PromptTokens, record.Usage.CompletionTokens, record.Usage.TotalTokens)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ai_usage_daily (date, email, provider, total_tokens, call_count)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (date, email, provider) DO UPDATE SET
			total_tokens = ai_usage_daily.total_tokens + EXCLUDED.total_tokens,
			call_count = ai_usage_daily.call_count + 1,
			updated_at = CURRENT_TIMESTAMP`,
		today, record.Email, record.Provider, record.Usage.TotalTokens)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to update daily usage aggregate")
	}

	return nil
}

// ForEmail returns the most recent usage rows for a user
func (s *UsageStore) ForEmail(ctx context.Context, email string, limit int) ([]models.UsageRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, email, provider, model, label,
		       prompt_tokens, completion_tokens, total_tokens, created_at
		FROM ai_usage
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT $2`, email, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.UsageRecord
	for rows.Next() {
		var r models.UsageRecord
		err := rows.Scan(&r.ID, &r.Email, &r.Provider, &r.Model, &r.Label,
			&r.Usage.PromptTokens, &r.Usage.CompletionTokens, &r.Usage.TotalTokens,
			&r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

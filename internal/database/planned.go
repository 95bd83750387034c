package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inboxpilot/internal/models"
)

// PlannedStore persists planned actions awaiting user confirmation
type PlannedStore struct {
	db *sqlx.DB
}

// NewPlannedStore creates a new planned-action store
func NewPlannedStore(db *sqlx.DB) *PlannedStore {
	return &PlannedStore{db: db}
}

// Create stores a pending planned action with its email snapshot and
// resolved items serialized as JSON
func (s *PlannedStore) Create(ctx context.Context, id, userID, ruleID string,
	email models.EmailContext, items []models.ActionItem) error {

	emailJSON, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal email snapshot: %w", err)
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal action items: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO planned_actions (id, user_id, rule_id, email_json, items_json, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, userID, ruleID, string(emailJSON), string(itemsJSON), models.PlannedPending)
	if err != nil {
		return fmt.Errorf("failed to insert planned action: %w", err)
	}
	return nil
}

// Get returns a planned action with its decoded snapshot and items
func (s *PlannedStore) Get(ctx context.Context, userID, planID string) (*models.PlannedAction, models.EmailContext, []models.ActionItem, error) {
	var plan models.PlannedAction
	err := s.db.GetContext(ctx, &plan, `
		SELECT id, user_id, rule_id, email_json, items_json, status, created_at, updated_at
		FROM planned_actions
		WHERE id = $1 AND user_id = $2`, planID, userID)
	if err != nil {
		return nil, models.EmailContext{}, nil, fmt.Errorf("failed to load planned action %s: %w", planID, err)
	}

	var email models.EmailContext
	if err := json.Unmarshal([]byte(plan.Email), &email); err != nil {
		return nil, models.EmailContext{}, nil, fmt.Errorf("corrupt email snapshot for plan %s: %w", planID, err)
	}
	var items []models.ActionItem
	if err := json.Unmarshal([]byte(plan.Items), &items); err != nil {
		return nil, models.EmailContext{}, nil, fmt.Errorf("corrupt action items for plan %s: %w", planID, err)
	}

	return &plan, email, items, nil
}

// ListPending returns the user's pending planned actions, oldest first
func (s *PlannedStore) ListPending(ctx context.Context, userID string) ([]models.PlannedAction, error) {
	var plans []models.PlannedAction
	err := s.db.SelectContext(ctx, &plans, `
		SELECT id, user_id, rule_id, email_json, items_json, status, created_at, updated_at
		FROM planned_actions
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at ASC`, userID, models.PlannedPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned actions: %w", err)
	}
	return plans, nil
}

// SetStatus transitions a planned action out of PENDING
func (s *PlannedStore) SetStatus(ctx context.Context, userID, planID string, status models.PlannedStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE planned_actions
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3 AND status = $4`,
		status, planID, userID, models.PlannedPending)
	if err != nil {
		return fmt.Errorf("failed to update planned action %s: %w", planID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("planned action %s is not pending", planID)
	}
	return nil
}

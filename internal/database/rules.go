package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inboxpilot/internal/models"
)

// RuleStore reads and writes user rules and their actions
type RuleStore struct {
	db *sqlx.DB
}

// NewRuleStore creates a new rule store
func NewRuleStore(db *sqlx.DB) *RuleStore {
	return &RuleStore{db: db}
}

// RulesForUser returns the user's rules in priority order with their
// actions attached. This is the ordering the matcher evaluates: the first
// rule whose conditions all match wins.
func (s *RuleStore) RulesForUser(ctx context.Context, userID string) ([]models.Rule, error) {
	var rules []models.Rule
	err := s.db.SelectContext(ctx, &rules, `
		SELECT id, user_id, name, from_pattern, to_pattern, subject_pattern,
		       body_pattern, automate, priority, created_at, updated_at
		FROM rules
		WHERE user_id = $1
		ORDER BY priority ASC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	for i := range rules {
		actions, err := s.actionsForRule(ctx, rules[i].ID)
		if err != nil {
			return nil, err
		}
		rules[i].Actions = actions
	}

	return rules, nil
}

// GetRule returns one rule with actions, scoped to its owner
func (s *RuleStore) GetRule(ctx context.Context, userID, ruleID string) (*models.Rule, error) {
	var rule models.Rule
	err := s.db.GetContext(ctx, &rule, `
		SELECT id, user_id, name, from_pattern, to_pattern, subject_pattern,
		       body_pattern, automate, priority, created_at, updated_at
		FROM rules
		WHERE id = $1 AND user_id = $2`, ruleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule %s: %w", ruleID, err)
	}

	actions, err := s.actionsForRule(ctx, rule.ID)
	if err != nil {
		return nil, err
	}
	rule.Actions = actions

	return &rule, nil
}

func (s *RuleStore) actionsForRule(ctx context.Context, ruleID string) ([]models.Action, error) {
	var actions []models.Action
	err := s.db.SelectContext(ctx, &actions, `
		SELECT id, rule_id, type, label, subject, content, to_addr, cc_addr, bcc_addr
		FROM rule_actions
		WHERE rule_id = $1
		ORDER BY position ASC`, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actions for rule %s: %w", ruleID, err)
	}
	return actions, nil
}

// CreateRule inserts a rule and its actions. The rule is appended at the
// lowest priority (evaluated last).
func (s *RuleStore) CreateRule(ctx context.Context, rule *models.Rule) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rules (id, user_id, name, from_pattern, to_pattern,
		                   subject_pattern, body_pattern, automate, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        COALESCE((SELECT MAX(priority) + 1 FROM rules r WHERE r.user_id = $2), 0))`,
		rule.ID, rule.UserID, rule.Name, rule.From, rule.To,
		rule.Subject, rule.Body, rule.Automate)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	for i, action := range rule.Actions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rule_actions (id, rule_id, type, label, subject, content,
			                          to_addr, cc_addr, bcc_addr, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			action.ID, rule.ID, action.Type, action.Label, action.Subject,
			action.Content, action.To, action.Cc, action.Bcc, i)
		if err != nil {
			return fmt.Errorf("failed to insert action: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteRule removes a rule and its actions, scoped to its owner
func (s *RuleStore) DeleteRule(ctx context.Context, userID, ruleID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM rules WHERE id = $1 AND user_id = $2`, ruleID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("rule %s not found", ruleID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM rule_actions WHERE rule_id = $1`, ruleID); err != nil {
		return fmt.Errorf("failed to delete rule actions: %w", err)
	}

	return tx.Commit()
}

// Package handlers contains the Echo HTTP handlers for the rule pipeline
// API: webhook intake, planned-action approval, rule management, usage and
// notification queries.
package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"inboxpilot/internal/config"
	"inboxpilot/internal/database"
	"inboxpilot/internal/gmail"
	"inboxpilot/internal/models"
	"inboxpilot/internal/rules"
)

// Env bundles the shared dependencies handlers close over
type Env struct {
	Config        *config.Config
	Logger        zerolog.Logger
	Users         *database.UserStore
	Rules         *database.RuleStore
	Planned       *database.PlannedStore
	Usage         *database.UsageStore
	Notifications *database.NotificationStore
	Pipeline      *rules.Pipeline
	Executor      *rules.Executor

	// NewMailer builds the Gmail mutation client for one user. Swappable
	// so tests can run the pipeline without Gmail credentials.
	NewMailer func(ctx context.Context, user *models.User) (rules.Mailer, error)
}

// GmailMailerFactory returns the production NewMailer implementation
func GmailMailerFactory(cfg *config.Config, logger zerolog.Logger) func(context.Context, *models.User) (rules.Mailer, error) {
	return func(ctx context.Context, user *models.User) (rules.Mailer, error) {
		return gmail.NewClient(ctx, cfg, user.GmailToken, logger)
	}
}

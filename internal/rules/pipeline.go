package rules

import (
	"context"

	"github.com/rs/zerolog"

	"inboxpilot/internal/models"
	"inboxpilot/internal/utils"
)

// PlannedCreator stores a resolved match awaiting user confirmation
type PlannedCreator interface {
	Create(ctx context.Context, id, userID, ruleID string, email models.EmailContext, items []models.ActionItem) error
}

// Pipeline is the end-to-end message handler: match, resolve, then either
// execute immediately or defer as a planned action
type Pipeline struct {
	matcher  *Matcher
	resolver *Resolver
	executor *Executor
	planned  PlannedCreator
	logger   zerolog.Logger
}

// NewPipeline wires the pipeline stages together
func NewPipeline(matcher *Matcher, resolver *Resolver, executor *Executor, planned PlannedCreator, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		matcher:  matcher,
		resolver: resolver,
		executor: executor,
		planned:  planned,
		logger:   logger,
	}
}

// Result is the outcome of handling one inbound message
type Result struct {
	Rule     *models.Rule
	Items    []models.ActionItem
	Outcomes []models.ActionOutcome
	Planned  bool
	PlanID   string
}

// HandleMessage runs the pipeline for one message. Returns (nil, nil) when
// no rule matches. Resolution failures abort before any Gmail mutation.
func (p *Pipeline) HandleMessage(ctx context.Context, user *models.User, userRules []models.Rule,
	email models.EmailContext, mailer Mailer) (*Result, error) {

	rule := p.matcher.Match(userRules, email)
	if rule == nil {
		return nil, nil
	}

	items, err := p.resolver.Resolve(ctx, user, rule, email)
	if err != nil {
		return nil, err
	}

	if !rule.Automate {
		planID := utils.NewID()
		if err := p.planned.Create(ctx, planID, user.ID, rule.ID, email, items); err != nil {
			return nil, err
		}
		p.logger.Info().Str("rule_id", rule.ID).Str("plan_id", planID).
			Str("user_id", user.ID).Msg("Planned actions await confirmation")
		return &Result{Rule: rule, Items: items, Planned: true, PlanID: planID}, nil
	}

	outcomes := p.executor.Execute(ctx, mailer, email, items)
	p.logger.Info().Str("rule_id", rule.ID).Str("user_id", user.ID).
		Int("actions", len(outcomes)).Msg("Executed rule actions")
	return &Result{Rule: rule, Items: items, Outcomes: outcomes}, nil
}

// ApplyOverrides copies the items with the user's literal argument edits
// applied. Empty override fields leave the resolved values untouched.
func ApplyOverrides(items []models.ActionItem, args models.PlanArgs) []models.ActionItem {
	out := make([]models.ActionItem, len(items))
	copy(out, items)
	for i := range out {
		if args.Label != "" {
			out[i].Label = args.Label
		}
		if args.To != "" {
			out[i].To = args.To
		}
		if args.Cc != "" {
			out[i].Cc = args.Cc
		}
		if args.Bcc != "" {
			out[i].Bcc = args.Bcc
		}
		if args.Subject != "" {
			out[i].Subject = args.Subject
		}
		if args.Content != "" {
			out[i].Content = args.Content
		}
	}
	return out
}

package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inboxpilot/internal/cache"
	"inboxpilot/internal/errs"
	"inboxpilot/internal/models"
)

type fakePlanner struct {
	planID string
	ruleID string
	items  []models.ActionItem
	err    error
}

func (f *fakePlanner) Create(_ context.Context, id, userID, ruleID string,
	email models.EmailContext, items []models.ActionItem) error {
	if f.err != nil {
		return f.err
	}
	f.planID = id
	f.ruleID = ruleID
	f.items = items
	return nil
}

func newTestPipeline(gen ObjectGenerator, planner PlannedCreator) *Pipeline {
	logger := zerolog.Nop()
	return NewPipeline(
		NewMatcher(cache.New(time.Minute), 1000, logger),
		NewResolver(gen, logger),
		NewExecutor(logger),
		planner,
		logger,
	)
}

func TestHandleMessage_NewsletterArchiveEndToEnd(t *testing.T) {
	gen := &fakeGenerator{}
	mailer := &fakeMailer{}
	pipeline := newTestPipeline(gen, &fakePlanner{})

	userRules := []models.Rule{{
		ID:       "r1",
		Automate: true,
		From:     strPtr("newsletter@example\\.com"),
		Actions:  []models.Action{{Type: models.ActionArchive}},
	}}
	email := models.EmailContext{
		From:     "newsletter@example.com",
		To:       "me@x.com",
		ThreadID: "thread-1",
	}

	result, err := pipeline.HandleMessage(context.Background(), resolverUser, userRules, email, mailer)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "r1", result.Rule.ID)
	assert.Zero(t, gen.calls, "static rule must not trigger any LLM call")
	assert.Equal(t, []string{"archive"}, mailer.calls)
	require.Len(t, result.Outcomes, 1)
	assert.True(t, result.Outcomes[0].Success)
}

func TestHandleMessage_AIGeneratedLabelEndToEnd(t *testing.T) {
	gen := &fakeGenerator{object: `{"action_1_label": "Invoices 2026"}`}
	mailer := &fakeMailer{}
	pipeline := newTestPipeline(gen, &fakePlanner{})

	userRules := []models.Rule{{
		ID:       "r1",
		Automate: true,
		Subject:  strPtr("^Invoice"),
		Actions: []models.Action{
			{Type: models.ActionLabel, Label: strPtr("{{pick a label for this invoice}}")},
		},
	}}
	email := models.EmailContext{Subject: "Invoice for March", ThreadID: "thread-1"}

	result, err := pipeline.HandleMessage(context.Background(), resolverUser, userRules, email, mailer)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, []string{"label:Invoices 2026"}, mailer.calls)
}

func TestHandleMessage_ResolutionFailureSkipsExecutor(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("provider down")}
	mailer := &fakeMailer{}
	pipeline := newTestPipeline(gen, &fakePlanner{})

	userRules := []models.Rule{{
		ID:       "r1",
		Automate: true,
		Subject:  strPtr("^Invoice"),
		Actions: []models.Action{
			{Type: models.ActionLabel, Label: strPtr("{{pick a label}}")},
		},
	}}
	email := models.EmailContext{Subject: "Invoice for March", ThreadID: "thread-1"}

	result, err := pipeline.HandleMessage(context.Background(), resolverUser, userRules, email, mailer)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrResolution)
	assert.Nil(t, result)
	assert.Empty(t, mailer.calls, "executor must never run after a resolution failure")
}

func TestHandleMessage_NoMatch(t *testing.T) {
	pipeline := newTestPipeline(&fakeGenerator{}, &fakePlanner{})

	userRules := []models.Rule{{ID: "r1", From: strPtr("other@example\\.com")}}
	result, err := pipeline.HandleMessage(context.Background(), resolverUser, userRules,
		models.EmailContext{From: "me@example.com"}, &fakeMailer{})

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestHandleMessage_NonAutomatedRuleIsPlanned(t *testing.T) {
	planner := &fakePlanner{}
	mailer := &fakeMailer{}
	pipeline := newTestPipeline(&fakeGenerator{}, planner)

	userRules := []models.Rule{{
		ID:      "r1",
		From:    strPtr("boss@example\\.com"),
		Actions: []models.Action{{Type: models.ActionLabel, Label: strPtr("Important")}},
	}}
	email := models.EmailContext{From: "boss@example.com", ThreadID: "thread-1"}

	result, err := pipeline.HandleMessage(context.Background(), resolverUser, userRules, email, mailer)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Planned)
	assert.NotEmpty(t, result.PlanID)
	assert.Equal(t, result.PlanID, planner.planID)
	assert.Equal(t, "r1", planner.ruleID)
	assert.Empty(t, mailer.calls, "planned rules must not mutate Gmail")
	assert.Empty(t, result.Outcomes)
}

func TestApplyOverrides(t *testing.T) {
	items := []models.ActionItem{
		{Type: models.ActionLabel, Label: "Generated"},
		{Type: models.ActionReply, Content: "Generated reply"},
	}

	out := ApplyOverrides(items, models.PlanArgs{Label: "Edited", Content: "Edited reply"})

	assert.Equal(t, "Edited", out[0].Label)
	assert.Equal(t, "Edited reply", out[1].Content)
	// Originals are untouched
	assert.Equal(t, "Generated", items[0].Label)
	assert.Equal(t, "Generated reply", items[1].Content)

	unchanged := ApplyOverrides(items, models.PlanArgs{})
	assert.Equal(t, items, unchanged)
}

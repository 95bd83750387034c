package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inboxpilot/internal/gmail"
	"inboxpilot/internal/models"
)

// fakeMailer records mutations in call order
type fakeMailer struct {
	calls  []string
	failOn string
}

func (f *fakeMailer) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failOn != "" && call == f.failOn {
		return errors.New("gmail mutation failed")
	}
	return nil
}

func (f *fakeMailer) LabelThread(_ context.Context, threadID, labelName string) error {
	return f.record("label:" + labelName)
}

func (f *fakeMailer) ArchiveThread(_ context.Context, threadID string) error {
	return f.record("archive")
}

func (f *fakeMailer) MarkThreadRead(_ context.Context, threadID string) error {
	return f.record("mark_read")
}

func (f *fakeMailer) MarkThreadSpam(_ context.Context, threadID string) error {
	return f.record("mark_spam")
}

func (f *fakeMailer) SendEmail(_ context.Context, msg *gmail.OutgoingMessage) (string, error) {
	return "sent-1", f.record("send:" + msg.To[0])
}

func (f *fakeMailer) ReplyInThread(_ context.Context, _ models.EmailContext, body string, _, _ []string) (string, error) {
	return "sent-2", f.record("reply:" + body)
}

func (f *fakeMailer) CreateReplyDraft(_ context.Context, _ models.EmailContext, body string, _, _ []string) (string, error) {
	return "draft-1", f.record("draft:" + body)
}

func (f *fakeMailer) ForwardMessage(_ context.Context, _ models.EmailContext, to, _, _ []string, _ string) (string, error) {
	return "sent-3", f.record("forward:" + to[0])
}

var testEmail = models.EmailContext{ThreadID: "thread-1", From: "sender@example.com"}

func TestExecute_StrictListOrder(t *testing.T) {
	mailer := &fakeMailer{}
	executor := NewExecutor(zerolog.Nop())

	outcomes := executor.Execute(context.Background(), mailer, testEmail, []models.ActionItem{
		{Type: models.ActionLabel, Label: "Newsletters"},
		{Type: models.ActionArchive},
	})

	assert.Equal(t, []string{"label:Newsletters", "archive"}, mailer.calls)
	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Success)
	assert.True(t, outcomes[1].Success)
}

func TestExecute_BestEffortContinuesAfterFailure(t *testing.T) {
	mailer := &fakeMailer{failOn: "label:Newsletters"}
	executor := NewExecutor(zerolog.Nop())

	outcomes := executor.Execute(context.Background(), mailer, testEmail, []models.ActionItem{
		{Type: models.ActionLabel, Label: "Newsletters"},
		{Type: models.ActionArchive},
	})

	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].Success)
	assert.Contains(t, outcomes[0].Error, "gmail mutation failed")
	assert.True(t, outcomes[1].Success)
	assert.Equal(t, []string{"label:Newsletters", "archive"}, mailer.calls)
}

func TestExecute_AllActionTypes(t *testing.T) {
	mailer := &fakeMailer{}
	executor := NewExecutor(zerolog.Nop())

	outcomes := executor.Execute(context.Background(), mailer, testEmail, []models.ActionItem{
		{Type: models.ActionMarkRead},
		{Type: models.ActionMarkSpam},
		{Type: models.ActionReply, Content: "Thanks!"},
		{Type: models.ActionDraft, Content: "Draft reply"},
		{Type: models.ActionSend, To: "a@example.com, b@example.com", Subject: "Hi", Content: "Hello"},
		{Type: models.ActionForward, To: "c@example.com", Content: "FYI"},
	})

	for _, outcome := range outcomes {
		assert.True(t, outcome.Success, "action %s failed: %s", outcome.Type, outcome.Error)
	}
	assert.Equal(t, []string{
		"mark_read", "mark_spam", "reply:Thanks!", "draft:Draft reply",
		"send:a@example.com", "forward:c@example.com",
	}, mailer.calls)
}

func TestExecute_MissingArgumentsFailTheItemOnly(t *testing.T) {
	mailer := &fakeMailer{}
	executor := NewExecutor(zerolog.Nop())

	outcomes := executor.Execute(context.Background(), mailer, testEmail, []models.ActionItem{
		{Type: models.ActionLabel},              // no label value
		{Type: models.ActionSend, Content: "x"}, // no recipients
		{Type: models.ActionArchive},
	})

	require.Len(t, outcomes, 3)
	assert.False(t, outcomes[0].Success)
	assert.False(t, outcomes[1].Success)
	assert.True(t, outcomes[2].Success)
	assert.Equal(t, []string{"archive"}, mailer.calls)
}

func TestExecute_ThreadRequiredForThreadMutations(t *testing.T) {
	mailer := &fakeMailer{}
	executor := NewExecutor(zerolog.Nop())

	outcomes := executor.Execute(context.Background(), mailer, models.EmailContext{}, []models.ActionItem{
		{Type: models.ActionArchive},
	})

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Success)
	assert.Empty(t, mailer.calls)
}

func TestSplitAddresses(t *testing.T) {
	assert.Nil(t, splitAddresses(""))
	assert.Nil(t, splitAddresses("  "))
	assert.Equal(t, []string{"a@x.com"}, splitAddresses("a@x.com"))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, splitAddresses(" a@x.com , b@x.com ,"))
}

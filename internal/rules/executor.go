package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"inboxpilot/internal/errs"
	"inboxpilot/internal/gmail"
	"inboxpilot/internal/models"
)

// Mailer is the Gmail mutation surface the executor drives
type Mailer interface {
	LabelThread(ctx context.Context, threadID, labelName string) error
	ArchiveThread(ctx context.Context, threadID string) error
	MarkThreadRead(ctx context.Context, threadID string) error
	MarkThreadSpam(ctx context.Context, threadID string) error
	SendEmail(ctx context.Context, msg *gmail.OutgoingMessage) (string, error)
	ReplyInThread(ctx context.Context, original models.EmailContext, body string, cc, bcc []string) (string, error)
	CreateReplyDraft(ctx context.Context, original models.EmailContext, body string, cc, bcc []string) (string, error)
	ForwardMessage(ctx context.Context, original models.EmailContext, to, cc, bcc []string, note string) (string, error)
}

// Executor applies resolved action items against Gmail. Items run strictly
// in list order; a failed item is recorded and execution continues with
// the next one. There is no rollback.
type Executor struct {
	logger zerolog.Logger
}

// NewExecutor creates a new action executor
func NewExecutor(logger zerolog.Logger) *Executor {
	return &Executor{logger: logger}
}

// Execute runs every item in order and returns one outcome per item
func (e *Executor) Execute(ctx context.Context, mailer Mailer, email models.EmailContext, items []models.ActionItem) []models.ActionOutcome {
	outcomes := make([]models.ActionOutcome, 0, len(items))
	for _, item := range items {
		outcome := models.ActionOutcome{Type: item.Type, Success: true}
		if err := e.executeItem(ctx, mailer, email, item); err != nil {
			outcome.Success = false
			outcome.Error = err.Error()
			errs.Capture(e.logger, err, "", map[string]interface{}{
				"action_type": string(item.Type),
				"thread_id":   email.ThreadID,
			})
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (e *Executor) executeItem(ctx context.Context, mailer Mailer, email models.EmailContext, item models.ActionItem) error {
	switch item.Type {
	case models.ActionLabel:
		if err := requireThread(email); err != nil {
			return err
		}
		if item.Label == "" {
			return fmt.Errorf("label action without a label value")
		}
		return mailer.LabelThread(ctx, email.ThreadID, item.Label)

	case models.ActionArchive:
		if err := requireThread(email); err != nil {
			return err
		}
		return mailer.ArchiveThread(ctx, email.ThreadID)

	case models.ActionMarkRead:
		if err := requireThread(email); err != nil {
			return err
		}
		return mailer.MarkThreadRead(ctx, email.ThreadID)

	case models.ActionMarkSpam:
		if err := requireThread(email); err != nil {
			return err
		}
		return mailer.MarkThreadSpam(ctx, email.ThreadID)

	case models.ActionReply:
		_, err := mailer.ReplyInThread(ctx, email, item.Content,
			splitAddresses(item.Cc), splitAddresses(item.Bcc))
		return err

	case models.ActionDraft:
		_, err := mailer.CreateReplyDraft(ctx, email, item.Content,
			splitAddresses(item.Cc), splitAddresses(item.Bcc))
		return err

	case models.ActionSend:
		to := splitAddresses(item.To)
		if len(to) == 0 {
			return fmt.Errorf("send action without recipients")
		}
		_, err := mailer.SendEmail(ctx, &gmail.OutgoingMessage{
			To:      to,
			Cc:      splitAddresses(item.Cc),
			Bcc:     splitAddresses(item.Bcc),
			Subject: item.Subject,
			Body:    item.Content,
		})
		return err

	case models.ActionForward:
		to := splitAddresses(item.To)
		if len(to) == 0 {
			return fmt.Errorf("forward action without recipients")
		}
		_, err := mailer.ForwardMessage(ctx, email, to,
			splitAddresses(item.Cc), splitAddresses(item.Bcc), item.Content)
		return err
	}

	return fmt.Errorf("unsupported action type %q", item.Type)
}

func requireThread(email models.EmailContext) error {
	if email.ThreadID == "" {
		return fmt.Errorf("message has no thread id")
	}
	return nil
}

// splitAddresses splits a comma-separated address list, dropping empties
func splitAddresses(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

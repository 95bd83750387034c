// Package gmail wraps the Gmail API surface the action executor needs:
// thread label mutations and outbound message construction.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"inboxpilot/internal/config"
	"inboxpilot/internal/models"
)

// System label IDs used by thread mutations
const (
	labelInbox  = "INBOX"
	labelUnread = "UNREAD"
	labelSpam   = "SPAM"
)

// Client wraps the Gmail Users service for one authenticated mailbox
type Client struct {
	svc    *gmailapi.UsersService
	logger zerolog.Logger

	mu     sync.Mutex
	labels map[string]string // label name (lowercased) -> label ID
}

// NewClient builds a Gmail client from a stored OAuth2 token. tokenJSON is
// the serialized oauth2.Token persisted at login; refresh happens
// transparently through the token source.
func NewClient(ctx context.Context, cfg *config.Config, tokenJSON string, logger zerolog.Logger) (*Client, error) {
	if tokenJSON == "" {
		return nil, fmt.Errorf("no Gmail token stored for user")
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenJSON), &token); err != nil {
		return nil, fmt.Errorf("failed to decode Gmail token: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmailapi.GmailModifyScope, gmailapi.GmailComposeScope},
	}

	httpClient := oauthCfg.Client(ctx, &token)
	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:    svc.Users,
		logger: logger,
		labels: make(map[string]string),
	}, nil
}

// ModifyThread adds and removes label IDs on a thread
func (c *Client) ModifyThread(ctx context.Context, threadID string, addLabelIDs, removeLabelIDs []string) error {
	_, err := c.svc.Threads.Modify("me", threadID, &gmailapi.ModifyThreadRequest{
		AddLabelIds:    addLabelIDs,
		RemoveLabelIds: removeLabelIDs,
	}).Context(ctx).Do()
	return err
}

// ArchiveThread archives a thread by removing the INBOX label
func (c *Client) ArchiveThread(ctx context.Context, threadID string) error {
	return c.ModifyThread(ctx, threadID, nil, []string{labelInbox})
}

// MarkThreadRead removes the UNREAD label from a thread
func (c *Client) MarkThreadRead(ctx context.Context, threadID string) error {
	return c.ModifyThread(ctx, threadID, nil, []string{labelUnread})
}

// MarkThreadUnread adds the UNREAD label back to a thread
func (c *Client) MarkThreadUnread(ctx context.Context, threadID string) error {
	return c.ModifyThread(ctx, threadID, []string{labelUnread}, nil)
}

// MarkThreadSpam marks a thread as spam and removes it from the inbox
func (c *Client) MarkThreadSpam(ctx context.Context, threadID string) error {
	return c.ModifyThread(ctx, threadID, []string{labelSpam}, []string{labelInbox})
}

// LabelThread applies a user label to a thread, creating the label first
// if the mailbox does not have it yet
func (c *Client) LabelThread(ctx context.Context, threadID, labelName string) error {
	labelID, err := c.GetOrCreateLabel(ctx, labelName)
	if err != nil {
		return err
	}
	return c.ModifyThread(ctx, threadID, []string{labelID}, nil)
}

// GetOrCreateLabel resolves a label name to its ID, creating the label on
// first use. Resolved IDs are cached per client.
func (c *Client) GetOrCreateLabel(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("label name is required")
	}

	key := strings.ToLower(name)
	c.mu.Lock()
	if id, ok := c.labels[key]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	list, err := c.svc.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list labels: %w", err)
	}
	for _, label := range list.Labels {
		if strings.EqualFold(label.Name, name) {
			c.cacheLabel(key, label.Id)
			return label.Id, nil
		}
	}

	created, err := c.svc.Labels.Create("me", &gmailapi.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create label %q: %w", name, err)
	}

	c.logger.Info().Str("label", name).Str("label_id", created.Id).Msg("Created Gmail label")
	c.cacheLabel(key, created.Id)
	return created.Id, nil
}

func (c *Client) cacheLabel(key, id string) {
	c.mu.Lock()
	c.labels[key] = id
	c.mu.Unlock()
}

// OutgoingMessage is an email to be sent or drafted
type OutgoingMessage struct {
	To         []string
	Cc         []string
	Bcc        []string
	Subject    string
	Body       string
	InReplyTo  string
	References string
}

// SendEmail sends a new email and returns the sent message ID
func (c *Client) SendEmail(ctx context.Context, msg *OutgoingMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}

	sent, err := c.svc.Messages.Send("me", &gmailapi.Message{
		Raw: buildRaw(msg),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}

// ReplyInThread sends a reply to the given message, threading it via
// In-Reply-To and References headers
func (c *Client) ReplyInThread(ctx context.Context, original models.EmailContext, body string, cc, bcc []string) (string, error) {
	msg, err := replyMessage(original, body, cc, bcc)
	if err != nil {
		return "", err
	}

	sent, err := c.svc.Messages.Send("me", &gmailapi.Message{
		Raw:      buildRaw(msg),
		ThreadId: original.ThreadID,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send reply: %w", err)
	}
	return sent.Id, nil
}

// CreateReplyDraft creates a reply draft in the original message's thread
// and returns the draft ID
func (c *Client) CreateReplyDraft(ctx context.Context, original models.EmailContext, body string, cc, bcc []string) (string, error) {
	msg, err := replyMessage(original, body, cc, bcc)
	if err != nil {
		return "", err
	}

	draft, err := c.svc.Drafts.Create("me", &gmailapi.Draft{
		Message: &gmailapi.Message{
			Raw:      buildRaw(msg),
			ThreadId: original.ThreadID,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	return draft.Id, nil
}

// ForwardMessage forwards the original message to new recipients with an
// optional note above the quoted content
func (c *Client) ForwardMessage(ctx context.Context, original models.EmailContext, to, cc, bcc []string, note string) (string, error) {
	if len(to) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}

	var body strings.Builder
	if note != "" {
		body.WriteString(note)
		body.WriteString("\n\n")
	}
	body.WriteString("---------- Forwarded message ---------\n")
	fmt.Fprintf(&body, "From: %s\n", original.From)
	fmt.Fprintf(&body, "Date: %s\n", original.Date)
	fmt.Fprintf(&body, "Subject: %s\n", original.Subject)
	fmt.Fprintf(&body, "To: %s\n\n", original.To)
	body.WriteString(original.Content)

	sent, err := c.svc.Messages.Send("me", &gmailapi.Message{
		Raw: buildRaw(&OutgoingMessage{
			To:      to,
			Cc:      cc,
			Bcc:     bcc,
			Subject: forwardSubject(original.Subject),
			Body:    body.String(),
		}),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to forward email: %w", err)
	}
	return sent.Id, nil
}

// replyMessage derives the outgoing reply from the original's headers
func replyMessage(original models.EmailContext, body string, cc, bcc []string) (*OutgoingMessage, error) {
	recipient := original.ReplyTo
	if recipient == "" {
		recipient = original.From
	}
	if recipient == "" {
		return nil, fmt.Errorf("original message has no sender to reply to")
	}

	return &OutgoingMessage{
		To:         []string{recipient},
		Cc:         cc,
		Bcc:        bcc,
		Subject:    replySubject(original.Subject),
		Body:       body,
		InReplyTo:  original.HeaderMessageID,
		References: appendReference(original.References, original.HeaderMessageID),
	}, nil
}

// replySubject prefixes "Re: " unless the subject already carries it
func replySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

// forwardSubject prefixes "Fwd: " unless the subject already carries a
// forward marker
func forwardSubject(subject string) string {
	lower := strings.ToLower(subject)
	if strings.HasPrefix(lower, "fwd:") || strings.HasPrefix(lower, "fw:") {
		return subject
	}
	return "Fwd: " + subject
}

// appendReference extends an RFC 2822 References chain with one message ID
func appendReference(references, messageID string) string {
	if messageID == "" {
		return references
	}
	if references == "" {
		return messageID
	}
	return references + " " + messageID
}

// buildRaw renders the message in RFC 2822 format and encodes it the way
// the Gmail API expects, base64url without padding concerns
func buildRaw(msg *OutgoingMessage) string {
	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(strings.Join(msg.To, ", "))
	b.WriteString("\r\n")

	if len(msg.Cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(msg.Cc, ", "))
		b.WriteString("\r\n")
	}
	if len(msg.Bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(strings.Join(msg.Bcc, ", "))
		b.WriteString("\r\n")
	}

	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")

	if msg.InReplyTo != "" {
		b.WriteString("In-Reply-To: ")
		b.WriteString(msg.InReplyTo)
		b.WriteString("\r\n")
	}
	if msg.References != "" {
		b.WriteString("References: ")
		b.WriteString(msg.References)
		b.WriteString("\r\n")
	}

	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// encodeRFC2047 encodes a header value when it contains non-ASCII runes
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

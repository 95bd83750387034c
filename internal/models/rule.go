package models

import (
	"strings"
	"time"
)

// ActionType identifies the Gmail-side operation a rule action performs
type ActionType string

// Supported action types
const (
	ActionLabel    ActionType = "LABEL"
	ActionArchive  ActionType = "ARCHIVE"
	ActionDraft    ActionType = "DRAFT_EMAIL"
	ActionReply    ActionType = "REPLY"
	ActionSend     ActionType = "SEND_EMAIL"
	ActionForward  ActionType = "FORWARD"
	ActionMarkRead ActionType = "MARK_READ"
	ActionMarkSpam ActionType = "MARK_SPAM"
)

// Valid reports whether t is one of the supported action types
func (t ActionType) Valid() bool {
	switch t {
	case ActionLabel, ActionArchive, ActionDraft, ActionReply,
		ActionSend, ActionForward, ActionMarkRead, ActionMarkSpam:
		return true
	}
	return false
}

// Rule is a user-defined policy mapping message conditions to actions.
// The matcher fields (From, To, Subject, Body) are optional regular
// expressions; a nil field matches everything. Rules are evaluated in
// Priority order and the first full match wins.
type Rule struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	From      *string   `db:"from_pattern" json:"from,omitempty"`
	To        *string   `db:"to_pattern" json:"to,omitempty"`
	Subject   *string   `db:"subject_pattern" json:"subject,omitempty"`
	Body      *string   `db:"body_pattern" json:"body,omitempty"`
	Automate  bool      `db:"automate" json:"automate"`
	Priority  int       `db:"priority" json:"priority"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Actions []Action `db:"-" json:"actions"`
}

// Action is a typed operation template attached to a rule. Each argument
// field is either a literal value, or an AI marker of the form
// "{{instruction}}" meaning the argument must be generated by the model
// (the braces content is the per-field instruction given to it).
type Action struct {
	ID      string     `db:"id" json:"id"`
	RuleID  string     `db:"rule_id" json:"rule_id"`
	Type    ActionType `db:"type" json:"type"`
	Label   *string    `db:"label" json:"label,omitempty"`
	Subject *string    `db:"subject" json:"subject,omitempty"`
	Content *string    `db:"content" json:"content,omitempty"`
	To      *string    `db:"to_addr" json:"to,omitempty"`
	Cc      *string    `db:"cc_addr" json:"cc,omitempty"`
	Bcc     *string    `db:"bcc_addr" json:"bcc,omitempty"`
}

// IsAIMarker reports whether a template value is an AI generation marker
func IsAIMarker(value *string) bool {
	if value == nil {
		return false
	}
	v := strings.TrimSpace(*value)
	return strings.HasPrefix(v, "{{") && strings.HasSuffix(v, "}}")
}

// AIInstruction extracts the instruction text from an AI marker value.
// Returns "" when the value is not a marker.
func AIInstruction(value *string) string {
	if !IsAIMarker(value) {
		return ""
	}
	v := strings.TrimSpace(*value)
	return strings.TrimSpace(v[2 : len(v)-2])
}

// ActionItem is the fully resolved, ready-to-execute form of an Action.
// It must never contain an unresolved AI marker when handed to the executor.
type ActionItem struct {
	Type    ActionType `json:"type"`
	Label   string     `json:"label,omitempty"`
	Subject string     `json:"subject,omitempty"`
	Content string     `json:"content,omitempty"`
	To      string     `json:"to,omitempty"`
	Cc      string     `json:"cc,omitempty"`
	Bcc     string     `json:"bcc,omitempty"`
}

// PlannedStatus is the lifecycle state of a planned action
type PlannedStatus string

// Planned action states
const (
	PlannedPending  PlannedStatus = "PENDING"
	PlannedExecuted PlannedStatus = "EXECUTED"
	PlannedRejected PlannedStatus = "REJECTED"
)

// PlannedAction is a resolved rule match awaiting explicit user confirmation.
// The email snapshot and resolved items are stored as JSON so the approval
// endpoint can re-run the executor without re-fetching the message.
type PlannedAction struct {
	ID        string        `db:"id" json:"id"`
	UserID    string        `db:"user_id" json:"user_id"`
	RuleID    string        `db:"rule_id" json:"rule_id"`
	Email     string        `db:"email_json" json:"-"`
	Items     string        `db:"items_json" json:"-"`
	Status    PlannedStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

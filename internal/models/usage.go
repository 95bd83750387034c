package models

import "time"

// UserAIFields is the per-user LLM configuration. Provider and Model may be
// empty (gateway defaults apply); APIKey is the user's personal key, absence
// of which selects the process-wide hosted credential for that provider.
type UserAIFields struct {
	Provider string `db:"ai_provider" json:"ai_provider,omitempty"`
	Model    string `db:"ai_model" json:"ai_model,omitempty"`
	APIKey   string `db:"ai_api_key" json:"-"`
}

// TokenUsage is the token accounting reported by a provider for one call
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UsageRecord is one append-only billing/observability row, written after
// every successful LLM call and never mutated.
type UsageRecord struct {
	ID        int        `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Provider  string     `db:"provider" json:"provider"`
	Model     string     `db:"model" json:"model"`
	Label     string     `db:"label" json:"label"`
	Usage     TokenUsage `db:"-" json:"usage"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// UserNotification is a user-facing error banner persisted when a known
// provider failure occurs (invalid key, quota, balance, rate limit).
type UserNotification struct {
	ID        int       `db:"id" json:"id"`
	UserEmail string    `db:"user_email" json:"user_email"`
	ErrorType string    `db:"error_type" json:"error_type"`
	Message   string    `db:"message" json:"message"`
	Seen      bool      `db:"seen" json:"seen"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

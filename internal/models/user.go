package models

import "time"

// User is a connected mailbox owner: Gmail OAuth token, per-user AI
// configuration, and the free-text "about" blurb included in AI prompts.
type User struct {
	ID         string    `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	About      string    `db:"about" json:"about,omitempty"`
	AIProvider string    `db:"ai_provider" json:"ai_provider,omitempty"`
	AIModel    string    `db:"ai_model" json:"ai_model,omitempty"`
	AIAPIKey   string    `db:"ai_api_key" json:"-"`
	GmailToken string    `db:"gmail_token" json:"-"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// AIFields returns the user's LLM gateway configuration
func (u *User) AIFields() UserAIFields {
	return UserAIFields{
		Provider: u.AIProvider,
		Model:    u.AIModel,
		APIKey:   u.AIAPIKey,
	}
}

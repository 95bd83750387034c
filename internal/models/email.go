package models

// ParsedMessage is the normalized representation of a Gmail message, produced
// by the webhook parsing layer (or internal/emails for raw RFC 822 input).
// It is immutable once parsed.
type ParsedMessage struct {
	ID        string         `json:"id"`
	ThreadID  string         `json:"thread_id"`
	Headers   MessageHeaders `json:"headers"`
	TextPlain string         `json:"text_plain,omitempty"`
	TextHTML  string         `json:"text_html,omitempty"`
	Snippet   string         `json:"snippet,omitempty"`
}

// MessageHeaders holds the subset of RFC 822 headers the rule engine cares about
type MessageHeaders struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Cc         string `json:"cc,omitempty"`
	Subject    string `json:"subject"`
	Date       string `json:"date,omitempty"`
	MessageID  string `json:"message_id,omitempty"`
	References string `json:"references,omitempty"`
	ReplyTo    string `json:"reply_to,omitempty"`
}

// EmailContext is the execution-context view of a message: the parsed fields
// plus the derived Content (best available body representation). It is what
// AI argument generation and action execution operate on.
type EmailContext struct {
	From            string `json:"from"`
	To              string `json:"to"`
	Cc              string `json:"cc,omitempty"`
	Subject         string `json:"subject"`
	Date            string `json:"date,omitempty"`
	HeaderMessageID string `json:"header_message_id,omitempty"`
	References      string `json:"references,omitempty"`
	ReplyTo         string `json:"reply_to,omitempty"`
	MessageID       string `json:"message_id"`
	ThreadID        string `json:"thread_id"`
	TextPlain       string `json:"text_plain,omitempty"`
	TextHTML        string `json:"text_html,omitempty"`
	Snippet         string `json:"snippet,omitempty"`
	Content         string `json:"content"`
}

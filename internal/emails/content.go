package emails

import (
	"regexp"
	"strings"

	"inboxpilot/internal/models"
)

var (
	htmlTagPattern    = regexp.MustCompile(`(?s)<(script|style)[^>]*>.*?</(script|style)>|<[^>]+>`)
	htmlEntityReplace = strings.NewReplacer(
		"&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">",
		"&quot;", `"`, "&#39;", "'",
	)
)

// ToContent picks the best available body representation of a message:
// plain text, then HTML stripped to text, then the snippet.
func ToContent(textPlain, textHTML, snippet string) string {
	if strings.TrimSpace(textPlain) != "" {
		return strings.TrimSpace(textPlain)
	}
	if stripped := StripHTML(textHTML); stripped != "" {
		return stripped
	}
	return strings.TrimSpace(snippet)
}

// StripHTML reduces an HTML body to whitespace-normalized text
func StripHTML(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	text := htmlTagPattern.ReplaceAllString(html, " ")
	text = htmlEntityReplace.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// BuildContext derives the execution-context view of a parsed message
func BuildContext(message models.ParsedMessage) models.EmailContext {
	return models.EmailContext{
		From:            message.Headers.From,
		To:              message.Headers.To,
		Cc:              message.Headers.Cc,
		Subject:         message.Headers.Subject,
		Date:            message.Headers.Date,
		HeaderMessageID: message.Headers.MessageID,
		References:      message.Headers.References,
		ReplyTo:         message.Headers.ReplyTo,
		MessageID:       message.ID,
		ThreadID:        message.ThreadID,
		TextPlain:       message.TextPlain,
		TextHTML:        message.TextHTML,
		Snippet:         message.Snippet,
		Content:         ToContent(message.TextPlain, message.TextHTML, message.Snippet),
	}
}

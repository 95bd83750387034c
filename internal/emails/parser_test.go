package emails

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inboxpilot/internal/models"
)

const plainMessage = `From: sender@example.com
To: me@example.com
Subject: Invoice for March
Date: Mon, 02 Mar 2026 10:00:00 +0000
Message-ID: <abc123@example.com>

Please find the invoice attached.
Total due: $420.
`

const multipartMessage = "From: newsletter@example.com\r\n" +
	"To: me@example.com\r\n" +
	"Subject: =?UTF-8?B?V2Vla2x5IMOcYmVyYmxpY2s=?=\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=\"frontier\"\r\n" +
	"\r\n" +
	"--frontier\r\n" +
	"Content-Type: text/plain; charset=\"UTF-8\"\r\n" +
	"\r\n" +
	"Hello from the newsletter.\r\n" +
	"--frontier\r\n" +
	"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
	"\r\n" +
	"<html><body><p>Hello from the <b>newsletter</b>.</p></body></html>\r\n" +
	"--frontier--\r\n"

func TestParse_PlainText(t *testing.T) {
	msg, err := Parse(strings.NewReader(plainMessage))
	require.NoError(t, err)

	assert.Equal(t, "sender@example.com", msg.Headers.From)
	assert.Equal(t, "me@example.com", msg.Headers.To)
	assert.Equal(t, "Invoice for March", msg.Headers.Subject)
	assert.Equal(t, "abc123@example.com", msg.ID)
	assert.Contains(t, msg.TextPlain, "Total due: $420.")
	assert.Empty(t, msg.TextHTML)
	assert.Contains(t, msg.Snippet, "Please find the invoice attached.")
}

func TestParse_MultipartWithEncodedSubject(t *testing.T) {
	msg, err := Parse(strings.NewReader(multipartMessage))
	require.NoError(t, err)

	assert.Equal(t, "Weekly Überblick", msg.Headers.Subject)
	assert.Contains(t, msg.TextPlain, "Hello from the newsletter.")
	assert.Contains(t, msg.TextHTML, "<b>newsletter</b>")
}

func TestToContent_Preference(t *testing.T) {
	tests := []struct {
		name     string
		plain    string
		html     string
		snippet  string
		expected string
	}{
		{"plain text wins", "plain body", "<p>html body</p>", "snippet", "plain body"},
		{"html stripped when no plain", "", "<p>html <b>body</b></p>", "snippet", "html body"},
		{"snippet as last resort", "", "", "snippet text", "snippet text"},
		{"whitespace-only plain is skipped", "   \n", "<p>html</p>", "", "html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToContent(tt.plain, tt.html, tt.snippet))
		})
	}
}

func TestStripHTML_RemovesScriptAndStyle(t *testing.T) {
	html := `<html><head><style>p { color: red; }</style></head>` +
		`<body><script>alert("hi")</script><p>Real&nbsp;content</p></body></html>`
	assert.Equal(t, "Real content", StripHTML(html))
}

func TestBuildContext(t *testing.T) {
	msg := models.ParsedMessage{
		ID:       "msg-1",
		ThreadID: "thread-1",
		Headers: models.MessageHeaders{
			From:    "a@example.com",
			To:      "b@example.com",
			Subject: "Hi",
		},
		TextHTML: "<p>body</p>",
		Snippet:  "body",
	}

	email := BuildContext(msg)
	assert.Equal(t, "msg-1", email.MessageID)
	assert.Equal(t, "thread-1", email.ThreadID)
	assert.Equal(t, "a@example.com", email.From)
	assert.Equal(t, "body", email.Content)
}

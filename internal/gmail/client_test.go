package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inboxpilot/internal/models"
)

func TestReplySubject(t *testing.T) {
	assert.Equal(t, "Re: Invoice", replySubject("Invoice"))
	assert.Equal(t, "Re: Invoice", replySubject("Re: Invoice"))
	assert.Equal(t, "re: invoice", replySubject("re: invoice"))
}

func TestForwardSubject(t *testing.T) {
	assert.Equal(t, "Fwd: Invoice", forwardSubject("Invoice"))
	assert.Equal(t, "Fwd: Invoice", forwardSubject("Fwd: Invoice"))
	assert.Equal(t, "FW: Invoice", forwardSubject("FW: Invoice"))
}

func TestAppendReference(t *testing.T) {
	assert.Equal(t, "<a@x>", appendReference("", "<a@x>"))
	assert.Equal(t, "<a@x> <b@x>", appendReference("<a@x>", "<b@x>"))
	assert.Equal(t, "<a@x>", appendReference("<a@x>", ""))
}

func TestEncodeRFC2047(t *testing.T) {
	assert.Equal(t, "plain subject", encodeRFC2047("plain subject"))
	encoded := encodeRFC2047("Überblick")
	assert.True(t, strings.HasPrefix(encoded, "=?UTF-8?"))
}

func TestBuildRaw(t *testing.T) {
	raw := buildRaw(&OutgoingMessage{
		To:         []string{"a@example.com", "b@example.com"},
		Cc:         []string{"c@example.com"},
		Subject:    "Hello",
		Body:       "How are you?",
		InReplyTo:  "<orig@example.com>",
		References: "<root@example.com> <orig@example.com>",
	})

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	text := string(decoded)

	assert.Contains(t, text, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, text, "Cc: c@example.com\r\n")
	assert.NotContains(t, text, "Bcc:")
	assert.Contains(t, text, "Subject: Hello\r\n")
	assert.Contains(t, text, "In-Reply-To: <orig@example.com>\r\n")
	assert.Contains(t, text, "References: <root@example.com> <orig@example.com>\r\n")
	assert.True(t, strings.HasSuffix(text, "\r\n\r\nHow are you?"))
}

func TestReplyMessage(t *testing.T) {
	original := models.EmailContext{
		From:            "sender@example.com",
		Subject:         "Invoice",
		HeaderMessageID: "<orig@example.com>",
		References:      "<root@example.com>",
		ThreadID:        "thread-1",
	}

	msg, err := replyMessage(original, "Thanks!", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"sender@example.com"}, msg.To)
	assert.Equal(t, "Re: Invoice", msg.Subject)
	assert.Equal(t, "<orig@example.com>", msg.InReplyTo)
	assert.Equal(t, "<root@example.com> <orig@example.com>", msg.References)
}

func TestReplyMessage_PrefersReplyTo(t *testing.T) {
	original := models.EmailContext{
		From:    "sender@example.com",
		ReplyTo: "list-reply@example.com",
		Subject: "Digest",
	}

	msg, err := replyMessage(original, "Thanks!", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"list-reply@example.com"}, msg.To)
}

func TestReplyMessage_NoSender(t *testing.T) {
	_, err := replyMessage(models.EmailContext{Subject: "x"}, "body", nil, nil)
	assert.Error(t, err)
}

// Package emails normalizes raw RFC 822 mail into the ParsedMessage shape
// the rule pipeline consumes.
package emails

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"strings"

	"inboxpilot/internal/models"
)

// ParseFile parses a single RFC 822 (.eml) file
func ParseFile(filename string) (*models.ParsedMessage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open message file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Parse(file)
}

// Parse reads one RFC 822 message into a ParsedMessage
func Parse(r io.Reader) (*models.ParsedMessage, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	header := msg.Header
	parsed := &models.ParsedMessage{
		ID: strings.Trim(header.Get("Message-ID"), "<>"),
		Headers: models.MessageHeaders{
			From:       header.Get("From"),
			To:         header.Get("To"),
			Cc:         header.Get("Cc"),
			Subject:    decodeHeader(header.Get("Subject")),
			Date:       header.Get("Date"),
			MessageID:  header.Get("Message-ID"),
			References: header.Get("References"),
			ReplyTo:    header.Get("Reply-To"),
		},
	}

	plain, html, err := extractBody(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to extract body: %w", err)
	}
	parsed.TextPlain = strings.TrimSpace(plain)
	parsed.TextHTML = strings.TrimSpace(html)
	parsed.Snippet = snippet(parsed.TextPlain, 200)

	return parsed, nil
}

// decodeHeader decodes RFC 2047 encoded-word headers
func decodeHeader(value string) string {
	decoder := mime.WordDecoder{}
	decoded, err := decoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// extractBody returns the plain-text and HTML body variants of a message
func extractBody(msg *mail.Message) (plain, html string, err error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		body, err := io.ReadAll(msg.Body)
		if err != nil {
			return "", "", err
		}
		return string(body), "", nil
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Fallback: read as plain text
		body, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return "", "", readErr
		}
		return string(body), "", nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return extractMultipart(msg.Body, params["boundary"])
	}

	body, err := decodePart(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
	if err != nil {
		return "", "", err
	}
	if mediaType == "text/html" {
		return "", body, nil
	}
	return body, "", nil
}

// extractMultipart walks a multipart body collecting the first text/plain
// and text/html parts, recursing into nested multiparts
func extractMultipart(body io.Reader, boundary string) (plain, html string, err error) {
	if boundary == "" {
		return "", "", fmt.Errorf("multipart message without boundary")
	}

	mr := multipart.NewReader(body, boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed trailing part should not discard what we have
			break
		}

		partType, partParams, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			continue
		}

		switch {
		case strings.HasPrefix(partType, "multipart/"):
			nestedPlain, nestedHTML, err := extractMultipart(part, partParams["boundary"])
			if err == nil {
				if plain == "" {
					plain = nestedPlain
				}
				if html == "" {
					html = nestedHTML
				}
			}
		case partType == "text/plain" && plain == "":
			plain, _ = decodePart(part, part.Header.Get("Content-Transfer-Encoding"))
		case partType == "text/html" && html == "":
			html, _ = decodePart(part, part.Header.Get("Content-Transfer-Encoding"))
		}
	}

	return plain, html, nil
}

// decodePart reads a body part honoring its transfer encoding
func decodePart(r io.Reader, encoding string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// snippet returns the first maxLen runes of text collapsed to one line
func snippet(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}

package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inboxpilot/internal/models"
)

// The Anthropic messages API is not OpenAI-compatible, so it gets its own
// thin HTTP client instead of a go-openai base URL override.
const (
	anthropicBaseURL   = "https://api.anthropic.com"
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 4096
)

type anthropicClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newAnthropicClient(apiKey string, timeout time.Duration) *anthropicClient {
	return &anthropicClient{
		apiKey:     apiKey,
		baseURL:    anthropicBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type anthropicRequest struct {
	Model      string               `json:"model"`
	MaxTokens  int                  `json:"max_tokens"`
	System     string               `json:"system,omitempty"`
	Messages   []anthropicMessage   `json:"messages"`
	Tools      []anthropicTool      `json:"tools,omitempty"`
	ToolChoice *anthropicToolChoice `json:"tool_choice,omitempty"`
	Stream     bool                 `json:"stream,omitempty"`
}

type anthropicMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type anthropicTool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type anthropicToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

type anthropicContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicResponse struct {
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason"`
	Usage      anthropicUsage          `json:"usage"`
}

func (u anthropicUsage) toTokenUsage() models.TokenUsage {
	return models.TokenUsage{
		PromptTokens:     u.InputTokens,
		CompletionTokens: u.OutputTokens,
		TotalTokens:      u.InputTokens + u.OutputTokens,
	}
}

// text concatenates the text blocks of a response
func (r *anthropicResponse) text() string {
	var sb strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

func (c *anthropicClient) newRequest(ctx context.Context, body anthropicRequest) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	return req, nil
}

func (c *anthropicClient) complete(ctx context.Context, body anthropicRequest) (*anthropicResponse, error) {
	body.Stream = false
	if body.MaxTokens == 0 {
		body.MaxTokens = anthropicMaxTokens
	}

	req, err := c.newRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, readAnthropicError(resp)
	}

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode anthropic response: %w", err)
	}
	return &decoded, nil
}

// readAnthropicError surfaces the API's error message verbatim so the
// classifier can match on it
func readAnthropicError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var decoded struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &decoded); err == nil && decoded.Error.Message != "" {
		return fmt.Errorf("anthropic API error (%s, status %d): %s",
			decoded.Error.Type, resp.StatusCode, decoded.Error.Message)
	}
	return fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(raw))
}

// anthropicStream consumes the SSE body of a streaming messages call
type anthropicStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	usage   anthropicUsage
	done    bool
}

func (c *anthropicClient) stream(ctx context.Context, body anthropicRequest) (*anthropicStream, error) {
	body.Stream = true
	if body.MaxTokens == 0 {
		body.MaxTokens = anthropicMaxTokens
	}

	req, err := c.newRequest(ctx, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		return nil, readAnthropicError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &anthropicStream{body: resp.Body, scanner: scanner}, nil
}

// Recv returns the next text delta. It returns io.EOF once the message is
// complete, at which point Usage reflects the final token counts.
func (s *anthropicStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		var event struct {
			Type  string `json:"type"`
			Delta struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"delta"`
			Message struct {
				Usage anthropicUsage `json:"usage"`
			} `json:"message"`
			Usage anthropicUsage `json:"usage"`
			Error struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue
		}

		switch event.Type {
		case "message_start":
			s.usage.InputTokens = event.Message.Usage.InputTokens
		case "content_block_delta":
			if event.Delta.Type == "text_delta" && event.Delta.Text != "" {
				return event.Delta.Text, nil
			}
		case "message_delta":
			if event.Usage.OutputTokens > 0 {
				s.usage.OutputTokens = event.Usage.OutputTokens
			}
		case "message_stop":
			s.done = true
			return "", io.EOF
		case "error":
			s.done = true
			return "", fmt.Errorf("anthropic stream error (%s): %s", event.Error.Type, event.Error.Message)
		}
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("anthropic stream read failed: %w", err)
	}
	return "", io.EOF
}

// Usage returns the token counts observed so far. Complete only after Recv
// has returned io.EOF.
func (s *anthropicStream) Usage() models.TokenUsage {
	return s.usage.toTokenUsage()
}

func (s *anthropicStream) Close() error {
	s.done = true
	return s.body.Close()
}

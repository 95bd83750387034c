// Package llm is the single gateway for all LLM traffic. Every call goes
// through provider selection, and every outcome is accounted for: usage is
// recorded exactly once per successful call, and provider failures are
// classified and surfaced to the user before being returned to the caller.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"inboxpilot/internal/config"
	"inboxpilot/internal/errs"
	"inboxpilot/internal/models"
)

// UsageRecorder persists token accounting for successful calls
type UsageRecorder interface {
	Record(ctx context.Context, record models.UsageRecord) error
}

// Notifier surfaces a classified provider failure to the affected user
type Notifier interface {
	Notify(ctx context.Context, userEmail, errorType, message string) error
}

// Client is the LLM gateway
type Client struct {
	cfg      *config.Config
	logger   zerolog.Logger
	usage    UsageRecorder
	notifier Notifier
}

// NewClient creates a new LLM gateway client
func NewClient(cfg *config.Config, logger zerolog.Logger, usage UsageRecorder, notifier Notifier) *Client {
	return &Client{cfg: cfg, logger: logger, usage: usage, notifier: notifier}
}

// ObjectRequest asks for a single schema-validated JSON object
type ObjectRequest struct {
	User      models.UserAIFields
	UserEmail string
	System    string
	Prompt    string
	Schema    Schema
	Label     string
}

// ObjectResult is a validated structured completion
type ObjectResult struct {
	Object   json.RawMessage
	Usage    models.TokenUsage
	Provider string
	Model    string
}

// ChatCompletionObject performs one structured completion. The reply is
// validated against the request schema before the caller sees it, and
// usage is recorded only when the full call (including validation)
// succeeds.
func (c *Client) ChatCompletionObject(ctx context.Context, req ObjectRequest) (*ObjectResult, error) {
	b, err := selectBackend(req.User, c.cfg)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	var usage models.TokenUsage

	if b.provider == ProviderAnthropic {
		raw, usage, err = c.objectViaAnthropic(ctx, b, req)
	} else {
		raw, usage, err = c.objectViaOpenAI(ctx, b, req)
	}
	if err != nil {
		c.reportError(ctx, err, req.UserEmail, req.Label)
		return nil, err
	}

	if err := req.Schema.Validate(raw); err != nil {
		err = fmt.Errorf("structured completion failed validation: %w", err)
		c.reportError(ctx, err, req.UserEmail, req.Label)
		return nil, err
	}

	c.recordUsage(ctx, b, req.UserEmail, req.Label, usage)
	return &ObjectResult{
		Object:   raw,
		Usage:    usage,
		Provider: string(b.provider),
		Model:    b.model,
	}, nil
}

// objectViaAnthropic forces structured output through a single tool whose
// input schema is the requested object shape
func (c *Client) objectViaAnthropic(ctx context.Context, b *backend, req ObjectRequest) (json.RawMessage, models.TokenUsage, error) {
	toolName := req.Schema.Name
	if toolName == "" {
		toolName = "output"
	}

	resp, err := b.anthropic.complete(ctx, anthropicRequest{
		Model:  b.model,
		System: req.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
		Tools: []anthropicTool{{
			Name:        toolName,
			Description: req.Schema.Description,
			InputSchema: req.Schema.JSONSchema(),
		}},
		ToolChoice: &anthropicToolChoice{Type: "tool", Name: toolName},
	})
	if err != nil {
		return nil, models.TokenUsage{}, err
	}

	for _, block := range resp.Content {
		if block.Type == "tool_use" {
			return block.Input, resp.Usage.toTokenUsage(), nil
		}
	}
	return nil, models.TokenUsage{}, fmt.Errorf("anthropic returned no tool_use block")
}

func (c *Client) objectViaOpenAI(ctx context.Context, b *backend, req ObjectRequest) (json.RawMessage, models.TokenUsage, error) {
	system := req.System
	if system != "" {
		system += "\n\n"
	}
	system += "Respond with a single JSON object matching this schema:\n" + string(req.Schema.JSONSchema())

	resp, err := b.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, models.TokenUsage{}, err
	}
	if len(resp.Choices) == 0 {
		return nil, models.TokenUsage{}, fmt.Errorf("completion returned no choices")
	}

	raw := extractJSON(resp.Choices[0].Message.Content)
	return json.RawMessage(raw), openaiUsage(resp.Usage), nil
}

// StreamRequest asks for an incrementally delivered text completion
type StreamRequest struct {
	User      models.UserAIFields
	UserEmail string
	System    string
	Prompt    string
	Label     string

	// OnFinish receives the full accumulated text once the stream
	// completes successfully
	OnFinish func(text string)
}

// Stream delivers completion text incrementally. Usage is recorded once,
// when the stream completes; an aborted stream records nothing.
type Stream struct {
	client    *Client
	ctx       context.Context
	b         *backend
	req       StreamRequest
	openaiSt  *openai.ChatCompletionStream
	anthrSt   *anthropicStream
	text      strings.Builder
	usage     models.TokenUsage
	completed bool
}

// ChatCompletionStream starts a streaming completion. Errors raised while
// opening the stream are classified and returned immediately.
func (c *Client) ChatCompletionStream(ctx context.Context, req StreamRequest) (*Stream, error) {
	b, err := selectBackend(req.User, c.cfg)
	if err != nil {
		return nil, err
	}

	s := &Stream{client: c, ctx: ctx, b: b, req: req}

	if b.provider == ProviderAnthropic {
		s.anthrSt, err = b.anthropic.stream(ctx, anthropicRequest{
			Model:  b.model,
			System: req.System,
			Messages: []anthropicMessage{
				{Role: "user", Content: req.Prompt},
			},
		})
	} else {
		messages := []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		}
		if req.System != "" {
			messages = append([]openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: req.System},
			}, messages...)
		}
		s.openaiSt, err = b.openai.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model:    b.model,
			Messages: messages,
			Stream:   true,
			StreamOptions: &openai.StreamOptions{
				IncludeUsage: true,
			},
		})
	}
	if err != nil {
		c.reportError(ctx, err, req.UserEmail, req.Label)
		return nil, err
	}
	return s, nil
}

// Recv returns the next text chunk, or io.EOF when the stream completes
func (s *Stream) Recv() (string, error) {
	if s.completed {
		return "", io.EOF
	}

	var chunk string
	var err error
	if s.anthrSt != nil {
		chunk, err = s.recvAnthropic()
	} else {
		chunk, err = s.recvOpenAI()
	}

	if err == io.EOF {
		s.finish()
		return "", io.EOF
	}
	if err != nil {
		s.completed = true
		s.client.reportError(s.ctx, err, s.req.UserEmail, s.req.Label)
		return "", err
	}

	s.text.WriteString(chunk)
	return chunk, nil
}

func (s *Stream) recvAnthropic() (string, error) {
	chunk, err := s.anthrSt.Recv()
	if err == io.EOF {
		s.usage = s.anthrSt.Usage()
	}
	return chunk, err
}

func (s *Stream) recvOpenAI() (string, error) {
	for {
		resp, err := s.openaiSt.Recv()
		if err != nil {
			return "", err
		}
		// The final usage chunk carries no choices
		if resp.Usage != nil {
			s.usage = openaiUsage(*resp.Usage)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
}

// finish records usage and fires OnFinish exactly once
func (s *Stream) finish() {
	if s.completed {
		return
	}
	s.completed = true

	s.client.recordUsage(s.ctx, s.b, s.req.UserEmail, s.req.Label, s.usage)
	if s.req.OnFinish != nil {
		s.req.OnFinish(s.text.String())
	}
}

// Close releases the underlying stream without recording usage
func (s *Stream) Close() error {
	s.completed = true
	if s.anthrSt != nil {
		return s.anthrSt.Close()
	}
	if s.openaiSt != nil {
		return s.openaiSt.Close()
	}
	return nil
}

// Tool is a callable the model may invoke during a tool completion
type Tool struct {
	Name        string
	Description string
	Parameters  Schema
	Execute     func(ctx context.Context, args json.RawMessage) (string, error)
}

// ToolCall is one executed invocation from a tool completion
type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Result    string          `json:"result"`
}

// ToolRequest asks for a completion in which the model must call tools
type ToolRequest struct {
	User      models.UserAIFields
	UserEmail string
	System    string
	Prompt    string
	Tools     []Tool
	MaxSteps  int
	Label     string
}

// ToolResult is the outcome of a tool completion
type ToolResult struct {
	Calls []ToolCall
	Text  string
	Usage models.TokenUsage
}

// ChatCompletionTools performs a completion in which the model is required
// to call at least one tool on its first step, then loops executing tool
// calls until the model stops or MaxSteps is reached. Usage is summed
// across steps and recorded once for the whole call.
func (c *Client) ChatCompletionTools(ctx context.Context, req ToolRequest) (*ToolResult, error) {
	b, err := selectBackend(req.User, c.cfg)
	if err != nil {
		return nil, err
	}
	if len(req.Tools) == 0 {
		return nil, fmt.Errorf("tool completion requires at least one tool")
	}
	if req.MaxSteps <= 0 {
		req.MaxSteps = 1
	}

	var result *ToolResult
	if b.provider == ProviderAnthropic {
		result, err = c.toolsViaAnthropic(ctx, b, req)
	} else {
		result, err = c.toolsViaOpenAI(ctx, b, req)
	}
	if err != nil {
		c.reportError(ctx, err, req.UserEmail, req.Label)
		return nil, err
	}

	c.recordUsage(ctx, b, req.UserEmail, req.Label, result.Usage)
	return result, nil
}

func (c *Client) toolsViaOpenAI(ctx context.Context, b *backend, req ToolRequest) (*ToolResult, error) {
	tools := make([]openai.Tool, 0, len(req.Tools))
	byName := make(map[string]Tool, len(req.Tools))
	for _, tool := range req.Tools {
		byName[tool.Name] = tool
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters.JSONSchema(),
			},
		})
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
	}
	if req.System != "" {
		messages = append([]openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
		}, messages...)
	}

	result := &ToolResult{}
	for step := 0; step < req.MaxSteps; step++ {
		// The model must call a tool on the first step; later steps
		// may finish with plain text
		toolChoice := "auto"
		if step == 0 {
			toolChoice = "required"
		}

		resp, err := b.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:      b.model,
			Messages:   messages,
			Tools:      tools,
			ToolChoice: toolChoice,
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("completion returned no choices")
		}

		result.Usage = sumUsage(result.Usage, openaiUsage(resp.Usage))
		message := resp.Choices[0].Message

		if len(message.ToolCalls) == 0 {
			result.Text = message.Content
			return result, nil
		}

		messages = append(messages, message)
		for _, call := range message.ToolCalls {
			tool, ok := byName[call.Function.Name]
			if !ok {
				return nil, fmt.Errorf("model called unknown tool %q", call.Function.Name)
			}

			output, err := tool.Execute(ctx, json.RawMessage(call.Function.Arguments))
			if err != nil {
				return nil, fmt.Errorf("tool %q failed: %w", call.Function.Name, err)
			}

			result.Calls = append(result.Calls, ToolCall{
				Name:      call.Function.Name,
				Arguments: json.RawMessage(call.Function.Arguments),
				Result:    output,
			})
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    output,
				ToolCallID: call.ID,
			})
		}
	}

	return result, nil
}

func (c *Client) toolsViaAnthropic(ctx context.Context, b *backend, req ToolRequest) (*ToolResult, error) {
	tools := make([]anthropicTool, 0, len(req.Tools))
	byName := make(map[string]Tool, len(req.Tools))
	for _, tool := range req.Tools {
		byName[tool.Name] = tool
		tools = append(tools, anthropicTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Parameters.JSONSchema(),
		})
	}

	messages := []anthropicMessage{
		{Role: "user", Content: req.Prompt},
	}

	result := &ToolResult{}
	for step := 0; step < req.MaxSteps; step++ {
		request := anthropicRequest{
			Model:    b.model,
			System:   req.System,
			Messages: messages,
			Tools:    tools,
		}
		if step == 0 {
			request.ToolChoice = &anthropicToolChoice{Type: "any"}
		}

		resp, err := b.anthropic.complete(ctx, request)
		if err != nil {
			return nil, err
		}

		result.Usage = sumUsage(result.Usage, resp.Usage.toTokenUsage())

		if resp.StopReason != "tool_use" {
			result.Text = resp.text()
			return result, nil
		}

		messages = append(messages, anthropicMessage{Role: "assistant", Content: resp.Content})

		var results []anthropicContentBlock
		for _, block := range resp.Content {
			if block.Type != "tool_use" {
				continue
			}
			tool, ok := byName[block.Name]
			if !ok {
				return nil, fmt.Errorf("model called unknown tool %q", block.Name)
			}

			output, err := tool.Execute(ctx, block.Input)
			if err != nil {
				return nil, fmt.Errorf("tool %q failed: %w", block.Name, err)
			}

			result.Calls = append(result.Calls, ToolCall{
				Name:      block.Name,
				Arguments: block.Input,
				Result:    output,
			})
			results = append(results, anthropicContentBlock{
				Type:      "tool_result",
				ToolUseID: block.ID,
				Content:   output,
			})
		}
		messages = append(messages, anthropicMessage{Role: "user", Content: results})
	}

	return result, nil
}

// reportError classifies a provider failure, notifies the affected user
// for known categories, and captures the rest as exceptions. The original
// error is always returned to the caller unchanged.
func (c *Client) reportError(ctx context.Context, err error, userEmail, label string) {
	if errType, known := errs.ClassifyProvider(err); known && c.notifier != nil && userEmail != "" {
		if notifyErr := c.notifier.Notify(ctx, userEmail, string(errType), err.Error()); notifyErr != nil {
			c.logger.Warn().Err(notifyErr).Str("user_email", userEmail).
				Msg("Failed to notify user of provider error")
		}
	}
	errs.Capture(c.logger, err, userEmail, map[string]interface{}{"label": label})
}

// recordUsage persists token accounting for one successful call
func (c *Client) recordUsage(ctx context.Context, b *backend, userEmail, label string, usage models.TokenUsage) {
	if c.usage == nil {
		return
	}

	err := c.usage.Record(ctx, models.UsageRecord{
		Email:    userEmail,
		Provider: string(b.provider),
		Model:    b.model,
		Label:    label,
		Usage:    usage,
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("user_email", userEmail).Msg("Failed to record AI usage")
	}
}

func openaiUsage(u openai.Usage) models.TokenUsage {
	return models.TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

func sumUsage(a, b models.TokenUsage) models.TokenUsage {
	return models.TokenUsage{
		PromptTokens:     a.PromptTokens + b.PromptTokens,
		CompletionTokens: a.CompletionTokens + b.CompletionTokens,
		TotalTokens:      a.TotalTokens + b.TotalTokens,
	}
}

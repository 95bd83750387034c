package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inboxpilot/internal/config"
	"inboxpilot/internal/errs"
	"inboxpilot/internal/models"
)

type fakeRecorder struct {
	mu      sync.Mutex
	records []models.UsageRecord
}

func (f *fakeRecorder) Record(_ context.Context, record models.UsageRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []models.UserNotification
}

func (f *fakeNotifier) Notify(_ context.Context, userEmail, errorType, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, models.UserNotification{
		UserEmail: userEmail,
		ErrorType: errorType,
		Message:   message,
	})
	return nil
}

// testClient wires a gateway at an httptest server speaking the
// OpenAI-compatible protocol, using the Ollama provider path
func testClient(serverURL string) (*Client, *fakeRecorder, *fakeNotifier) {
	cfg := &config.Config{
		DefaultAIProvider: "ollama",
		OllamaBaseURL:     serverURL + "/v1",
		LLMTimeout:        5,
	}
	recorder := &fakeRecorder{}
	notifier := &fakeNotifier{}
	return NewClient(cfg, zerolog.Nop(), recorder, notifier), recorder, notifier
}

func TestSelectBackend(t *testing.T) {
	tests := []struct {
		name         string
		user         models.UserAIFields
		cfg          config.Config
		wantProvider Provider
		wantModel    string
		wantErr      bool
	}{
		{
			name:         "personal key takes precedence",
			user:         models.UserAIFields{Provider: "openai", APIKey: "sk-user"},
			cfg:          config.Config{OpenAIKey: "sk-hosted"},
			wantProvider: ProviderOpenAI,
			wantModel:    ModelGPT4o,
		},
		{
			name:         "hosted key as fallback",
			user:         models.UserAIFields{Provider: "anthropic"},
			cfg:          config.Config{AnthropicKey: "sk-ant-hosted"},
			wantProvider: ProviderAnthropic,
			wantModel:    ModelClaudeSonnet,
		},
		{
			name:    "no credential at all",
			user:    models.UserAIFields{Provider: "openai"},
			cfg:     config.Config{},
			wantErr: true,
		},
		{
			name:         "empty provider uses config default",
			user:         models.UserAIFields{},
			cfg:          config.Config{DefaultAIProvider: "groq", GroqKey: "gsk-hosted"},
			wantProvider: ProviderGroq,
			wantModel:    ModelLlamaGroq,
		},
		{
			name:         "anthropic is the final default",
			user:         models.UserAIFields{},
			cfg:          config.Config{AnthropicKey: "sk-ant"},
			wantProvider: ProviderAnthropic,
			wantModel:    ModelClaudeSonnet,
		},
		{
			name:         "user model overrides default",
			user:         models.UserAIFields{Provider: "openai", Model: "gpt-4o-mini", APIKey: "sk"},
			wantProvider: ProviderOpenAI,
			wantModel:    "gpt-4o-mini",
		},
		{
			name:         "ollama needs no credential",
			user:         models.UserAIFields{Provider: "ollama"},
			cfg:          config.Config{OllamaBaseURL: "http://localhost:11434/v1"},
			wantProvider: ProviderOllama,
			wantModel:    ModelLlamaOllama,
		},
		{
			name:    "unsupported provider",
			user:    models.UserAIFields{Provider: "cohere", APIKey: "k"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := selectBackend(tt.user, &tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, b.provider)
			assert.Equal(t, tt.wantModel, b.model)
		})
	}
}

func TestSchemaValidate(t *testing.T) {
	schema := Schema{
		Properties: map[string]SchemaProperty{
			"label":   {Type: "string"},
			"content": {Type: "string"},
		},
		Required: []string{"label"},
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid object", `{"label":"Newsletter","content":"hi"}`, false},
		{"required only", `{"label":"Newsletter"}`, false},
		{"missing required", `{"content":"hi"}`, true},
		{"null required", `{"label":null}`, true},
		{"wrong type", `{"label":42}`, true},
		{"not an object", `["label"]`, true},
		{"unknown keys pass through", `{"label":"x","extra":1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", `Here you go: {"a":1}`, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}

func completionResponse(content string, promptTokens, completionTokens int) string {
	body, _ := json.Marshal(map[string]interface{}{
		"id":     "cmpl-1",
		"object": "chat.completion",
		"choices": []map[string]interface{}{{
			"index":         0,
			"message":       map[string]interface{}{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
			"total_tokens":      promptTokens + completionTokens,
		},
	})
	return string(body)
}

func TestChatCompletionObject_RecordsUsageOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionResponse(`{"label":"Newsletter"}`, 100, 20))
	}))
	defer server.Close()

	client, recorder, _ := testClient(server.URL)
	result, err := client.ChatCompletionObject(context.Background(), ObjectRequest{
		UserEmail: "user@example.com",
		Prompt:    "Pick a label",
		Schema: Schema{
			Properties: map[string]SchemaProperty{"label": {Type: "string"}},
			Required:   []string{"label"},
		},
		Label: "resolve-args",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"label":"Newsletter"}`, string(result.Object))
	assert.Equal(t, 120, result.Usage.TotalTokens)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, "user@example.com", recorder.records[0].Email)
	assert.Equal(t, "ollama", recorder.records[0].Provider)
	assert.Equal(t, "resolve-args", recorder.records[0].Label)
}

func TestChatCompletionObject_InvalidResponseRecordsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionResponse(`{"wrong":"shape"}`, 10, 5))
	}))
	defer server.Close()

	client, recorder, _ := testClient(server.URL)
	_, err := client.ChatCompletionObject(context.Background(), ObjectRequest{
		UserEmail: "user@example.com",
		Prompt:    "Pick a label",
		Schema: Schema{
			Properties: map[string]SchemaProperty{"label": {Type: "string"}},
			Required:   []string{"label"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
	assert.Empty(t, recorder.records)
}

func TestChatCompletionObject_KnownErrorNotifiesUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided: sk-bad","type":"invalid_request_error","code":"invalid_api_key"}}`)
	}))
	defer server.Close()

	client, recorder, notifier := testClient(server.URL)
	_, err := client.ChatCompletionObject(context.Background(), ObjectRequest{
		UserEmail: "user@example.com",
		Prompt:    "Pick a label",
		Schema:    Schema{Properties: map[string]SchemaProperty{"label": {Type: "string"}}},
	})
	require.Error(t, err)

	assert.Empty(t, recorder.records)
	require.Len(t, notifier.notes, 1)
	assert.Equal(t, "user@example.com", notifier.notes[0].UserEmail)
	assert.Equal(t, string(errs.TypeIncorrectOpenAIKey), notifier.notes[0].ErrorType)
}

func TestChatCompletionObject_NoCredentialFailsBeforeRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	cfg := &config.Config{DefaultAIProvider: "openai"}
	client := NewClient(cfg, zerolog.Nop(), &fakeRecorder{}, &fakeNotifier{})
	_, err := client.ChatCompletionObject(context.Background(), ObjectRequest{
		UserEmail: "user@example.com",
		Prompt:    "hi",
	})
	assert.ErrorIs(t, err, errs.ErrConfiguration)
	assert.Zero(t, requests)
}

func TestChatCompletionStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		chunks := []string{
			`{"id":"1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"Hello "}}]}`,
			`{"id":"1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"world"}}]}`,
			`{"id":"1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
			`{"id":"1","object":"chat.completion.chunk","choices":[],"usage":{"prompt_tokens":7,"completion_tokens":2,"total_tokens":9}}`,
		}
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client, recorder, _ := testClient(server.URL)

	var finished string
	stream, err := client.ChatCompletionStream(context.Background(), StreamRequest{
		UserEmail: "user@example.com",
		Prompt:    "Say hello",
		Label:     "draft-reply",
		OnFinish:  func(text string) { finished = text },
	})
	require.NoError(t, err)
	defer func() { _ = stream.Close() }()

	var got string
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got += chunk
	}

	assert.Equal(t, "Hello world", got)
	assert.Equal(t, "Hello world", finished)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, 9, recorder.records[0].Usage.TotalTokens)
	assert.Equal(t, "draft-reply", recorder.records[0].Label)
}

func TestChatCompletionTools(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		if requests == 1 {
			fmt.Fprint(w, `{
				"id": "cmpl-1",
				"object": "chat.completion",
				"choices": [{
					"index": 0,
					"message": {
						"role": "assistant",
						"tool_calls": [{
							"id": "call_1",
							"type": "function",
							"function": {"name": "apply_label", "arguments": "{\"label\":\"Receipts\"}"}
						}]
					},
					"finish_reason": "tool_calls"
				}],
				"usage": {"prompt_tokens": 50, "completion_tokens": 10, "total_tokens": 60}
			}`)
			return
		}
		fmt.Fprint(w, completionResponse("Labeled the thread.", 70, 5))
	}))
	defer server.Close()

	client, recorder, _ := testClient(server.URL)

	var labeled string
	result, err := client.ChatCompletionTools(context.Background(), ToolRequest{
		UserEmail: "user@example.com",
		Prompt:    "File this email",
		MaxSteps:  3,
		Label:     "file-email",
		Tools: []Tool{{
			Name:        "apply_label",
			Description: "Apply a label to the current thread",
			Parameters: Schema{
				Properties: map[string]SchemaProperty{"label": {Type: "string"}},
				Required:   []string{"label"},
			},
			Execute: func(_ context.Context, args json.RawMessage) (string, error) {
				var parsed struct {
					Label string `json:"label"`
				}
				if err := json.Unmarshal(args, &parsed); err != nil {
					return "", err
				}
				labeled = parsed.Label
				return "applied", nil
			},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
	assert.Equal(t, "Receipts", labeled)
	require.Len(t, result.Calls, 1)
	assert.Equal(t, "apply_label", result.Calls[0].Name)
	assert.Equal(t, "Labeled the thread.", result.Text)
	assert.Equal(t, 135, result.Usage.TotalTokens)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, 135, recorder.records[0].Usage.TotalTokens)
}

package llm

import (
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"inboxpilot/internal/config"
	"inboxpilot/internal/errs"
	"inboxpilot/internal/models"
)

// Provider identifies an LLM backend family
type Provider string

// Supported providers. OpenAI, Groq and Ollama all speak the
// OpenAI-compatible chat API; Anthropic has its own wire format.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGroq      Provider = "groq"
	ProviderOllama    Provider = "ollama"
)

// Default models per provider, used when the user has not selected one
const (
	ModelGPT4o        = "gpt-4o"
	ModelClaudeSonnet = "claude-3-5-sonnet-20241022"
	ModelLlamaGroq    = "llama-3.3-70b-versatile"
	ModelLlamaOllama  = "llama3.1"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// backend is the resolved target for one call: a provider tag, a model id
// and exactly one live client handle
type backend struct {
	provider  Provider
	model     string
	openai    *openai.Client
	anthropic *anthropicClient
}

// selectBackend resolves the user's AI configuration into a concrete
// backend. Credential precedence is fixed: the user's personal API key is
// used when present, otherwise the process-wide hosted credential for the
// chosen provider; with neither, selection fails with a configuration
// error before any request is issued. Ollama requires no credential.
func selectBackend(user models.UserAIFields, cfg *config.Config) (*backend, error) {
	provider := Provider(user.Provider)
	if provider == "" {
		provider = Provider(cfg.DefaultAIProvider)
	}
	if provider == "" {
		provider = ProviderAnthropic
	}

	timeout := time.Duration(cfg.LLMTimeout) * time.Second

	switch provider {
	case ProviderOpenAI:
		key := user.APIKey
		if key == "" {
			key = cfg.OpenAIKey
		}
		if key == "" {
			return nil, fmt.Errorf("%w: no OpenAI API key", errs.ErrConfiguration)
		}
		return &backend{
			provider: ProviderOpenAI,
			model:    modelOrDefault(user.Model, ModelGPT4o),
			openai:   openai.NewClient(key),
		}, nil

	case ProviderGroq:
		key := user.APIKey
		if key == "" {
			key = cfg.GroqKey
		}
		if key == "" {
			return nil, fmt.Errorf("%w: no Groq API key", errs.ErrConfiguration)
		}
		clientCfg := openai.DefaultConfig(key)
		clientCfg.BaseURL = groqBaseURL
		return &backend{
			provider: ProviderGroq,
			model:    modelOrDefault(user.Model, ModelLlamaGroq),
			openai:   openai.NewClientWithConfig(clientCfg),
		}, nil

	case ProviderOllama:
		if cfg.OllamaBaseURL == "" {
			return nil, fmt.Errorf("%w: no Ollama base URL", errs.ErrConfiguration)
		}
		// Ollama ignores the API key but the client requires one
		clientCfg := openai.DefaultConfig("ollama")
		clientCfg.BaseURL = cfg.OllamaBaseURL
		return &backend{
			provider: ProviderOllama,
			model:    modelOrDefault(user.Model, ModelLlamaOllama),
			openai:   openai.NewClientWithConfig(clientCfg),
		}, nil

	case ProviderAnthropic:
		key := user.APIKey
		if key == "" {
			key = cfg.AnthropicKey
		}
		if key == "" {
			return nil, fmt.Errorf("%w: no Anthropic API key", errs.ErrConfiguration)
		}
		return &backend{
			provider:  ProviderAnthropic,
			model:     modelOrDefault(user.Model, ModelClaudeSonnet),
			anthropic: newAnthropicClient(key, timeout),
		}, nil
	}

	return nil, fmt.Errorf("%w: unsupported AI provider %q", errs.ErrConfiguration, provider)
}

func modelOrDefault(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}

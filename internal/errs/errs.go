// Package errs maps raw provider and Gmail API failures into the known
// error taxonomy. Classification is structural (error reasons and message
// matching) because providers do not expose stable typed codes for every
// failure mode.
package errs

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// Sentinel errors for pipeline-level failures
var (
	// ErrConfiguration indicates no usable provider credential resolves;
	// raised before any external request is made.
	ErrConfiguration = errors.New("no usable AI provider credential configured")

	// ErrResolution indicates AI argument generation failed or produced
	// schema-invalid output; no partial action execution is allowed.
	ErrResolution = errors.New("AI argument resolution failed")
)

// ErrorType identifies a classified, expected failure
type ErrorType string

// Known provider and Gmail failure categories
const (
	TypeIncorrectOpenAIKey           ErrorType = "INCORRECT_OPENAI_API_KEY"
	TypeInvalidOpenAIModel           ErrorType = "INVALID_OPENAI_MODEL"
	TypeOpenAIKeyDeactivated         ErrorType = "OPENAI_API_KEY_DEACTIVATED"
	TypeOpenAIQuotaExceeded          ErrorType = "OPENAI_QUOTA_EXCEEDED"
	TypeAnthropicInsufficientBalance ErrorType = "ANTHROPIC_INSUFFICIENT_BALANCE"
	TypeOllamaInvalidKey             ErrorType = "OLLAMA_INVALID_API_KEY"
	TypeOllamaRateLimit              ErrorType = "OLLAMA_RATE_LIMIT"
	TypeOllamaQuotaExceeded          ErrorType = "OLLAMA_QUOTA_EXCEEDED"
	TypeGmailPermission              ErrorType = "GMAIL_INSUFFICIENT_PERMISSIONS"
	TypeGmailRateLimit               ErrorType = "GMAIL_RATE_LIMIT"
	TypeGmailQuota                   ErrorType = "GMAIL_QUOTA_EXCEEDED"
)

// ClassifyProvider maps a raw LLM provider error to a known category.
// Returns false when the error is unclassified.
func ClassifyProvider(err error) (ErrorType, bool) {
	if err == nil {
		return "", false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
			return TypeOpenAIQuotaExceeded, true
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "Incorrect API key provided"):
		return TypeIncorrectOpenAIKey, true
	case strings.Contains(msg, "does not exist or you do not have access to it"):
		return TypeInvalidOpenAIModel, true
	case strings.Contains(msg, "this API key has been deactivated"):
		return TypeOpenAIKeyDeactivated, true
	case strings.Contains(msg, "You exceeded your current quota"):
		return TypeOpenAIQuotaExceeded, true
	case strings.Contains(msg, "Your credit balance is too low to access the Anthropic API"):
		return TypeAnthropicInsufficientBalance, true
	case strings.Contains(msg, "Invalid API key"),
		strings.Contains(msg, "Authentication failed"):
		return TypeOllamaInvalidKey, true
	case strings.Contains(msg, "Rate limit exceeded"),
		strings.Contains(msg, "Too many requests"):
		return TypeOllamaRateLimit, true
	case strings.Contains(msg, "Quota exceeded"),
		strings.Contains(msg, "Usage limit exceeded"):
		return TypeOllamaQuotaExceeded, true
	}

	return "", false
}

// ClassifyGmail maps a Gmail API error to a known category via its
// googleapi error reason. Returns false when the error is unclassified.
func ClassifyGmail(err error) (ErrorType, bool) {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || len(gerr.Errors) == 0 {
		return "", false
	}

	switch gerr.Errors[0].Reason {
	case "insufficientPermissions":
		return TypeGmailPermission, true
	case "rateLimitExceeded", "userRateLimitExceeded":
		return TypeGmailRateLimit, true
	case "quotaExceeded":
		return TypeGmailQuota, true
	}
	return "", false
}

// IsKnown reports whether err is an expected, user-caused condition that
// should be excluded from exception telemetry
func IsKnown(err error) bool {
	if _, ok := ClassifyProvider(err); ok {
		return true
	}
	if _, ok := ClassifyGmail(err); ok {
		return true
	}
	return false
}

// Capture reports an error to telemetry unless it is a known API error.
// Known errors are expected user-caused conditions and only logged at warn.
func Capture(logger zerolog.Logger, err error, userEmail string, extra map[string]interface{}) {
	if err == nil {
		return
	}

	event := logger.Error()
	if IsKnown(err) {
		event = logger.Warn().Bool("known_api_error", true)
	}
	if userEmail != "" {
		event = event.Str("user_email", userEmail)
	}
	for k, v := range extra {
		event = event.Interface(k, v)
	}
	event.Err(err).Msg("captured exception")
}

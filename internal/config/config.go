package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port        string
	DatabaseURL string
	Version     string
	LogLevel    string

	// Default AI provider when a user has not chosen one
	DefaultAIProvider string

	// Process-wide hosted credentials, used when a user has no personal
	// API key for the chosen provider. Read-only after startup.
	OpenAIKey    string
	AnthropicKey string
	GroqKey      string

	// OllamaBaseURL points at a local or hosted Ollama instance; Ollama
	// needs no API key
	OllamaBaseURL string

	LLMTimeout int // LLM API timeout in seconds

	// Google OAuth application credentials for building per-user Gmail clients
	GoogleClientID     string
	GoogleClientSecret string

	// MaxPatternLength bounds user-supplied rule regexes as a defensive
	// complexity guard
	MaxPatternLength int

	// SendGrid credentials for provider-failure notification emails (optional)
	SendGridAPIKey  string
	NotifyFromEmail string

	// Admin credentials for the rules/usage management endpoints
	AdminUsername string
	AdminPassword string
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Version:     getEnv("VERSION", "1.0.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DefaultAIProvider: getEnv("DEFAULT_AI_PROVIDER", "anthropic"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:      os.Getenv("ANTHROPIC_API_KEY"),
		GroqKey:           os.Getenv("GROQ_API_KEY"),
		OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		LLMTimeout:        getEnvInt("LLM_TIMEOUT", 60),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),

		MaxPatternLength: getEnvInt("MAX_PATTERN_LENGTH", 1000),

		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		NotifyFromEmail: getEnv("NOTIFY_FROM_EMAIL", "noreply@inboxpilot.app"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	return config
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as boolean with a default fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "inboxpilot").
		Str("version", c.Version).
		Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}

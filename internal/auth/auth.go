// Package auth guards the admin routes with token-based authentication
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"inboxpilot/internal/config"
)

// Manager handles authentication for admin routes
type Manager struct {
	config      *config.Config
	tokens      map[string]time.Time
	mu          sync.RWMutex
	tokenExpiry time.Duration
}

// NewManager creates a new authentication manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config:      cfg,
		tokens:      make(map[string]time.Time),
		tokenExpiry: 24 * time.Hour,
	}
}

// Authenticate validates admin credentials and returns a session token
func (am *Manager) Authenticate(username, password string) (string, error) {
	if am.config.AdminPassword == "" ||
		username != am.config.AdminUsername || password != am.config.AdminPassword {
		return "", fmt.Errorf("invalid credentials")
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	am.mu.Lock()
	am.tokens[token] = time.Now().Add(am.tokenExpiry)
	am.mu.Unlock()

	go am.cleanupExpiredTokens()

	return token, nil
}

// ValidateToken checks whether a token exists and has not expired
func (am *Manager) ValidateToken(token string) bool {
	am.mu.RLock()
	defer am.mu.RUnlock()

	expiry, exists := am.tokens[token]
	return exists && time.Now().Before(expiry)
}

// cleanupExpiredTokens removes expired tokens
func (am *Manager) cleanupExpiredTokens() {
	am.mu.Lock()
	defer am.mu.Unlock()

	now := time.Now()
	for token, expiry := range am.tokens {
		if now.After(expiry) {
			delete(am.tokens, token)
		}
	}
}

// Middleware creates middleware for admin route authentication
func Middleware(authManager *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("Authorization")
			if token != "" {
				token = strings.TrimPrefix(token, "Bearer ")
			} else {
				token = c.QueryParam("token")
			}

			if token == "" || !authManager.ValidateToken(token) {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Unauthorized. Please login first.",
				})
			}

			c.Set("auth_token", token)
			return next(c)
		}
	}
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inboxpilot/internal/auth"
	"inboxpilot/internal/models"
)

// LoginHandler authenticates an admin and returns a session token
// @Summary Admin login
// @Description Validates admin credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.LoginResponse
// @Router /api/login [post]
func LoginHandler(authManager *auth.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.LoginResponse{Error: "Invalid request body"})
		}

		token, err := authManager.Authenticate(req.Username, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.LoginResponse{Error: "Invalid credentials"})
		}
		return c.JSON(http.StatusOK, models.LoginResponse{Token: token})
	}
}

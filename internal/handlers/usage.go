package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inboxpilot/internal/models"
)

// UsageHandler returns the user's recent AI usage rows
// @Summary List AI usage
// @Description Returns the user's most recent AI usage records
// @Tags usage
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Maximum rows to return" default(100)
// @Success 200 {array} models.UsageRecord
// @Failure 404 {object} map[string]string
// @Router /api/users/{userID}/usage [get]
func UsageHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, err := env.Users.GetUser(ctx, c.Param("userID"))
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}

		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		records, err := env.Usage.ForEmail(ctx, user.Email, limit)
		if err != nil {
			env.Logger.Error().Err(err).Msg("Failed to list usage")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list usage"})
		}
		if records == nil {
			records = []models.UsageRecord{}
		}
		return c.JSON(http.StatusOK, records)
	}
}

// NotificationsHandler returns the user's unseen error notifications
// @Summary List unseen notifications
// @Description Returns provider failure notifications the user has not seen yet
// @Tags notifications
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} models.UserNotification
// @Failure 404 {object} map[string]string
// @Router /api/users/{userID}/notifications [get]
func NotificationsHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, err := env.Users.GetUser(ctx, c.Param("userID"))
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}

		notifications, err := env.Notifications.Unseen(ctx, user.Email)
		if err != nil {
			env.Logger.Error().Err(err).Msg("Failed to list notifications")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list notifications"})
		}
		if notifications == nil {
			notifications = []models.UserNotification{}
		}
		return c.JSON(http.StatusOK, notifications)
	}
}

// MarkNotificationsSeenHandler flags all of the user's notifications as seen
// @Summary Mark notifications seen
// @Description Marks every notification for the user as seen
// @Tags notifications
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/users/{userID}/notifications/seen [post]
func MarkNotificationsSeenHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, err := env.Users.GetUser(ctx, c.Param("userID"))
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}

		if err := env.Notifications.MarkSeen(ctx, user.Email); err != nil {
			env.Logger.Error().Err(err).Msg("Failed to mark notifications seen")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to mark notifications seen"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "seen"})
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"inboxpilot/internal/emails"
	"inboxpilot/internal/errs"
	"inboxpilot/internal/models"
)

// WebhookHandler runs the rule pipeline on one inbound parsed message
// @Summary Process an inbound message
// @Description Matches the message against the user's rules and executes or plans the resulting actions
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body models.WebhookRequest true "Inbound message"
// @Success 200 {object} models.WebhookResponse
// @Failure 400 {object} models.WebhookResponse
// @Failure 404 {object} models.WebhookResponse
// @Failure 422 {object} models.WebhookResponse
// @Failure 502 {object} models.WebhookResponse
// @Router /api/webhook [post]
func WebhookHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.WebhookRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.WebhookResponse{Error: "Invalid request body"})
		}
		if req.UserID == "" {
			return c.JSON(http.StatusBadRequest, models.WebhookResponse{Error: "user_id is required"})
		}

		ctx := c.Request().Context()

		user, err := env.Users.GetUser(ctx, req.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.WebhookResponse{Error: "User not found"})
		}

		userRules, err := env.Rules.RulesForUser(ctx, user.ID)
		if err != nil {
			env.Logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to load rules")
			return c.JSON(http.StatusInternalServerError, models.WebhookResponse{Error: "Failed to load rules"})
		}
		if len(userRules) == 0 {
			return c.JSON(http.StatusOK, models.WebhookResponse{Handled: false})
		}

		mailer, err := env.NewMailer(ctx, user)
		if err != nil {
			env.Logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to build Gmail client")
			return c.JSON(http.StatusBadGateway, models.WebhookResponse{Error: "Gmail client unavailable"})
		}

		result, err := env.Pipeline.HandleMessage(ctx, user, userRules,
			emails.BuildContext(req.Message), mailer)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, errs.ErrConfiguration) {
				status = http.StatusUnprocessableEntity
			} else if errors.Is(err, errs.ErrResolution) {
				status = http.StatusBadGateway
			}
			return c.JSON(status, models.WebhookResponse{Error: err.Error()})
		}
		if result == nil {
			return c.JSON(http.StatusOK, models.WebhookResponse{Handled: false})
		}

		return c.JSON(http.StatusOK, models.WebhookResponse{
			Handled:  true,
			RuleID:   result.Rule.ID,
			Planned:  result.Planned,
			PlanID:   result.PlanID,
			Outcomes: result.Outcomes,
		})
	}
}

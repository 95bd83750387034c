package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inboxpilot/internal/models"
	"inboxpilot/internal/rules"
)

// ListPlannedHandler returns the user's pending planned actions
// @Summary List pending planned actions
// @Description Returns planned actions awaiting user confirmation, oldest first
// @Tags planned
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} models.PlannedAction
// @Failure 500 {object} map[string]string
// @Router /api/users/{userID}/planned [get]
func ListPlannedHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		plans, err := env.Planned.ListPending(c.Request().Context(), c.Param("userID"))
		if err != nil {
			env.Logger.Error().Err(err).Msg("Failed to list planned actions")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list planned actions"})
		}
		if plans == nil {
			plans = []models.PlannedAction{}
		}
		return c.JSON(http.StatusOK, plans)
	}
}

// ExecutePlanHandler executes a pending planned action with optional
// literal argument overrides
// @Summary Approve and execute a planned action
// @Description Applies the user's argument edits and runs the stored action items against Gmail
// @Tags planned
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param planID path string true "Planned action ID"
// @Param request body models.ExecutePlanRequest true "Argument overrides"
// @Success 200 {object} models.ExecutePlanResponse
// @Failure 404 {object} models.ExecutePlanResponse
// @Failure 409 {object} models.ExecutePlanResponse
// @Failure 502 {object} models.ExecutePlanResponse
// @Router /api/users/{userID}/planned/{planID}/execute [post]
func ExecutePlanHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Param("userID")
		planID := c.Param("planID")

		var req models.ExecutePlanRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ExecutePlanResponse{Error: "Invalid request body"})
		}

		ctx := c.Request().Context()

		plan, email, items, err := env.Planned.Get(ctx, userID, planID)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ExecutePlanResponse{Error: "Planned action not found"})
		}

		user, err := env.Users.GetUser(ctx, plan.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ExecutePlanResponse{Error: "User not found"})
		}

		mailer, err := env.NewMailer(ctx, user)
		if err != nil {
			env.Logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to build Gmail client")
			return c.JSON(http.StatusBadGateway, models.ExecutePlanResponse{Error: "Gmail client unavailable"})
		}

		// Claim the plan before executing so a double submit cannot run
		// the same mutations twice
		if err := env.Planned.SetStatus(ctx, userID, planID, models.PlannedExecuted); err != nil {
			return c.JSON(http.StatusConflict, models.ExecutePlanResponse{Error: err.Error()})
		}

		items = rules.ApplyOverrides(items, req.Args)
		outcomes := env.Executor.Execute(ctx, mailer, email, items)

		success := true
		for _, outcome := range outcomes {
			if !outcome.Success {
				success = false
				break
			}
		}

		env.Logger.Info().Str("plan_id", planID).Str("user_id", userID).
			Bool("success", success).Msg("Executed planned action")
		return c.JSON(http.StatusOK, models.ExecutePlanResponse{
			Success:  success,
			Outcomes: outcomes,
		})
	}
}

// RejectPlanHandler discards a pending planned action
// @Summary Reject a planned action
// @Description Marks a pending planned action as rejected without executing it
// @Tags planned
// @Produce json
// @Param userID path string true "User ID"
// @Param planID path string true "Planned action ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users/{userID}/planned/{planID}/reject [post]
func RejectPlanHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Param("userID")
		planID := c.Param("planID")

		err := env.Planned.SetStatus(c.Request().Context(), userID, planID, models.PlannedRejected)
		if err != nil {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": string(models.PlannedRejected)})
	}
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"inboxpilot/internal/models"
	"inboxpilot/internal/utils"
)

// ListRulesHandler returns the user's rules in evaluation order
// @Summary List rules
// @Description Returns the user's rules with actions, in priority order
// @Tags rules
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} models.Rule
// @Failure 500 {object} map[string]string
// @Router /api/users/{userID}/rules [get]
func ListRulesHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		userRules, err := env.Rules.RulesForUser(c.Request().Context(), c.Param("userID"))
		if err != nil {
			env.Logger.Error().Err(err).Msg("Failed to list rules")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list rules"})
		}
		if userRules == nil {
			userRules = []models.Rule{}
		}
		return c.JSON(http.StatusOK, userRules)
	}
}

// CreateRuleHandler creates a rule with its actions
// @Summary Create a rule
// @Description Adds a rule at the lowest priority (evaluated last)
// @Tags rules
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param request body models.RuleRequest true "Rule definition"
// @Success 201 {object} models.Rule
// @Failure 400 {object} map[string]string
// @Router /api/users/{userID}/rules [post]
func CreateRuleHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.RuleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if strings.TrimSpace(req.Name) == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Rule name is required"})
		}
		if len(req.Actions) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "At least one action is required"})
		}
		for _, action := range req.Actions {
			if !action.Type.Valid() {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"error": "Unsupported action type: " + string(action.Type),
				})
			}
		}

		rule := models.Rule{
			ID:       utils.NewID(),
			UserID:   c.Param("userID"),
			Name:     req.Name,
			From:     req.From,
			To:       req.To,
			Subject:  req.Subject,
			Body:     req.Body,
			Automate: req.Automate,
			Actions:  req.Actions,
		}
		for i := range rule.Actions {
			rule.Actions[i].ID = utils.NewID()
			rule.Actions[i].RuleID = rule.ID
		}

		if err := env.Rules.CreateRule(c.Request().Context(), &rule); err != nil {
			env.Logger.Error().Err(err).Msg("Failed to create rule")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create rule"})
		}

		return c.JSON(http.StatusCreated, rule)
	}
}

// DeleteRuleHandler removes a rule and its actions
// @Summary Delete a rule
// @Description Removes a rule, scoped to its owner
// @Tags rules
// @Produce json
// @Param userID path string true "User ID"
// @Param ruleID path string true "Rule ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/users/{userID}/rules/{ruleID} [delete]
func DeleteRuleHandler(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := env.Rules.DeleteRule(c.Request().Context(), c.Param("userID"), c.Param("ruleID"))
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}

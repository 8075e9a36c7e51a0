package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/service"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

func GenerateGoals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		profile, ok := requireProfile(c, app, user)
		if !ok {
			return
		}

		existing, err := app.Goals().ListActiveGoals(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goals")
			return
		}
		if len(existing) > 0 {
			HandleError(c, app.Logger(), errors.New("active goals already exist"), 409, "Goals already generated")
			return
		}

		specs := app.Planner().GenerateGoals(c.Request.Context(), profile)
		goals, err := service.CreateGoalsFromSpecs(c.Request.Context(), app.Goals(), user, specs)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save goals")
			return
		}
		HandleSuccess(c, app.Logger(), goals, nil)
	}
}

func ListGoals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		goals, err := app.Goals().ListGoals(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goals")
			return
		}
		HandleSuccess(c, app.Logger(), goals, nil)
	}
}

func UpdateGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		goalID := c.Param("id")

		var req service.GoalUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateGoalUpdateRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Goal update validation failed")
			return
		}

		// Ownership check before mutating.
		goal, err := app.Goals().GetGoal(c.Request.Context(), goalID)
		if err != nil || goal.UserID != user.ID {
			if err == nil {
				err = storage.ErrNotFound
			}
			HandleError(c, app.Logger(), err, 404, "Goal not found")
			return
		}

		updated, err := service.UpdateGoal(c.Request.Context(), app.Goals(), goalID, &req)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Goal not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to update goal")
			return
		}
		HandleSuccess(c, app.Logger(), updated, nil)
	}
}

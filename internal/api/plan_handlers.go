package api

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/service"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

type GenerateRequest struct {
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
}

func (r *GenerateRequest) timezoneOr(fallback string) string {
	if r.Timezone != "" {
		return r.Timezone
	}
	return fallback
}

func GenerateDailyPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		// Body is optional; an absent or malformed one means "today".
		var req GenerateRequest
		_ = c.ShouldBindJSON(&req)
		date, err := requestedDate(app, req.Date)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date, expected YYYY-MM-DD")
			return
		}

		profile, ok := requireProfile(c, app, user)
		if !ok {
			return
		}
		goals, err := app.Goals().ListActiveGoals(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goals")
			return
		}

		plan, err := app.Planner().GenerateDailyPlan(c.Request.Context(), user.ID, profile, goals, date, req.timezoneOr(app.DefaultTimezone()))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to persist plan")
			return
		}
		HandleSuccess(c, app.Logger(), plan, nil)
	}
}

func GenerateDailyTasks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req GenerateRequest
		_ = c.ShouldBindJSON(&req)
		date, err := requestedDate(app, req.Date)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date, expected YYYY-MM-DD")
			return
		}

		profile, ok := requireProfile(c, app, user)
		if !ok {
			return
		}
		goals, err := app.Goals().ListActiveGoals(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goals")
			return
		}

		tasks, err := app.Planner().GenerateDailyTasks(c.Request.Context(), user.ID, profile, goals, date, req.timezoneOr(app.DefaultTimezone()))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to persist tasks")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"daily_tasks": tasks}, map[string]any{"date": date})
	}
}

func GetPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		dateKey := c.Param("date")

		record, err := app.Plans().GetPlan(c.Request.Context(), user.ID, dateKey)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "No plan for date")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to fetch plan")
			return
		}

		var plan json.RawMessage
		if err := json.Unmarshal([]byte(record.PlanJSON), &plan); err != nil {
			HandleError(c, app.Logger(), err, 500, "Stored plan is corrupted")
			return
		}
		HandleSuccess(c, app.Logger(), plan, map[string]any{"date_key": record.DateKey, "timezone": record.Timezone})
	}
}

func ToggleTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		date := c.Param("date")
		taskID := c.Param("id")

		task, err := service.ToggleTask(c.Request.Context(), app.Plans(), user.ID, date, taskID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) || errors.Is(err, service.ErrTaskNotFound) {
				HandleError(c, app.Logger(), err, 404, "Task not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to toggle task")
			return
		}
		HandleSuccess(c, app.Logger(), task, nil)
	}
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamyarmaaf/plan1/internal"
)

type MonthlyGenerateRequest struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Timezone string `json:"timezone"`
}

func GenerateMonthlyPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var req MonthlyGenerateRequest
		_ = c.ShouldBindJSON(&req)

		now := time.Now()
		year, month := req.Year, time.Month(req.Month)
		if req.Year == 0 {
			year = now.Year()
		}
		if req.Month == 0 {
			month = now.Month()
		}
		if month < time.January || month > time.December {
			HandleError(c, app.Logger(), errInvalidMonth, 400, "Invalid month, expected 1-12")
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

		tz := req.Timezone
		if tz == "" {
			tz = app.DefaultTimezone()
		}
		plan, key, err := app.Planner().GenerateMonthlyPlan(c.Request.Context(), user.ID, profile, goals, year, month, tz)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to persist monthly plan")
			return
		}
		HandleSuccess(c, app.Logger(), plan, map[string]any{"date_key": key})
	}
}

var errInvalidMonth = &internal.AppError{Code: 400, Message: "month out of range"}

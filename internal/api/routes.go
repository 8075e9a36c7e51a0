package api

import (
	"github.com/gin-gonic/gin"
	"github.com/kamyarmaaf/plan1/internal/auth"
)

// NewRouter wires middleware and all API routes onto a fresh engine.
func NewRouter(app App, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	api := r.Group("/api")
	api.Use(auth.Middleware(provider))
	{
		api.PUT("/profile", PutProfile(app))
		api.GET("/profile", GetProfile(app))

		api.POST("/plans/daily/generate", GenerateDailyPlan(app))
		api.POST("/plans/monthly/generate", GenerateMonthlyPlan(app))
		api.GET("/plans/:date", GetPlan(app))

		api.POST("/tasks/daily/generate", GenerateDailyTasks(app))
		api.PATCH("/tasks/:date/:id/toggle", ToggleTask(app))

		api.POST("/goals/generate", GenerateGoals(app))
		api.GET("/goals", ListGoals(app))
		api.PATCH("/goals/:id", UpdateGoal(app))
	}
	return r
}

package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyTasksPayload_Validate(t *testing.T) {
	ok := DailyTasksPayload{DailyTasks: []TaskPayload{{Title: "x", Type: "work"}}}
	assert.NoError(t, ok.Validate())

	// Time is deliberately unconstrained; normalization repairs it later.
	weirdTime := DailyTasksPayload{DailyTasks: []TaskPayload{{Title: "x", Type: "work", Time: "sometime"}}}
	assert.NoError(t, weirdTime.Validate())

	empty := DailyTasksPayload{}
	assert.Error(t, empty.Validate())

	badType := DailyTasksPayload{DailyTasks: []TaskPayload{{Title: "x", Type: "nap"}}}
	assert.Error(t, badType.Validate())

	noTitle := DailyTasksPayload{DailyTasks: []TaskPayload{{Type: "work"}}}
	assert.Error(t, noTitle.Validate())
}

func TestDailyPlanPayload_Validate(t *testing.T) {
	ok := DailyPlanPayload{Items: []PlanItemPayload{
		{StartTime: "08:00", EndTime: "09:00", Title: "Gym", Type: "exercise", Priority: "high"},
	}}
	assert.NoError(t, ok.Validate())

	badTime := DailyPlanPayload{Items: []PlanItemPayload{
		{StartTime: "8am", EndTime: "09:00", Title: "Gym", Type: "exercise"},
	}}
	assert.Error(t, badTime.Validate())

	badPriority := DailyPlanPayload{Items: []PlanItemPayload{
		{StartTime: "08:00", EndTime: "09:00", Title: "Gym", Type: "exercise", Priority: "urgent"},
	}}
	assert.Error(t, badPriority.Validate())
}

func TestGoalsPayload_Validate(t *testing.T) {
	ok := GoalsPayload{Goals: []GoalPayload{
		{Title: "x", Category: "career", Priority: 3, TargetTimeframe: "6 months"},
	}}
	assert.NoError(t, ok.Validate())

	badCategory := GoalsPayload{Goals: []GoalPayload{
		{Title: "x", Category: "wealth", Priority: 3, TargetTimeframe: "6 months"},
	}}
	assert.Error(t, badCategory.Validate())

	badPriority := GoalsPayload{Goals: []GoalPayload{
		{Title: "x", Category: "career", Priority: 9, TargetTimeframe: "6 months"},
	}}
	assert.Error(t, badPriority.Validate())
}

func TestMonthlyPlanPayload_Validate(t *testing.T) {
	ok := MonthlyPlanPayload{
		AIVision:     AIVisionPayload{SixMonthProjection: "a", OneYearVision: "b"},
		MonthlyGoals: []MonthlyGoalPayload{{Title: "x", Category: "personal", Progress: 10}},
		Milestones:   []MilestonePayload{{Title: "m", Date: "2026-09-15"}},
	}
	assert.NoError(t, ok.Validate())

	badDate := ok
	badDate.Milestones = []MilestonePayload{{Title: "m", Date: "15.09.2026"}}
	assert.Error(t, badDate.Validate())

	badProgress := ok
	badProgress.MonthlyGoals = []MonthlyGoalPayload{{Title: "x", Category: "personal", Progress: 120}}
	assert.Error(t, badProgress.Validate())
}

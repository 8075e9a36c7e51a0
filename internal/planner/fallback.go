package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kamyarmaaf/plan1/internal"
)

// GoalSpec is a long-term goal candidate produced by goal generation. The
// service layer turns accepted specs into persisted goals.
type GoalSpec struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Category        internal.GoalCategory `json:"category"`
	Priority        int                   `json:"priority"` // 1-5
	TargetTimeframe string                `json:"target_timeframe"`
}

func sortByPriority(goals []internal.LongTermGoal) []internal.LongTermGoal {
	sorted := make([]internal.LongTermGoal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}

// dailyPlanTemplate is the fixed 11-slot day the fallback starts from,
// spanning 07:00 to 07:00 and wrapping through sleep.
func dailyPlanTemplate() []internal.DailyPlanItem {
	return []internal.DailyPlanItem{
		{StartTime: "07:00", EndTime: "07:30", Title: "Morning Routine", Type: internal.TaskTypeOther, Priority: "medium"},
		{StartTime: "07:30", EndTime: "08:00", Title: "Breakfast", Type: internal.TaskTypeMeal, Priority: "high"},
		{StartTime: "08:00", EndTime: "12:00", Title: "Deep Work", Type: internal.TaskTypeWork, Priority: "high"},
		{StartTime: "12:00", EndTime: "13:00", Title: "Lunch", Type: internal.TaskTypeMeal, Priority: "high"},
		{StartTime: "13:00", EndTime: "17:00", Title: "Afternoon Work", Type: internal.TaskTypeWork, Priority: "medium"},
		{StartTime: "17:00", EndTime: "18:00", Title: "Exercise", Type: internal.TaskTypeExercise, Priority: "medium"},
		{StartTime: "18:00", EndTime: "19:00", Title: "Dinner", Type: internal.TaskTypeMeal, Priority: "high"},
		{StartTime: "19:00", EndTime: "20:30", Title: "Evening Reading", Type: internal.TaskTypeReading, Priority: "medium"},
		{StartTime: "20:30", EndTime: "21:30", Title: "Personal Time", Type: internal.TaskTypeOther, Priority: "low"},
		{StartTime: "21:30", EndTime: "22:30", Title: "Evening Planning", Type: internal.TaskTypeOther, Priority: "low"},
		{StartTime: "22:30", EndTime: "07:00", Title: "Sleep", Type: internal.TaskTypeSleep, Priority: "high"},
	}
}

// slotOverride describes how a goal of a given category rewrites one
// template slot. Kept as data so the substitution policy stays auditable.
type slotOverride struct {
	slot     int
	title    string
	taskType internal.TaskType
	priority string
}

var categoryOverrides = map[internal.GoalCategory]slotOverride{
	internal.CategoryFitness:   {slot: 5, title: "Goal-focused Exercise", taskType: internal.TaskTypeExercise, priority: "high"},
	internal.CategoryLearning:  {slot: 7, title: "Goal-focused Learning", taskType: internal.TaskTypeReading, priority: "high"},
	internal.CategoryCareer:    {slot: 2, title: "Goal-focused Work", taskType: internal.TaskTypeWork, priority: "high"},
	internal.CategoryPersonal:  {slot: 8, title: "Goal-focused Personal Time", taskType: internal.TaskTypeOther, priority: "medium"},
	internal.CategoryFinancial: {slot: 9, title: "Financial Review", taskType: internal.TaskTypeOther, priority: "medium"},
}

// FallbackDailyPlan builds the deterministic rule-based day schedule. With
// active goals, the top three by priority each rewrite their category's
// template slot (first goal per category wins). Without goals, the profile
// alone drives two substitutions: a yoga exercise slot and a reading slot.
func FallbackDailyPlan(profile *internal.Profile, goals []internal.LongTermGoal) []internal.DailyPlanItem {
	items := dailyPlanTemplate()

	if len(goals) > 0 {
		top := sortByPriority(goals)
		if len(top) > 3 {
			top = top[:3]
		}
		used := make(map[internal.GoalCategory]bool)
		for _, g := range top {
			ov, ok := categoryOverrides[g.Category]
			if !ok || used[g.Category] {
				continue
			}
			used[g.Category] = true
			items[ov.slot] = internal.DailyPlanItem{
				StartTime: items[ov.slot].StartTime,
				EndTime:   items[ov.slot].EndTime,
				Title:     ov.title,
				Type:      ov.taskType,
				Priority:  ov.priority,
				Notes:     "Supports goal: " + g.Title,
			}
		}
		return items
	}

	if strings.Contains(strings.ToLower(profile.Sports), "yoga") {
		items[5] = internal.DailyPlanItem{
			StartTime: "17:00", EndTime: "18:00",
			Title: "Yoga session", Type: internal.TaskTypeExercise, Priority: "medium",
		}
	}
	if profile.Reading != "" {
		items[7] = internal.DailyPlanItem{
			StartTime: "19:00", EndTime: "20:30",
			Title: "Reading time", Type: internal.TaskTypeReading, Priority: "medium",
			Notes: "Reading interest: " + profile.Reading,
		}
	}
	return items
}

// FallbackDailyTasks synthesizes one task per goal for up to the two
// highest-priority active goals, prepends them to two fixed defaults and
// caps the list at five entries.
func FallbackDailyTasks(profile *internal.Profile, goals []internal.LongTermGoal) []internal.DailyTask {
	top := sortByPriority(goals)
	if len(top) > 2 {
		top = top[:2]
	}

	var tasks []internal.DailyTask
	for _, g := range top {
		switch g.Category {
		case internal.CategoryFitness:
			tasks = append(tasks, internal.DailyTask{
				Title: "Morning Workout", Time: "07:00", Type: internal.TaskTypeExercise,
				Description: "Train for: " + g.Title,
			})
		case internal.CategoryLearning:
			tasks = append(tasks, internal.DailyTask{
				Title: "Learning Session", Time: "19:00", Type: internal.TaskTypeReading,
				Description: "Study for: " + g.Title,
			})
		case internal.CategoryCareer:
			tasks = append(tasks, internal.DailyTask{
				Title: "Career Work Block", Time: "09:00", Type: internal.TaskTypeWork,
				Description: "Advance: " + g.Title,
			})
		default:
			tasks = append(tasks, internal.DailyTask{
				Title: "Goal Task", Time: "18:00", Type: internal.TaskTypeOther,
				Description: "Work towards: " + g.Title,
			})
		}
	}

	tasks = append(tasks,
		internal.DailyTask{Title: "Morning Routine", Time: "08:00", Type: internal.TaskTypeOther, Description: "Start the day with a consistent routine"},
		internal.DailyTask{Title: "Focus Block", Time: "10:00", Type: internal.TaskTypeWork, Description: "Uninterrupted focus time"},
	)
	if len(tasks) > 5 {
		tasks = tasks[:5]
	}
	for i := range tasks {
		tasks[i].ID = fmt.Sprintf("task-%d", i+1)
	}
	return tasks
}

// FallbackGoals derives template long-term goals from the profile alone:
// always a career goal, conditional fitness/learning/wellness goals, and
// unconditional financial and personal-development goals, capped at five.
func FallbackGoals(profile *internal.Profile) []GoalSpec {
	specs := []GoalSpec{
		{
			Title:           "Advance in " + profile.WorkStudy,
			Description:     "Grow professionally based on your current focus: " + profile.WorkStudy,
			Category:        internal.CategoryCareer,
			Priority:        5,
			TargetTimeframe: "12 months",
		},
	}
	if profile.Sports != "" {
		specs = append(specs, GoalSpec{
			Title:           "Train consistently: " + profile.Sports,
			Description:     "Build a sustainable training habit around " + profile.Sports,
			Category:        internal.CategoryFitness,
			Priority:        4,
			TargetTimeframe: "6 months",
		})
	}
	if profile.Hobbies != "" {
		specs = append(specs, GoalSpec{
			Title:           "Deepen skills in " + profile.Hobbies,
			Description:     "Dedicate regular time to " + profile.Hobbies,
			Category:        internal.CategoryLearning,
			Priority:        4,
			TargetTimeframe: "6 months",
		})
	}
	if profile.HasPhysicalStats() {
		specs = append(specs, GoalSpec{
			Title:           "Build healthy daily habits",
			Description:     "Improve sleep, nutrition and movement based on your physical stats",
			Category:        internal.CategoryPersonal,
			Priority:        3,
			TargetTimeframe: "3 months",
		})
	}
	specs = append(specs,
		GoalSpec{
			Title:           "Build an emergency fund",
			Description:     "Set aside a fixed share of income every month",
			Category:        internal.CategoryFinancial,
			Priority:        3,
			TargetTimeframe: "12 months",
		},
		GoalSpec{
			Title:           "Strengthen personal development habits",
			Description:     "Reflect weekly and keep a consistent routine",
			Category:        internal.CategoryPersonal,
			Priority:        2,
			TargetTimeframe: "6 months",
		},
	)
	if len(specs) > 5 {
		specs = specs[:5]
	}
	return specs
}

// FallbackMonthlyPlan builds a deterministic monthly plan: vision text from
// the profile focus, one monthly goal per top active goal (or a default),
// and three fixed-date milestones within the month.
func FallbackMonthlyPlan(profile *internal.Profile, goals []internal.LongTermGoal, year int, month time.Month) *internal.MonthlyPlan {
	plan := &internal.MonthlyPlan{
		AIVision: internal.AIVision{
			SixMonthProjection: fmt.Sprintf("In six months you will have made steady, visible progress in %s while keeping your routines sustainable.", profile.WorkStudy),
			OneYearVision:      fmt.Sprintf("In one year, consistent work in %s compounds into a clear step forward in your career and personal life.", profile.WorkStudy),
		},
	}

	top := sortByPriority(goals)
	if len(top) > 3 {
		top = top[:3]
	}
	for i, g := range top {
		plan.MonthlyGoals = append(plan.MonthlyGoals, internal.MonthlyGoal{
			ID:       fmt.Sprintf("mg-%d", i+1),
			Title:    "This month: " + g.Title,
			Category: g.Category,
			Progress: g.Progress,
			Target:   g.TargetTimeframe,
		})
	}
	if len(plan.MonthlyGoals) == 0 {
		plan.MonthlyGoals = append(plan.MonthlyGoals, internal.MonthlyGoal{
			ID:       "mg-1",
			Title:    "Establish a consistent daily routine",
			Category: internal.CategoryPersonal,
			Progress: 0,
			Target:   "this month",
		})
	}

	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	milestoneDays := []struct {
		day   int
		title string
	}{
		{10, "First progress check-in"},
		{20, "Mid-month review"},
		{lastDay, "Month wrap-up"},
	}
	for i, m := range milestoneDays {
		plan.Milestones = append(plan.Milestones, internal.Milestone{
			ID:          fmt.Sprintf("ms-%d", i+1),
			Title:       m.title,
			Date:        fmt.Sprintf("%04d-%02d-%02d", year, int(month), m.day),
			Description: "Review progress on this month's goals",
		})
	}
	return plan
}

package planner

import (
	"github.com/go-playground/validator/v10"
	"github.com/kamyarmaaf/plan1/internal"
)

var validate = validator.New()

// Payload structs describe the JSON shapes requested from generation
// backends. Parsed output is validated against these before it is trusted;
// any structural violation counts as an attempt failure.

type TaskPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Time        string `json:"time"` // repaired by NormalizeTasks, not validated here
	Type        string `json:"type" validate:"required,oneof=work study exercise meal reading break sleep other"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

type DailyTasksPayload struct {
	DailyTasks []TaskPayload `json:"daily_tasks" validate:"required,min=1,dive"`
}

func (p DailyTasksPayload) Validate() error {
	return validate.Struct(p)
}

func (p DailyTasksPayload) Tasks() []internal.DailyTask {
	tasks := make([]internal.DailyTask, len(p.DailyTasks))
	for i, t := range p.DailyTasks {
		tasks[i] = internal.DailyTask{
			ID:          t.ID,
			Title:       t.Title,
			Time:        t.Time,
			Type:        internal.TaskType(t.Type),
			Completed:   t.Completed,
			Description: t.Description,
		}
	}
	return tasks
}

type PlanItemPayload struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Title     string `json:"title" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=work study exercise meal reading break sleep other"`
	Priority  string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Notes     string `json:"notes"`
}

type DailyPlanPayload struct {
	Items []PlanItemPayload `json:"items" validate:"required,min=1,dive"`
}

func (p DailyPlanPayload) Validate() error {
	return validate.Struct(p)
}

func (p DailyPlanPayload) PlanItems() []internal.DailyPlanItem {
	items := make([]internal.DailyPlanItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = internal.DailyPlanItem{
			StartTime: it.StartTime,
			EndTime:   it.EndTime,
			Title:     it.Title,
			Type:      internal.TaskType(it.Type),
			Priority:  it.Priority,
			Notes:     it.Notes,
		}
	}
	return items
}

type GoalPayload struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	Category        string `json:"category" validate:"required,oneof=fitness learning career personal financial"`
	Priority        int    `json:"priority" validate:"gte=1,lte=5"`
	TargetTimeframe string `json:"target_timeframe" validate:"required"`
}

type GoalsPayload struct {
	Goals []GoalPayload `json:"goals" validate:"required,min=1,max=10,dive"`
}

func (p GoalsPayload) Validate() error {
	return validate.Struct(p)
}

func (p GoalsPayload) Specs() []GoalSpec {
	specs := make([]GoalSpec, len(p.Goals))
	for i, g := range p.Goals {
		specs[i] = GoalSpec{
			Title:           g.Title,
			Description:     g.Description,
			Category:        internal.GoalCategory(g.Category),
			Priority:        g.Priority,
			TargetTimeframe: g.TargetTimeframe,
		}
	}
	return specs
}

type MonthlyGoalPayload struct {
	ID       string `json:"id"`
	Title    string `json:"title" validate:"required"`
	Category string `json:"category" validate:"required,oneof=fitness learning career personal financial"`
	Progress int    `json:"progress" validate:"gte=0,lte=100"`
	Target   string `json:"target"`
}

type MilestonePayload struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

type AIVisionPayload struct {
	SixMonthProjection string `json:"six_month_projection" validate:"required"`
	OneYearVision      string `json:"one_year_vision" validate:"required"`
}

type MonthlyPlanPayload struct {
	AIVision     AIVisionPayload      `json:"ai_vision" validate:"required"`
	MonthlyGoals []MonthlyGoalPayload `json:"monthly_goals" validate:"required,min=1,dive"`
	Milestones   []MilestonePayload   `json:"milestones" validate:"required,min=1,dive"`
}

func (p MonthlyPlanPayload) Validate() error {
	return validate.Struct(p)
}

func (p MonthlyPlanPayload) Plan() *internal.MonthlyPlan {
	plan := &internal.MonthlyPlan{
		AIVision: internal.AIVision{
			SixMonthProjection: p.AIVision.SixMonthProjection,
			OneYearVision:      p.AIVision.OneYearVision,
		},
	}
	for _, g := range p.MonthlyGoals {
		plan.MonthlyGoals = append(plan.MonthlyGoals, internal.MonthlyGoal{
			ID: g.ID, Title: g.Title, Category: internal.GoalCategory(g.Category),
			Progress: g.Progress, Target: g.Target,
		})
	}
	for _, m := range p.Milestones {
		plan.Milestones = append(plan.Milestones, internal.Milestone{
			ID: m.ID, Title: m.Title, Date: m.Date,
			Completed: m.Completed, Description: m.Description,
		})
	}
	return plan
}

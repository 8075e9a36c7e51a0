package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Profile holds the user attributes that drive plan generation.
// One profile per user; the planner treats it as immutable input.
type Profile struct {
	UserID    string    `json:"user_id"`
	WorkStudy string    `json:"work_study"`
	Hobbies   string    `json:"hobbies"`
	Sports    string    `json:"sports"`
	Location  string    `json:"location"`
	Age       int       `json:"age,omitempty"`
	WeightKg  float64   `json:"weight_kg,omitempty"`
	HeightCm  float64   `json:"height_cm,omitempty"`
	Reading   string    `json:"reading,omitempty"`
	Extras    string    `json:"extras,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPhysicalStats reports whether any optional physical attribute is set.
func (p *Profile) HasPhysicalStats() bool {
	return p.Age > 0 || p.WeightKg > 0 || p.HeightCm > 0
}

type GoalCategory string

const (
	CategoryFitness   GoalCategory = "fitness"
	CategoryLearning  GoalCategory = "learning"
	CategoryCareer    GoalCategory = "career"
	CategoryPersonal  GoalCategory = "personal"
	CategoryFinancial GoalCategory = "financial"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusArchived  GoalStatus = "archived"
)

// LongTermGoal is created once (by generation or template) and afterwards
// mutated only through progress/status/priority updates. Status transitions
// are unconstrained; progress stays within [0,100].
type LongTermGoal struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Category        GoalCategory `json:"category"`
	Priority        int          `json:"priority"` // higher = more important
	TargetTimeframe string       `json:"target_timeframe"`
	Progress        int          `json:"progress"` // 0-100
	Status          GoalStatus   `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type TaskType string

const (
	TaskTypeWork     TaskType = "work"
	TaskTypeStudy    TaskType = "study"
	TaskTypeExercise TaskType = "exercise"
	TaskTypeMeal     TaskType = "meal"
	TaskTypeReading  TaskType = "reading"
	TaskTypeBreak    TaskType = "break"
	TaskTypeSleep    TaskType = "sleep"
	TaskTypeOther    TaskType = "other"
)

// DailyPlanItem is one slot of a generated day schedule. Items are not
// required to be gap-free or non-overlapping.
type DailyPlanItem struct {
	StartTime string   `json:"start_time"` // "HH:MM"
	EndTime   string   `json:"end_time"`   // "HH:MM"
	Title     string   `json:"title"`
	Type      TaskType `json:"type"`
	Priority  string   `json:"priority,omitempty"` // low, medium, high
	Notes     string   `json:"notes,omitempty"`
}

// DailyPlan is the ordered item sequence for one calendar date.
type DailyPlan struct {
	Date     string          `json:"date"` // "YYYY-MM-DD"
	Timezone string          `json:"timezone"`
	Items    []DailyPlanItem `json:"items"`
}

// DailyTask is a checkable task within one day. Within a persisted set no
// two tasks share a time value after normalization.
type DailyTask struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Time        string   `json:"time"` // "HH:MM"
	Type        TaskType `json:"type"`
	Completed   bool     `json:"completed"`
	Description string   `json:"description"`
}

type MonthlyGoal struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Category GoalCategory `json:"category"`
	Progress int          `json:"progress"` // 0-100
	Target   string       `json:"target"`
}

type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // "YYYY-MM-DD"
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

// AIVision is the projection pair carried by a monthly plan.
type AIVision struct {
	SixMonthProjection string `json:"six_month_projection"`
	OneYearVision      string `json:"one_year_vision"`
}

type MonthlyPlan struct {
	AIVision     AIVision      `json:"ai_vision"`
	MonthlyGoals []MonthlyGoal `json:"monthly_goals"`
	Milestones   []Milestone   `json:"milestones"`
}

// PlanRecord is a persisted plan blob keyed by (user, dateKey). Daily plans
// use the date itself; monthly plans use a "monthly-YYYY-MM" key so both
// share the same storage surface.
type PlanRecord struct {
	UserID    string    `json:"user_id"`
	DateKey   string    `json:"date_key"`
	Timezone  string    `json:"timezone"`
	PlanJSON  string    `json:"plan_json"`
	UpdatedAt time.Time `json:"updated_at"`
}

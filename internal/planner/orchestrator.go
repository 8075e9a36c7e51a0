package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/llm"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

// DailyTasksDocument is the persisted JSON layout for a day's task set.
type DailyTasksDocument struct {
	DailyTasks []internal.DailyTask `json:"daily_tasks"`
}

// Generator sequences generation attempts across an ordered backend chain,
// validates their output, falls back to the deterministic synthesizer and
// persists the result. Backends are attempted strictly one after another;
// an empty chain routes straight to the fallback.
type Generator struct {
	backends []llm.Backend
	plans    storage.PlanRepository
	logger   internal.Logger
	now      func() time.Time
}

func NewGenerator(backends []llm.Backend, plans storage.PlanRepository, logger internal.Logger) *Generator {
	return &Generator{
		backends: backends,
		plans:    plans,
		logger:   logger,
		now:      time.Now,
	}
}

// MonthlyKey builds the synthetic date key monthly plans are stored under,
// distinguishing them from daily dates on the same storage surface.
func MonthlyKey(year int, month time.Month) string {
	return fmt.Sprintf("monthly-%04d-%02d", year, int(month))
}

// attemptGeneration walks the backend chain: complete, strip/parse, then
// schema-validate. Every failure is logged and the next backend tried; the
// first valid payload wins.
func attemptGeneration[T any](ctx context.Context, g *Generator, useCase, systemPrompt, userPrompt string, validate llm.Validator[T]) (T, bool) {
	var zero T
	for _, backend := range g.backends {
		text, err := backend.Complete(ctx, llm.CompletionRequest{
			SystemPrompt: systemPrompt,
			UserPrompt:   userPrompt,
		})
		if err != nil {
			g.logger.Warnf("generation %s: backend %s failed: %v", useCase, backend.Name(), err)
			continue
		}
		payload, err := llm.ExtractJSON(text, validate)
		if err != nil {
			g.logger.Warnf("generation %s: backend %s returned unusable output: %v", useCase, backend.Name(), err)
			continue
		}
		g.logger.Infof("generation %s: backend %s succeeded", useCase, backend.Name())
		return payload, true
	}
	return zero, false
}

func (g *Generator) persist(ctx context.Context, userID, dateKey, timezone string, doc any) error {
	blob, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	return g.plans.UpsertPlan(ctx, &internal.PlanRecord{
		UserID:    userID,
		DateKey:   dateKey,
		Timezone:  timezone,
		PlanJSON:  string(blob),
		UpdatedAt: g.now(),
	})
}

// GenerateDailyTasks produces the task set for one date, normalizes its
// times and persists it under (user, date).
func (g *Generator) GenerateDailyTasks(ctx context.Context, userID string, profile *internal.Profile, goals []internal.LongTermGoal, date, timezone string) ([]internal.DailyTask, error) {
	var tasks []internal.DailyTask
	payload, ok := attemptGeneration(ctx, g, "daily-tasks", dailyTasksSystemPrompt,
		dailyTasksUserPrompt(profile, goals, date), DailyTasksPayload.Validate)
	if ok {
		tasks = payload.Tasks()
	} else {
		tasks = FallbackDailyTasks(profile, goals)
	}

	tasks = NormalizeTasks(tasks)

	if err := g.persist(ctx, userID, date, timezone, DailyTasksDocument{DailyTasks: tasks}); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GenerateDailyPlan produces the full day schedule for one date and
// persists it under (user, date).
func (g *Generator) GenerateDailyPlan(ctx context.Context, userID string, profile *internal.Profile, goals []internal.LongTermGoal, date, timezone string) (*internal.DailyPlan, error) {
	var items []internal.DailyPlanItem
	payload, ok := attemptGeneration(ctx, g, "daily-plan", dailyPlanSystemPrompt,
		dailyPlanUserPrompt(profile, goals, date), DailyPlanPayload.Validate)
	if ok {
		items = payload.PlanItems()
	} else {
		items = FallbackDailyPlan(profile, goals)
	}

	plan := &internal.DailyPlan{Date: date, Timezone: timezone, Items: items}
	if err := g.persist(ctx, userID, date, timezone, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GenerateMonthlyPlan produces the plan for (year, month) and persists it
// under the synthetic monthly key.
func (g *Generator) GenerateMonthlyPlan(ctx context.Context, userID string, profile *internal.Profile, goals []internal.LongTermGoal, year int, month time.Month, timezone string) (*internal.MonthlyPlan, string, error) {
	var plan *internal.MonthlyPlan
	payload, ok := attemptGeneration(ctx, g, "monthly-plan", monthlyPlanSystemPrompt,
		monthlyPlanUserPrompt(profile, goals, year, int(month)), MonthlyPlanPayload.Validate)
	if ok {
		plan = payload.Plan()
	} else {
		plan = FallbackMonthlyPlan(profile, goals, year, month)
	}

	key := MonthlyKey(year, month)
	if err := g.persist(ctx, userID, key, timezone, plan); err != nil {
		return nil, "", err
	}
	return plan, key, nil
}

// GenerateGoals derives long-term goal candidates from the profile. The
// caller persists accepted specs through the goal repository; no plan
// write happens here.
func (g *Generator) GenerateGoals(ctx context.Context, profile *internal.Profile) []GoalSpec {
	payload, ok := attemptGeneration(ctx, g, "long-term-goals", goalsSystemPrompt,
		goalsUserPrompt(profile), GoalsPayload.Validate)
	if ok {
		return payload.Specs()
	}
	return FallbackGoals(profile)
}

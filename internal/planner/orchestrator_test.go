package planner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/llm"
	"github.com/kamyarmaaf/plan1/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	s.calls++
	return s.text, s.err
}

type memPlanRepo struct {
	records map[string]*internal.PlanRecord
	upserts int
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{records: make(map[string]*internal.PlanRecord)}
}

func (m *memPlanRepo) GetPlan(ctx context.Context, userID, dateKey string) (*internal.PlanRecord, error) {
	rec, ok := m.records[userID+"|"+dateKey]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return rec, nil
}

func (m *memPlanRepo) UpsertPlan(ctx context.Context, rec *internal.PlanRecord) error {
	m.upserts++
	m.records[rec.UserID+"|"+rec.DateKey] = rec
	return nil
}

func newTestGenerator(plans storage.PlanRepository, backends ...llm.Backend) *Generator {
	return NewGenerator(backends, plans, internal.NopLogger{})
}

func TestGenerateDailyTasks_BackendOutputUsed(t *testing.T) {
	raw := "```json\n" + `{"daily_tasks": [
		{"title": "Write report", "time": "09:00", "type": "work"},
		{"title": "Stretch", "type": "exercise"}
	]}` + "\n```"
	backend := &stubBackend{name: "ollama", text: raw}
	repo := newMemPlanRepo()
	g := newTestGenerator(repo, backend)

	tasks, err := g.GenerateDailyTasks(context.Background(), "u1", testProfile(), nil, "2026-03-01", "UTC")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, "09:00", tasks[0].Time)
	// The second task had no time and must get a normalized one.
	assert.Regexp(t, `^\d{2}:\d{2}$`, tasks[1].Time)
	assert.NotEqual(t, tasks[0].Time, tasks[1].Time)

	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, 1, repo.upserts)

	rec, err := repo.GetPlan(context.Background(), "u1", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "UTC", rec.Timezone)

	var doc DailyTasksDocument
	require.NoError(t, json.Unmarshal([]byte(rec.PlanJSON), &doc))
	assert.Len(t, doc.DailyTasks, 2)
}

func TestGenerateDailyTasks_InvalidOutputFallsBack(t *testing.T) {
	backend := &stubBackend{name: "ollama", text: "I cannot help with that."}
	repo := newMemPlanRepo()
	g := newTestGenerator(repo, backend)

	goals := []internal.LongTermGoal{
		{Title: "Learn Spanish", Category: internal.CategoryLearning, Priority: 5, Status: internal.GoalStatusActive},
	}
	tasks, err := g.GenerateDailyTasks(context.Background(), "u1", testProfile(), goals, "2026-03-01", "UTC")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Learning Session", tasks[0].Title)
	assert.Equal(t, 1, repo.upserts)
}

func TestGenerateDailyTasks_SchemaViolationFallsBack(t *testing.T) {
	// Parseable JSON with an unknown task type must be rejected.
	backend := &stubBackend{name: "ollama", text: `{"daily_tasks": [{"title": "x", "type": "nap"}]}`}
	repo := newMemPlanRepo()
	g := newTestGenerator(repo, backend)

	tasks, err := g.GenerateDailyTasks(context.Background(), "u1", testProfile(), nil, "2026-03-01", "UTC")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Morning Routine", tasks[0].Title)
}

func TestGenerateDailyTasks_NoBackends(t *testing.T) {
	repo := newMemPlanRepo()
	g := newTestGenerator(repo)

	tasks, err := g.GenerateDailyTasks(context.Background(), "u1", testProfile(), nil, "2026-03-01", "UTC")
	require.NoError(t, err)
	assert.NotEmpty(t, tasks)
	assert.Equal(t, 1, repo.upserts)
}

func TestGenerateDailyTasks_SecondBackendWins(t *testing.T) {
	failing := &stubBackend{name: "ollama", err: errors.New("connection refused")}
	working := &stubBackend{name: "openai", text: `{"daily_tasks": [{"title": "Plan day", "time": "08:00", "type": "other"}]}`}
	repo := newMemPlanRepo()
	g := newTestGenerator(repo, failing, working)

	tasks, err := g.GenerateDailyTasks(context.Background(), "u1", testProfile(), nil, "2026-03-01", "UTC")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Plan day", tasks[0].Title)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
}

func TestGenerateDailyPlan_FallbackPersisted(t *testing.T) {
	repo := newMemPlanRepo()
	g := newTestGenerator(repo)

	plan, err := g.GenerateDailyPlan(context.Background(), "u1", testProfile(), nil, "2026-03-02", "Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", plan.Date)
	assert.Equal(t, "Europe/Berlin", plan.Timezone)
	assert.Len(t, plan.Items, 11)
	assert.Equal(t, 1, repo.upserts)

	rec, err := repo.GetPlan(context.Background(), "u1", "2026-03-02")
	require.NoError(t, err)
	var stored internal.DailyPlan
	require.NoError(t, json.Unmarshal([]byte(rec.PlanJSON), &stored))
	assert.Len(t, stored.Items, 11)
}

func TestGenerateDailyPlan_BackendOutputUsed(t *testing.T) {
	backend := &stubBackend{name: "openai", text: `{"items": [
		{"start_time": "08:00", "end_time": "09:00", "title": "Gym", "type": "exercise", "priority": "high"}
	]}`}
	repo := newMemPlanRepo()
	g := newTestGenerator(repo, backend)

	plan, err := g.GenerateDailyPlan(context.Background(), "u1", testProfile(), nil, "2026-03-02", "UTC")
	require.NoError(t, err)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "Gym", plan.Items[0].Title)
}

func TestGenerateMonthlyPlan_KeyAndFallback(t *testing.T) {
	repo := newMemPlanRepo()
	g := newTestGenerator(repo)

	plan, key, err := g.GenerateMonthlyPlan(context.Background(), "u1", testProfile(), nil, 2026, time.September, "UTC")
	require.NoError(t, err)
	assert.Equal(t, "monthly-2026-09", key)
	assert.NotEmpty(t, plan.MonthlyGoals)
	require.Len(t, plan.Milestones, 3)

	_, err = repo.GetPlan(context.Background(), "u1", "monthly-2026-09")
	assert.NoError(t, err)
}

func TestGenerateGoals_BackendThenFallback(t *testing.T) {
	backend := &stubBackend{name: "openai", text: `{"goals": [
		{"title": "Ship side project", "category": "career", "priority": 4, "target_timeframe": "3 months"}
	]}`}
	g := newTestGenerator(newMemPlanRepo(), backend)

	specs := g.GenerateGoals(context.Background(), testProfile())
	require.Len(t, specs, 1)
	assert.Equal(t, "Ship side project", specs[0].Title)
	assert.Equal(t, internal.CategoryCareer, specs[0].Category)

	// Same generator with an unusable backend falls back to templates.
	backend.text = "nope"
	specs = g.GenerateGoals(context.Background(), testProfile())
	assert.NotEmpty(t, specs)
	assert.LessOrEqual(t, len(specs), 5)
}

func TestMonthlyKey(t *testing.T) {
	assert.Equal(t, "monthly-2026-01", MonthlyKey(2026, time.January))
	assert.Equal(t, "monthly-2026-12", MonthlyKey(2026, time.December))
}

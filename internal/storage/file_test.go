package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kamyarmaaf/plan1/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStorage(t *testing.T) (*FileStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStorage(
		filepath.Join(dir, "profiles.json"),
		filepath.Join(dir, "goals.json"),
		filepath.Join(dir, "plans.json"),
		internal.NopLogger{},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func TestFileStorage_ProfileRoundTrip(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	_, err := s.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	p := &internal.Profile{UserID: "u1", WorkStudy: "Engineering", Hobbies: "Chess", Sports: "Running", Location: "Berlin"}
	require.NoError(t, s.SaveProfile(ctx, p))

	got, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.WorkStudy)

	// The stored copy must be detached from the caller's pointer.
	p.WorkStudy = "changed"
	got, err = s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.WorkStudy)
}

func TestFileStorage_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "profiles.json"),
		filepath.Join(dir, "goals.json"),
		filepath.Join(dir, "plans.json"),
	}
	ctx := context.Background()

	s, err := NewFileStorage(files[0], files[1], files[2], internal.NopLogger{})
	require.NoError(t, err)
	require.NoError(t, s.SaveProfile(ctx, &internal.Profile{UserID: "u1", WorkStudy: "x"}))
	require.NoError(t, s.UpsertPlan(ctx, &internal.PlanRecord{UserID: "u1", DateKey: "2026-03-01", PlanJSON: "{}"}))
	require.NoError(t, s.Close())

	reopened, err := NewFileStorage(files[0], files[1], files[2], internal.NopLogger{})
	require.NoError(t, err)
	defer reopened.Close()

	profile, err := reopened.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "x", profile.WorkStudy)

	rec, err := reopened.GetPlan(ctx, "u1", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "{}", rec.PlanJSON)
}

func TestFileStorage_GoalSortingAndFiltering(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	goals := []*internal.LongTermGoal{
		{ID: "g1", UserID: "u1", Title: "low", Priority: 1, Status: internal.GoalStatusActive, CreatedAt: base},
		{ID: "g2", UserID: "u1", Title: "high", Priority: 5, Status: internal.GoalStatusActive, CreatedAt: base.Add(time.Hour)},
		{ID: "g3", UserID: "u1", Title: "paused", Priority: 4, Status: internal.GoalStatusPaused, CreatedAt: base},
		{ID: "g4", UserID: "u2", Title: "other user", Priority: 5, Status: internal.GoalStatusActive, CreatedAt: base},
		{ID: "g5", UserID: "u1", Title: "high earlier", Priority: 5, Status: internal.GoalStatusActive, CreatedAt: base.Add(-time.Hour)},
	}
	for _, g := range goals {
		require.NoError(t, s.CreateGoal(ctx, g))
	}

	all, err := s.ListGoals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "g5", all[0].ID)
	assert.Equal(t, "g2", all[1].ID)
	assert.Equal(t, "g3", all[2].ID)
	assert.Equal(t, "g1", all[3].ID)

	active, err := s.ListActiveGoals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, active, 3)
	for _, g := range active {
		assert.Equal(t, internal.GoalStatusActive, g.Status)
	}
}

func TestFileStorage_UpdateGoal(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	err := s.UpdateGoal(ctx, &internal.LongTermGoal{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	g := &internal.LongTermGoal{ID: "g1", UserID: "u1", Title: "Goal", Progress: 10, Status: internal.GoalStatusActive}
	require.NoError(t, s.CreateGoal(ctx, g))
	g.Progress = 60
	require.NoError(t, s.UpdateGoal(ctx, g))

	got, err := s.GetGoal(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 60, got.Progress)
}

func TestFileStorage_PlanUpsertOverwrites(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	_, err := s.GetPlan(ctx, "u1", "2026-03-01")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.UpsertPlan(ctx, &internal.PlanRecord{UserID: "u1", DateKey: "2026-03-01", PlanJSON: `{"v":1}`}))
	require.NoError(t, s.UpsertPlan(ctx, &internal.PlanRecord{UserID: "u1", DateKey: "2026-03-01", PlanJSON: `{"v":2}`}))

	rec, err := s.GetPlan(ctx, "u1", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, rec.PlanJSON)

	// Records are keyed per user and per date.
	_, err = s.GetPlan(ctx, "u2", "2026-03-01")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetPlan(ctx, "u1", "2026-03-02")
	assert.ErrorIs(t, err, ErrNotFound)
}

package storage

import (
	"context"
	"errors"

	"github.com/kamyarmaaf/plan1/internal"
)

// ErrNotFound is returned when a keyed lookup matches nothing.
var ErrNotFound = errors.New("storage: not found")

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*internal.Profile, error)
	SaveProfile(ctx context.Context, profile *internal.Profile) error
}

type GoalRepository interface {
	ListGoals(ctx context.Context, userID string) ([]internal.LongTermGoal, error)
	ListActiveGoals(ctx context.Context, userID string) ([]internal.LongTermGoal, error)
	GetGoal(ctx context.Context, goalID string) (*internal.LongTermGoal, error)
	CreateGoal(ctx context.Context, goal *internal.LongTermGoal) error
	UpdateGoal(ctx context.Context, goal *internal.LongTermGoal) error
}

// PlanRepository stores plan blobs keyed by (user, dateKey). Concurrent
// upserts for the same key are not coordinated; last write wins.
type PlanRepository interface {
	GetPlan(ctx context.Context, userID, dateKey string) (*internal.PlanRecord, error)
	UpsertPlan(ctx context.Context, record *internal.PlanRecord) error
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/planner"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

// GoalUpdateRequest carries the mutable goal fields. Status transitions are
// deliberately unconstrained; progress is clamped into [0,100].
type GoalUpdateRequest struct {
	Progress *int    `json:"progress" validate:"omitempty,gte=0,lte=100"`
	Status   *string `json:"status" validate:"omitempty,oneof=active completed paused archived"`
	Priority *int    `json:"priority" validate:"omitempty,gte=1"`
}

func ValidateGoalUpdateRequest(req *GoalUpdateRequest) error {
	return validate.Struct(req)
}

// CreateGoalsFromSpecs persists generated goal specs as active goals.
func CreateGoalsFromSpecs(ctx context.Context, goalRepo storage.GoalRepository, user *internal.User, specs []planner.GoalSpec) ([]internal.LongTermGoal, error) {
	now := time.Now()
	goals := make([]internal.LongTermGoal, 0, len(specs))
	for _, spec := range specs {
		goal := internal.LongTermGoal{
			ID:              uuid.NewString(),
			UserID:          user.ID,
			Title:           spec.Title,
			Description:     spec.Description,
			Category:        spec.Category,
			Priority:        spec.Priority,
			TargetTimeframe: spec.TargetTimeframe,
			Progress:        0,
			Status:          internal.GoalStatusActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := goalRepo.CreateGoal(ctx, &goal); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

// UpdateGoal applies a partial update to an existing goal.
func UpdateGoal(ctx context.Context, goalRepo storage.GoalRepository, goalID string, req *GoalUpdateRequest) (*internal.LongTermGoal, error) {
	goal, err := goalRepo.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if req.Progress != nil {
		p := *req.Progress
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		goal.Progress = p
	}
	if req.Status != nil {
		goal.Status = internal.GoalStatus(*req.Status)
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	goal.UpdatedAt = time.Now()

	if err := goalRepo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

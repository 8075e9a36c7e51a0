package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/planner"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

// ErrTaskNotFound is returned when a toggle targets a task id absent from
// the stored set.
var ErrTaskNotFound = fmt.Errorf("task not found in plan")

// ToggleTask flips the completed flag of one daily task identified by
// (user, date, taskID) and writes the set back.
func ToggleTask(ctx context.Context, planRepo storage.PlanRepository, userID, date, taskID string) (*internal.DailyTask, error) {
	record, err := planRepo.GetPlan(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	var doc planner.DailyTasksDocument
	if err := json.Unmarshal([]byte(record.PlanJSON), &doc); err != nil {
		return nil, fmt.Errorf("decoding stored plan: %w", err)
	}

	var toggled *internal.DailyTask
	for i := range doc.DailyTasks {
		if doc.DailyTasks[i].ID == taskID {
			doc.DailyTasks[i].Completed = !doc.DailyTasks[i].Completed
			toggled = &doc.DailyTasks[i]
			break
		}
	}
	if toggled == nil {
		return nil, ErrTaskNotFound
	}

	blob, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	record.PlanJSON = string(blob)
	record.UpdatedAt = time.Now()
	if err := planRepo.UpsertPlan(ctx, record); err != nil {
		return nil, err
	}
	return toggled, nil
}

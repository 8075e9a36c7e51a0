package planner

import (
	"fmt"
	"regexp"

	"github.com/kamyarmaaf/plan1/internal"
)

var validTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NormalizeTasks repairs missing or invalid time fields in a task list.
// Tasks whose time already matches HH:MM keep it and reserve the slot;
// every other task gets a deterministic candidate spread uniformly over the
// day, probed forward minute by minute until a free slot is found. Probing
// is bounded by 1440 attempts, so with more tasks than minutes the last
// probed value is accepted. Order and all other fields are preserved.
func NormalizeTasks(tasks []internal.DailyTask) []internal.DailyTask {
	out := make([]internal.DailyTask, len(tasks))
	copy(out, tasks)
	if len(out) == 0 {
		return out
	}

	reserved := make(map[string]bool, len(out))
	for _, t := range out {
		if validTimePattern.MatchString(t.Time) {
			reserved[t.Time] = true
		}
	}

	step := 1440 / len(out)
	for i := range out {
		if validTimePattern.MatchString(out[i].Time) {
			continue
		}
		minutes := (i * step) % 1440
		slot := clockString(minutes)
		for attempt := 0; attempt < 1440 && reserved[slot]; attempt++ {
			minutes = (minutes + 1) % 1440
			slot = clockString(minutes)
		}
		out[i].Time = slot
		reserved[slot] = true
	}
	return out
}

func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

package planner

import (
	"fmt"
	"strings"

	"github.com/kamyarmaaf/plan1/internal"
)

// BuildContext renders a profile into the natural-language paragraph used
// to prime generation requests. Pure and deterministic; optional fields are
// omitted when absent.
func BuildContext(p *internal.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The user works or studies in the area of %s.", p.WorkStudy)
	fmt.Fprintf(&b, " Their hobbies include %s.", p.Hobbies)
	fmt.Fprintf(&b, " For sports and physical activity they do %s.", p.Sports)
	fmt.Fprintf(&b, " They live in %s.", p.Location)

	if p.Age > 0 {
		fmt.Fprintf(&b, " They are %d years old.", p.Age)
	}
	if p.WeightKg > 0 && p.HeightCm > 0 {
		fmt.Fprintf(&b, " They weigh %.0f kg and are %.0f cm tall.", p.WeightKg, p.HeightCm)
	} else if p.WeightKg > 0 {
		fmt.Fprintf(&b, " They weigh %.0f kg.", p.WeightKg)
	} else if p.HeightCm > 0 {
		fmt.Fprintf(&b, " They are %.0f cm tall.", p.HeightCm)
	}
	if p.Reading != "" {
		fmt.Fprintf(&b, " They enjoy reading %s.", p.Reading)
	}
	if p.Extras != "" {
		fmt.Fprintf(&b, " Additional notes: %s.", p.Extras)
	}

	return b.String()
}

// summarizeGoals renders active goals for prompt embedding, highest
// priority first.
func summarizeGoals(goals []internal.LongTermGoal) string {
	if len(goals) == 0 {
		return "The user has no active long-term goals."
	}
	var b strings.Builder
	b.WriteString("Active long-term goals (highest priority first):")
	for _, g := range sortByPriority(goals) {
		fmt.Fprintf(&b, "\n- %s (category: %s, priority: %d, progress: %d%%)", g.Title, g.Category, g.Priority, g.Progress)
	}
	return b.String()
}

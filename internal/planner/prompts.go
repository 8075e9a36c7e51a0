package planner

import (
	"fmt"

	"github.com/kamyarmaaf/plan1/internal"
)

const dailyTasksSystemPrompt = `You are a daily planning assistant.
Produce a short list of concrete tasks for one day.

Output ONLY a raw JSON object with this exact shape, no markdown, no code fences, no commentary:
{
  "daily_tasks": [
    {
      "id": "string",
      "title": "string",
      "time": "HH:MM (24-hour)",
      "type": "one of: work, study, exercise, meal, reading, break, sleep, other",
      "completed": false,
      "description": "string"
    }
  ]
}

Rules:
- 3 to 7 tasks, each with a distinct time
- Tasks must reflect the user's profile and active goals`

const dailyPlanSystemPrompt = `You are a daily planning assistant.
Produce a full day schedule from morning to sleep.

Output ONLY a raw JSON object with this exact shape, no markdown, no code fences, no commentary:
{
  "items": [
    {
      "start_time": "HH:MM (24-hour)",
      "end_time": "HH:MM (24-hour)",
      "title": "string",
      "type": "one of: work, study, exercise, meal, reading, break, sleep, other",
      "priority": "low, medium or high",
      "notes": "string"
    }
  ]
}

Rules:
- 8 to 14 items covering the whole day including meals and sleep
- Reflect the user's profile and active goals in the titles and notes`

const monthlyPlanSystemPrompt = `You are a long-range planning assistant.
Produce a monthly plan with a vision, monthly goals and milestones.

Output ONLY a raw JSON object with this exact shape, no markdown, no code fences, no commentary:
{
  "ai_vision": {
    "six_month_projection": "string",
    "one_year_vision": "string"
  },
  "monthly_goals": [
    {"id": "string", "title": "string", "category": "one of: fitness, learning, career, personal, financial", "progress": 0, "target": "string"}
  ],
  "milestones": [
    {"id": "string", "title": "string", "date": "YYYY-MM-DD", "completed": false, "description": "string"}
  ]
}

Rules:
- 2 to 5 monthly goals, 2 to 4 milestones with dates inside the requested month`

const goalsSystemPrompt = `You are a goal-setting assistant.
Derive long-term goals from the user's profile.

Output ONLY a raw JSON object with this exact shape, no markdown, no code fences, no commentary:
{
  "goals": [
    {
      "title": "string",
      "description": "string",
      "category": "one of: fitness, learning, career, personal, financial",
      "priority": 1,
      "target_timeframe": "string"
    }
  ]
}

Rules:
- 3 to 5 goals, priority is an integer from 1 (lowest) to 5 (highest)
- Cover different categories where the profile supports it`

func dailyTasksUserPrompt(profile *internal.Profile, goals []internal.LongTermGoal, date string) string {
	return fmt.Sprintf("%s\n\n%s\n\nCreate the daily task list for %s.", BuildContext(profile), summarizeGoals(goals), date)
}

func dailyPlanUserPrompt(profile *internal.Profile, goals []internal.LongTermGoal, date string) string {
	return fmt.Sprintf("%s\n\n%s\n\nCreate the full day schedule for %s.", BuildContext(profile), summarizeGoals(goals), date)
}

func monthlyPlanUserPrompt(profile *internal.Profile, goals []internal.LongTermGoal, year int, month int) string {
	return fmt.Sprintf("%s\n\n%s\n\nCreate the monthly plan for %04d-%02d.", BuildContext(profile), summarizeGoals(goals), year, month)
}

func goalsUserPrompt(profile *internal.Profile) string {
	return fmt.Sprintf("%s\n\nDerive long-term goals for this user.", BuildContext(profile))
}

package api

import (
	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/planner"
	"github.com/kamyarmaaf/plan1/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Profiles() storage.ProfileRepository
	Goals() storage.GoalRepository
	Plans() storage.PlanRepository
	Planner() *planner.Generator
	DefaultTimezone() string
}

type app struct {
	logger   internal.Logger
	repos    *storage.Repositories
	planner  *planner.Generator
	timezone string
}

func NewApp(logger internal.Logger, repos *storage.Repositories, gen *planner.Generator, timezone string) App {
	return &app{logger: logger, repos: repos, planner: gen, timezone: timezone}
}

func (a *app) Logger() internal.Logger               { return a.logger }
func (a *app) Profiles() storage.ProfileRepository   { return a.repos.Profiles }
func (a *app) Goals() storage.GoalRepository         { return a.repos.Goals }
func (a *app) Plans() storage.PlanRepository         { return a.repos.Plans }
func (a *app) Planner() *planner.Generator           { return a.planner }
func (a *app) DefaultTimezone() string               { return a.timezone }

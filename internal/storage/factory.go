package storage

import (
	"fmt"
	"io"

	"github.com/kamyarmaaf/plan1/internal"
	"github.com/kamyarmaaf/plan1/internal/config"
)

// Repositories bundles the three storage surfaces plus the closer of the
// concrete backend behind them.
type Repositories struct {
	Profiles ProfileRepository
	Goals    GoalRepository
	Plans    PlanRepository
	Closer   io.Closer
}

// NewRepositories builds the storage backend selected by cfg.
func NewRepositories(cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	switch cfg.DBType {
	case "file":
		s, err := NewFileStorage(cfg.FileProfiles, cfg.FileGoals, cfg.FilePlans, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Profiles: s, Goals: s, Plans: s, Closer: s}, nil
	case "sqlite":
		s, err := NewSQLiteStorage(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Profiles: s, Goals: s, Plans: s, Closer: s}, nil
	case "postgres":
		s, err := NewPostgresStorage(cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Profiles: s, Goals: s, Plans: s, Closer: s}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.DBType)
	}
}

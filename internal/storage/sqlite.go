package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamyarmaaf/plan1/internal"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	work_study TEXT NOT NULL DEFAULT '',
	hobbies    TEXT NOT NULL DEFAULT '',
	sports     TEXT NOT NULL DEFAULT '',
	location   TEXT NOT NULL DEFAULT '',
	age        INTEGER NOT NULL DEFAULT 0,
	weight_kg  REAL NOT NULL DEFAULT 0,
	height_cm  REAL NOT NULL DEFAULT 0,
	reading    TEXT NOT NULL DEFAULT '',
	extras     TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS goals (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	category         TEXT NOT NULL,
	priority         INTEGER NOT NULL DEFAULT 1,
	target_timeframe TEXT NOT NULL DEFAULT '',
	progress         INTEGER NOT NULL DEFAULT 0,
	status           TEXT NOT NULL DEFAULT 'active',
	created_at       TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
CREATE TABLE IF NOT EXISTS plans (
	user_id    TEXT NOT NULL,
	date_key   TEXT NOT NULL,
	timezone   TEXT NOT NULL DEFAULT 'UTC',
	plan_json  TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (user_id, date_key)
);
`

type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("failed to open sqlite database: %v", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		logger.Errorf("failed to apply sqlite schema: %v", err)
		return nil, err
	}
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- ProfileRepository ---

func (s *SQLiteStorage) GetProfile(ctx context.Context, userID string) (*internal.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT user_id, work_study, hobbies, sports, location, age, weight_kg, height_cm, reading, extras, updated_at FROM profiles WHERE user_id = ?`, userID)
	var p internal.Profile
	err := row.Scan(&p.UserID, &p.WorkStudy, &p.Hobbies, &p.Sports, &p.Location, &p.Age, &p.WeightKg, &p.HeightCm, &p.Reading, &p.Extras, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Errorf("failed to query profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStorage) SaveProfile(ctx context.Context, profile *internal.Profile) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO profiles (user_id, work_study, hobbies, sports, location, age, weight_kg, height_cm, reading, extras, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET work_study = excluded.work_study, hobbies = excluded.hobbies, sports = excluded.sports, location = excluded.location, age = excluded.age, weight_kg = excluded.weight_kg, height_cm = excluded.height_cm, reading = excluded.reading, extras = excluded.extras, updated_at = excluded.updated_at`,
		profile.UserID, profile.WorkStudy, profile.Hobbies, profile.Sports, profile.Location, profile.Age, profile.WeightKg, profile.HeightCm, profile.Reading, profile.Extras, profile.UpdatedAt)
	if err != nil {
		s.logger.Errorf("failed to upsert profile: %v", err)
	}
	return err
}

// --- GoalRepository ---

func (s *SQLiteStorage) queryGoals(ctx context.Context, query string, args ...any) ([]internal.LongTermGoal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Errorf("failed to query goals: %v", err)
		return nil, err
	}
	defer rows.Close()

	var goals []internal.LongTermGoal
	for rows.Next() {
		var g internal.LongTermGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Priority, &g.TargetTimeframe, &g.Progress, &g.Status, &g.CreatedAt, &g.UpdatedAt); err != nil {
			s.logger.Errorf("failed to scan goal: %v", err)
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *SQLiteStorage) ListGoals(ctx context.Context, userID string) ([]internal.LongTermGoal, error) {
	return s.queryGoals(ctx, `SELECT id, user_id, title, description, category, priority, target_timeframe, progress, status, created_at, updated_at FROM goals WHERE user_id = ? ORDER BY priority DESC, created_at ASC`, userID)
}

func (s *SQLiteStorage) ListActiveGoals(ctx context.Context, userID string) ([]internal.LongTermGoal, error) {
	return s.queryGoals(ctx, `SELECT id, user_id, title, description, category, priority, target_timeframe, progress, status, created_at, updated_at FROM goals WHERE user_id = ? AND status = 'active' ORDER BY priority DESC, created_at ASC`, userID)
}

func (s *SQLiteStorage) GetGoal(ctx context.Context, goalID string) (*internal.LongTermGoal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, user_id, title, description, category, priority, target_timeframe, progress, status, created_at, updated_at FROM goals WHERE id = ?`, goalID)
	var g internal.LongTermGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Priority, &g.TargetTimeframe, &g.Progress, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Errorf("failed to query goal: %v", err)
		return nil, err
	}
	return &g, nil
}

func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *internal.LongTermGoal) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO goals (id, user_id, title, description, category, priority, target_timeframe, progress, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.Category, goal.Priority, goal.TargetTimeframe, goal.Progress, goal.Status, goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		s.logger.Errorf("failed to insert goal: %v", err)
	}
	return err
}

func (s *SQLiteStorage) UpdateGoal(ctx context.Context, goal *internal.LongTermGoal) error {
	res, err := s.db.ExecContext(ctx, `UPDATE goals SET title = ?, description = ?, category = ?, priority = ?, target_timeframe = ?, progress = ?, status = ?, updated_at = ? WHERE id = ?`,
		goal.Title, goal.Description, goal.Category, goal.Priority, goal.TargetTimeframe, goal.Progress, goal.Status, goal.UpdatedAt, goal.ID)
	if err != nil {
		s.logger.Errorf("failed to update goal: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- PlanRepository ---

func (s *SQLiteStorage) GetPlan(ctx context.Context, userID, dateKey string) (*internal.PlanRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT user_id, date_key, timezone, plan_json, updated_at FROM plans WHERE user_id = ? AND date_key = ?`, userID, dateKey)
	var rec internal.PlanRecord
	err := row.Scan(&rec.UserID, &rec.DateKey, &rec.Timezone, &rec.PlanJSON, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Errorf("failed to query plan: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (s *SQLiteStorage) UpsertPlan(ctx context.Context, record *internal.PlanRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO plans (user_id, date_key, timezone, plan_json, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date_key) DO UPDATE SET timezone = excluded.timezone, plan_json = excluded.plan_json, updated_at = excluded.updated_at`,
		record.UserID, record.DateKey, record.Timezone, record.PlanJSON, record.UpdatedAt)
	if err != nil {
		s.logger.Errorf("failed to upsert plan: %v", err)
	}
	return err
}

// --- Compile-time assertions ---
var _ ProfileRepository = (*SQLiteStorage)(nil)
var _ GoalRepository = (*SQLiteStorage)(nil)
var _ PlanRepository = (*SQLiteStorage)(nil)

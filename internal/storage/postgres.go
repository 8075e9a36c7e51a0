package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kamyarmaaf/plan1/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- ProfileRepository ---

func (p *PostgresStorage) GetProfile(ctx context.Context, userID string) (*internal.Profile, error) {
	row := p.pool.QueryRow(ctx, `SELECT user_id, work_study, hobbies, sports, location, age, weight_kg, height_cm, reading, extras, updated_at FROM profiles WHERE user_id = $1`, userID)
	var pr internal.Profile
	err := row.Scan(&pr.UserID, &pr.WorkStudy, &pr.Hobbies, &pr.Sports, &pr.Location, &pr.Age, &pr.WeightKg, &pr.HeightCm, &pr.Reading, &pr.Extras, &pr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query profile: %v", err)
		return nil, err
	}
	return &pr, nil
}

func (p *PostgresStorage) SaveProfile(ctx context.Context, profile *internal.Profile) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO profiles (user_id, work_study, hobbies, sports, location, age, weight_kg, height_cm, reading, extras, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET work_study = $2, hobbies = $3, sports = $4, location = $5, age = $6, weight_kg = $7, height_cm = $8, reading = $9, extras = $10, updated_at = $11`,
		profile.UserID, profile.WorkStudy, profile.Hobbies, profile.Sports, profile.Location, profile.Age, profile.WeightKg, profile.HeightCm, profile.Reading, profile.Extras, profile.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert profile: %v", err)
		return err
	}
	return nil
}

// --- GoalRepository ---

const goalColumns = `id, user_id, title, description, category, priority, target_timeframe, progress, status, created_at, updated_at`

func scanGoal(row pgx.Row) (*internal.LongTermGoal, error) {
	var g internal.LongTermGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Priority, &g.TargetTimeframe, &g.Progress, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (p *PostgresStorage) listGoals(ctx context.Context, query string, args ...any) ([]internal.LongTermGoal, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query goals: %v", err)
		return nil, err
	}
	defer rows.Close()

	var goals []internal.LongTermGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			p.logger.Errorf("failed to scan goal: %v", err)
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func (p *PostgresStorage) ListGoals(ctx context.Context, userID string) ([]internal.LongTermGoal, error) {
	return p.listGoals(ctx, `SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY priority DESC, created_at ASC`, userID)
}

func (p *PostgresStorage) ListActiveGoals(ctx context.Context, userID string) ([]internal.LongTermGoal, error) {
	return p.listGoals(ctx, `SELECT `+goalColumns+` FROM goals WHERE user_id = $1 AND status = 'active' ORDER BY priority DESC, created_at ASC`, userID)
}

func (p *PostgresStorage) GetGoal(ctx context.Context, goalID string) (*internal.LongTermGoal, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, goalID)
	g, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query goal: %v", err)
		return nil, err
	}
	return g, nil
}

func (p *PostgresStorage) CreateGoal(ctx context.Context, goal *internal.LongTermGoal) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO goals (`+goalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.Category, goal.Priority, goal.TargetTimeframe, goal.Progress, goal.Status, goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert goal: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) UpdateGoal(ctx context.Context, goal *internal.LongTermGoal) error {
	tag, err := p.pool.Exec(ctx, `UPDATE goals SET title = $2, description = $3, category = $4, priority = $5, target_timeframe = $6, progress = $7, status = $8, updated_at = $9 WHERE id = $1`,
		goal.ID, goal.Title, goal.Description, goal.Category, goal.Priority, goal.TargetTimeframe, goal.Progress, goal.Status, goal.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to update goal: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- PlanRepository ---

func (p *PostgresStorage) GetPlan(ctx context.Context, userID, dateKey string) (*internal.PlanRecord, error) {
	row := p.pool.QueryRow(ctx, `SELECT user_id, date_key, timezone, plan_json, updated_at FROM plans WHERE user_id = $1 AND date_key = $2`, userID, dateKey)
	var rec internal.PlanRecord
	err := row.Scan(&rec.UserID, &rec.DateKey, &rec.Timezone, &rec.PlanJSON, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query plan: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (p *PostgresStorage) UpsertPlan(ctx context.Context, record *internal.PlanRecord) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO plans (user_id, date_key, timezone, plan_json, updated_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date_key) DO UPDATE SET timezone = $3, plan_json = $4, updated_at = $5`,
		record.UserID, record.DateKey, record.Timezone, record.PlanJSON, record.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert plan: %v", err)
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ ProfileRepository = (*PostgresStorage)(nil)
var _ GoalRepository = (*PostgresStorage)(nil)
var _ PlanRepository = (*PostgresStorage)(nil)

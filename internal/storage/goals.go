package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/healthtrack/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const goalColumns = `id, user_id, title, description, category, target_date, target_value,
	current_value, unit, progress, completed, created_at, updated_at`

// ListGoals returns the user's goals, newest first.
func (db *DB) ListGoals(ctx context.Context, userID int) ([]models.GoalRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	result := []models.GoalRow{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		result = append(result, *g)
	}
	return result, rows.Err()
}

// GetGoal returns one goal owned by userID.
func (db *DB) GetGoal(ctx context.Context, userID int, id uuid.UUID) (*models.GoalRow, error) {
	g, err := scanGoal(db.Pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 AND id = $2`,
		userID, id))
	if err != nil {
		return nil, notFound(err, "querying goal")
	}
	return g, nil
}

// CreateGoal inserts g, assigning its ID and timestamps.
func (db *DB) CreateGoal(ctx context.Context, g *models.GoalRow) error {
	g.ID = uuid.New()
	now := time.Now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO goals (`+goalColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		g.ID, g.UserID, g.Title, g.Description, g.Category, g.TargetDate, g.TargetValue,
		g.CurrentValue, g.Unit, g.Progress, g.Completed, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

// UpdateGoal overwrites the mutable fields of g.
func (db *DB) UpdateGoal(ctx context.Context, g *models.GoalRow) error {
	g.UpdatedAt = time.Now().UTC()
	err := db.Pool.QueryRow(ctx,
		`UPDATE goals
		 SET title = $3, description = $4, category = $5, target_date = $6, target_value = $7,
		     current_value = $8, unit = $9, progress = $10, completed = $11, updated_at = $12
		 WHERE user_id = $1 AND id = $2
		 RETURNING created_at`,
		g.UserID, g.ID, g.Title, g.Description, g.Category, g.TargetDate, g.TargetValue,
		g.CurrentValue, g.Unit, g.Progress, g.Completed, g.UpdatedAt).Scan(&g.CreatedAt)
	if err != nil {
		return notFound(err, "updating goal")
	}
	return nil
}

// DeleteGoal removes a goal owned by userID.
func (db *DB) DeleteGoal(ctx context.Context, userID int, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting goal: %w", ErrNotFound)
	}
	return nil
}

func scanGoal(row pgx.Row) (*models.GoalRow, error) {
	var g models.GoalRow
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.TargetDate,
		&g.TargetValue, &g.CurrentValue, &g.Unit, &g.Progress, &g.Completed, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

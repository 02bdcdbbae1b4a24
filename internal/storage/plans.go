package storage

import (
	"context"
	"fmt"

	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/google/uuid"
)

// SavePlan stores the plan text for (userID, env), replacing any earlier plan.
func (db *DB) SavePlan(ctx context.Context, userID int, env plan.Environment, text string) (*models.SavedPlanRow, error) {
	p := models.SavedPlanRow{UserID: userID, Environment: string(env), PlanText: text}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercise_plans (id, user_id, environment, plan_text)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, environment) DO UPDATE
			SET plan_text = EXCLUDED.plan_text, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		uuid.New(), userID, string(env), text).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("saving %s plan: %w", env, err)
	}
	return &p, nil
}

// GetPlan returns the saved plan for (userID, env).
func (db *DB) GetPlan(ctx context.Context, userID int, env plan.Environment) (*models.SavedPlanRow, error) {
	var p models.SavedPlanRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, environment, plan_text, created_at, updated_at
		 FROM exercise_plans
		 WHERE user_id = $1 AND environment = $2`,
		userID, string(env)).Scan(&p.ID, &p.UserID, &p.Environment, &p.PlanText, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("querying %s plan", env))
	}
	return &p, nil
}

// ListPlans returns every saved plan of the user.
func (db *DB) ListPlans(ctx context.Context, userID int) ([]models.SavedPlanRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, environment, plan_text, created_at, updated_at
		 FROM exercise_plans
		 WHERE user_id = $1
		 ORDER BY environment`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	result := []models.SavedPlanRow{}
	for rows.Next() {
		var p models.SavedPlanRow
		if err := rows.Scan(&p.ID, &p.UserID, &p.Environment, &p.PlanText, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

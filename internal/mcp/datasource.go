package mcp

import (
	"context"
	"time"

	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	LatestHealthRecord(ctx context.Context, userID int) (*models.HealthRecordRow, error)
	QueryHealthRecords(ctx context.Context, userID int, start, end time.Time) ([]models.HealthRecordRow, error)
	ListGoals(ctx context.Context, userID int) ([]models.GoalRow, error)
	ListPlans(ctx context.Context, userID int) ([]models.SavedPlanRow, error)
	ListCatalogExercises(ctx context.Context, env plan.Environment) ([]models.CatalogExerciseRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

// catalogSource adapts a DataSource to the plan matcher.
func catalogSource(ds DataSource) plan.CatalogSource {
	return plan.CatalogSourceFunc(func(ctx context.Context, env plan.Environment) ([]plan.CatalogEntry, error) {
		rows, err := ds.ListCatalogExercises(ctx, env)
		if err != nil {
			return nil, err
		}
		return storage.CatalogEntries(rows), nil
	})
}

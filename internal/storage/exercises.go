package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
)

var _ plan.CatalogSource = (*DB)(nil)

// ListCatalogExercises returns the catalog rows for env ordered by id, which
// is insertion order. The placeholder hash pick depends on that order.
func (db *DB) ListCatalogExercises(ctx context.Context, env plan.Environment) ([]models.CatalogExerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, environment, name, muscle_groups, description, form_tips, equipment, image_url
		 FROM catalog_exercises
		 WHERE environment = $1
		 ORDER BY id`,
		string(env))
	if err != nil {
		return nil, fmt.Errorf("querying catalog exercises: %w", err)
	}
	defer rows.Close()

	result := []models.CatalogExerciseRow{}
	for rows.Next() {
		var r models.CatalogExerciseRow
		if err := rows.Scan(&r.ID, &r.Environment, &r.Name, &r.MuscleGroups, &r.Description,
			&r.FormTips, &r.Equipment, &r.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning catalog exercise: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Exercises implements plan.CatalogSource over the catalog_exercises table.
func (db *DB) Exercises(ctx context.Context, env plan.Environment) ([]plan.CatalogEntry, error) {
	rows, err := db.ListCatalogExercises(ctx, env)
	if err != nil {
		return nil, err
	}
	return CatalogEntries(rows), nil
}

// SeedCatalog inserts entries for env, skipping names already present.
// Returns the number of rows inserted.
func (db *DB) SeedCatalog(ctx context.Context, env plan.Environment, entries []plan.CatalogEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	query, args := catalogInsertQuery(env, entries)
	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("seeding %s catalog: %w", env, err)
	}
	return tag.RowsAffected(), nil
}

// CatalogEntries converts storage rows into matcher entries.
func CatalogEntries(rows []models.CatalogExerciseRow) []plan.CatalogEntry {
	out := make([]plan.CatalogEntry, len(rows))
	for i, r := range rows {
		out[i] = plan.CatalogEntry{
			Name:         r.Name,
			MuscleGroups: r.MuscleGroups,
			Description:  r.Description,
			FormTips:     r.FormTips,
			Equipment:    r.Equipment,
			ImageURL:     r.ImageURL,
		}
	}
	return out
}

func catalogInsertQuery(env plan.Environment, entries []plan.CatalogEntry) (string, []any) {
	query := `INSERT INTO catalog_exercises (environment, name, muscle_groups, description, form_tips, equipment, image_url)
VALUES `
	args := make([]any, 0, len(entries)*7)
	valueStrings := make([]string, 0, len(entries))

	for i, e := range entries {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7,
		))
		args = append(args, string(env), e.Name, nonNil(e.MuscleGroups), e.Description,
			nonNil(e.FormTips), nonNil(e.Equipment), e.ImageURL)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"
	return query, args
}

// nonNil keeps NOT NULL text[] columns happy.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/healthtrack/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const healthColumns = `id, user_id, height_cm, weight_kg, age, gender, activity_level,
	blood_pressure, heart_rate, sleep_hours, stress_level, recorded_at`

// InsertHealthRecord stores a health record. A zero ID or RecordedAt is filled in.
func (db *DB) InsertHealthRecord(ctx context.Context, r *models.HealthRecordRow) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO health_records (`+healthColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		r.ID, r.UserID, r.HeightCM, r.WeightKG, r.Age, r.Gender, r.ActivityLevel,
		r.BloodPressure, r.HeartRate, r.SleepHours, r.StressLevel, r.RecordedAt)
	if err != nil {
		return fmt.Errorf("inserting health record: %w", err)
	}
	return nil
}

// LatestHealthRecord returns the user's most recent health record.
func (db *DB) LatestHealthRecord(ctx context.Context, userID int) (*models.HealthRecordRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+healthColumns+`
		 FROM health_records
		 WHERE user_id = $1
		 ORDER BY recorded_at DESC
		 LIMIT 1`,
		userID)
	r, err := scanHealthRecord(row)
	if err != nil {
		return nil, notFound(err, "querying latest health record")
	}
	return r, nil
}

// QueryHealthRecords returns the user's records in [start, end), oldest first.
func (db *DB) QueryHealthRecords(ctx context.Context, userID int, start, end time.Time) ([]models.HealthRecordRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+healthColumns+`
		 FROM health_records
		 WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		 ORDER BY recorded_at ASC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying health records: %w", err)
	}
	defer rows.Close()

	result := []models.HealthRecordRow{}
	for rows.Next() {
		r, err := scanHealthRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning health record: %w", err)
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}

func scanHealthRecord(row pgx.Row) (*models.HealthRecordRow, error) {
	var r models.HealthRecordRow
	err := row.Scan(&r.ID, &r.UserID, &r.HeightCM, &r.WeightKG, &r.Age, &r.Gender, &r.ActivityLevel,
		&r.BloodPressure, &r.HeartRate, &r.SleepHours, &r.StressLevel, &r.RecordedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

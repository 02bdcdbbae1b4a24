package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthRecordRow is a row of the health_records table.
type HealthRecordRow struct {
	ID            uuid.UUID `json:"id"`
	UserID        int       `json:"-"`
	HeightCM      float64   `json:"height_cm"`
	WeightKG      float64   `json:"weight_kg"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	ActivityLevel string    `json:"activity_level"`
	BloodPressure *string   `json:"blood_pressure,omitempty"`
	HeartRate     *int      `json:"heart_rate,omitempty"`
	SleepHours    *float64  `json:"sleep_hours,omitempty"`
	StressLevel   *int      `json:"stress_level,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// GoalRow is a row of the goals table.
type GoalRow struct {
	ID           uuid.UUID  `json:"id"`
	UserID       int        `json:"-"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	TargetValue  *float64   `json:"target_value,omitempty"`
	CurrentValue *float64   `json:"current_value,omitempty"`
	Unit         string     `json:"unit"`
	Progress     float64    `json:"progress"`
	Completed    bool       `json:"completed"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SavedPlanRow is a row of the exercise_plans table. There is at most one
// per user and environment.
type SavedPlanRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"-"`
	Environment string    `json:"environment"`
	PlanText    string    `json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogExerciseRow is a row of the catalog_exercises table.
type CatalogExerciseRow struct {
	ID           int64    `json:"id"`
	Environment  string   `json:"environment"`
	Name         string   `json:"name"`
	MuscleGroups []string `json:"muscle_groups"`
	Description  string   `json:"description"`
	FormTips     []string `json:"form_tips"`
	Equipment    []string `json:"equipment"`
	ImageURL     string   `json:"image_url"`
}

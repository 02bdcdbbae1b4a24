package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/claude/healthtrack/internal/catalog"
	"github.com/claude/healthtrack/internal/generate"
	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legDay = `## Day 1: Legs
Focus: Quadriceps, Glutes
Warm-up: 5 minutes on the bike

**Leg Press** - sled press
Sets: 4
Reps: 10-12

**Wall Sit** - hold against a wall
Sets: 3
Reps: 45 seconds

## Day 2: Rest
`

type fakeStore struct {
	mu     sync.Mutex
	health *models.HealthRecordRow
	goals  []models.GoalRow
	plans  map[plan.Environment]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{plans: map[plan.Environment]string{}}
}

func (f *fakeStore) LatestHealthRecord(_ context.Context, _ int) (*models.HealthRecordRow, error) {
	if f.health == nil {
		return nil, storage.ErrNotFound
	}
	return f.health, nil
}

func (f *fakeStore) ListGoals(_ context.Context, _ int) ([]models.GoalRow, error) {
	return f.goals, nil
}

func (f *fakeStore) SavePlan(_ context.Context, userID int, env plan.Environment, text string) (*models.SavedPlanRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans[env] = text
	return &models.SavedPlanRow{UserID: userID, Environment: string(env), PlanText: text, UpdatedAt: time.Now()}, nil
}

func (f *fakeStore) GetPlan(_ context.Context, userID int, env plan.Environment) (*models.SavedPlanRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	text, ok := f.plans[env]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &models.SavedPlanRow{UserID: userID, Environment: string(env), PlanText: text}, nil
}

type fakeGenerator struct {
	text string
	err  error
	last generate.PlanRequest
}

func (g *fakeGenerator) GeneratePlan(_ context.Context, req generate.PlanRequest) (string, error) {
	g.last = req
	return g.text, g.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateRequiresHealthProfile(t *testing.T) {
	svc := New(newFakeStore(), &fakeGenerator{text: legDay}, catalog.Static{}, nil, 0, discardLogger())
	_, err := svc.Generate(context.Background(), 1, plan.Gym)
	assert.ErrorIs(t, err, ErrNoHealthProfile)
}

func TestGenerateGymEnriches(t *testing.T) {
	store := newFakeStore()
	store.health = &models.HealthRecordRow{Age: 30, HeightCM: 170, WeightKG: 70}
	store.goals = []models.GoalRow{{Title: "Squat 100 kg"}, {Title: "Done already", Completed: true}}
	gen := &fakeGenerator{text: legDay}
	reg := prometheus.NewRegistry()
	svc := New(store, gen, catalog.Static{}, NewMetrics(reg), time.Minute, discardLogger())

	sp, err := svc.Generate(context.Background(), 1, plan.Gym)
	require.NoError(t, err)

	assert.Equal(t, []string{"Squat 100 kg"}, gen.last.Goals)
	assert.Equal(t, legDay, store.plans[plan.Gym])
	assert.True(t, sp.Enriched)
	assert.Equal(t, "Day 1", sp.SelectedDay)
	assert.Equal(t, []string{"Leg Press", "Wall Sit"}, sp.ImageCandidates)
	require.Len(t, sp.Days, 2)

	// Leg Press is in the gym catalog; Wall Sit resolves through the focus muscles.
	assert.Equal(t, "Leg Press", sp.Days[0].Exercises[0].Name)
	assert.Equal(t, []string{"Leg press machine"}, sp.Days[0].Exercises[0].Equipment)
	assert.NotEqual(t, "Wall Sit", sp.Days[0].Exercises[1].Name)
	assert.Empty(t, sp.Days[1].Exercises)

	st := svc.State(1)
	assert.False(t, st.Loading(plan.Gym))
	assert.Len(t, st.Plan(plan.Gym), 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(svc.metrics.generations.WithLabelValues("gym", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.metrics.enrichResults.WithLabelValues("gym", "ok")))
}

func TestGenerateHomeIsNotEnriched(t *testing.T) {
	store := newFakeStore()
	store.health = &models.HealthRecordRow{Age: 30}
	svc := New(store, &fakeGenerator{text: legDay}, catalog.Static{}, nil, 0, discardLogger())

	sp, err := svc.Generate(context.Background(), 1, plan.Home)
	require.NoError(t, err)
	assert.False(t, sp.Enriched)
	assert.Equal(t, "Wall Sit", sp.Days[0].Exercises[1].Name)
}

func TestGenerateFailure(t *testing.T) {
	store := newFakeStore()
	store.health = &models.HealthRecordRow{Age: 30}
	svc := New(store, &fakeGenerator{err: errors.New("quota exceeded")}, catalog.Static{}, nil, 0, discardLogger())

	_, err := svc.Generate(context.Background(), 1, plan.Gym)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Empty(t, store.plans)
	assert.False(t, svc.State(1).Loading(plan.Gym))

	noGen := New(store, nil, nil, nil, 0, discardLogger())
	_, err = noGen.Generate(context.Background(), 1, plan.Gym)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestStructuredEnrichOverride(t *testing.T) {
	store := newFakeStore()
	store.plans[plan.Gym] = legDay
	svc := New(store, nil, catalog.Static{}, nil, 0, discardLogger())

	off := false
	sp, err := svc.Structured(context.Background(), 7, plan.Gym, &off)
	require.NoError(t, err)
	assert.False(t, sp.Enriched)
	assert.Equal(t, "Wall Sit", sp.Days[0].Exercises[1].Name)

	_, err = svc.Structured(context.Background(), 7, plan.Home, nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// TestStructuredCatalogFailure verifies a failing catalog leaves the plan as parsed.
func TestStructuredCatalogFailure(t *testing.T) {
	store := newFakeStore()
	store.plans[plan.Gym] = legDay
	failing := plan.CatalogSourceFunc(func(context.Context, plan.Environment) ([]plan.CatalogEntry, error) {
		return nil, errors.New("connection refused")
	})
	svc := New(store, nil, failing, nil, 0, discardLogger())

	sp, err := svc.Structured(context.Background(), 1, plan.Gym, nil)
	require.NoError(t, err)
	assert.Equal(t, plan.Parse(legDay), sp.Days)
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.metrics.enrichResults.WithLabelValues("gym", "error")))
}

// TestLoggingSourceCountsOutcomes verifies each catalog lookup is counted by outcome.
func TestLoggingSourceCountsOutcomes(t *testing.T) {
	m := NewMetrics(nil)
	empty := plan.CatalogSourceFunc(func(context.Context, plan.Environment) ([]plan.CatalogEntry, error) {
		return nil, nil
	})

	_, err := NewLoggingSource(catalog.Static{}, discardLogger(), m).Exercises(context.Background(), plan.Home)
	require.NoError(t, err)
	_, err = NewLoggingSource(empty, discardLogger(), m).Exercises(context.Background(), plan.Home)
	require.NoError(t, err)
	_, err = NewLoggingSource(nil, discardLogger(), m).Exercises(context.Background(), plan.Home)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.enrichResults.WithLabelValues("home", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.enrichResults.WithLabelValues("home", "empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.enrichResults.WithLabelValues("home", "error")))

	// A nil Metrics only logs.
	_, err = NewLoggingSource(empty, discardLogger(), nil).Exercises(context.Background(), plan.Home)
	require.NoError(t, err)
}

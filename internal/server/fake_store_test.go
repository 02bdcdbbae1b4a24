package server

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/storage"
	"github.com/google/uuid"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu      sync.Mutex
	health  []models.HealthRecordRow
	goals   map[uuid.UUID]models.GoalRow
	plans   map[int]map[plan.Environment]models.SavedPlanRow
	catalog map[plan.Environment][]models.CatalogExerciseRow
	users   map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		goals:   map[uuid.UUID]models.GoalRow{},
		plans:   map[int]map[plan.Environment]models.SavedPlanRow{},
		catalog: map[plan.Environment][]models.CatalogExerciseRow{},
		users:   map[string]int{"local": 1},
	}
}

func (m *memStore) GetOrCreateUser(_ context.Context, login, _ string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.users[login]; ok {
		return id, nil
	}
	id := len(m.users) + 1
	m.users[login] = id
	return id, nil
}

func (m *memStore) InsertHealthRecord(_ context.Context, r *models.HealthRecordRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = uuid.New()
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	m.health = append(m.health, *r)
	return nil
}

func (m *memStore) LatestHealthRecord(_ context.Context, userID int) (*models.HealthRecordRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.health) - 1; i >= 0; i-- {
		if m.health[i].UserID == userID {
			r := m.health[i]
			return &r, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) QueryHealthRecords(_ context.Context, userID int, start, end time.Time) ([]models.HealthRecordRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.HealthRecordRow{}
	for _, r := range m.health {
		if r.UserID == userID && !r.RecordedAt.Before(start) && r.RecordedAt.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListGoals(_ context.Context, userID int) ([]models.GoalRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.GoalRow{}
	for _, g := range m.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memStore) GetGoal(_ context.Context, userID int, id uuid.UUID) (*models.GoalRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &g, nil
}

func (m *memStore) CreateGoal(_ context.Context, g *models.GoalRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = uuid.New()
	m.goals[g.ID] = *g
	return nil
}

func (m *memStore) UpdateGoal(_ context.Context, g *models.GoalRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[g.ID]; !ok {
		return storage.ErrNotFound
	}
	m.goals[g.ID] = *g
	return nil
}

func (m *memStore) DeleteGoal(_ context.Context, userID int, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *memStore) SavePlan(_ context.Context, userID int, env plan.Environment, text string) (*models.SavedPlanRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plans[userID] == nil {
		m.plans[userID] = map[plan.Environment]models.SavedPlanRow{}
	}
	p, ok := m.plans[userID][env]
	if !ok {
		p = models.SavedPlanRow{ID: uuid.New(), UserID: userID, Environment: string(env), CreatedAt: time.Now()}
	}
	p.PlanText = text
	p.UpdatedAt = time.Now()
	m.plans[userID][env] = p
	return &p, nil
}

func (m *memStore) GetPlan(_ context.Context, userID int, env plan.Environment) (*models.SavedPlanRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[userID][env]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) ListPlans(_ context.Context, userID int) ([]models.SavedPlanRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.SavedPlanRow{}
	for _, env := range plan.Environments {
		if p, ok := m.plans[userID][env]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) ListCatalogExercises(_ context.Context, env plan.Environment) ([]models.CatalogExerciseRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CatalogExerciseRow{}, m.catalog[env]...), nil
}

func (m *memStore) SeedCatalog(_ context.Context, env plan.Environment, entries []plan.CatalogEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range entries {
		dup := false
		for _, existing := range m.catalog[env] {
			if strings.EqualFold(existing.Name, e.Name) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		m.catalog[env] = append(m.catalog[env], models.CatalogExerciseRow{
			ID: int64(len(m.catalog[env]) + 1), Environment: string(env), Name: e.Name,
			MuscleGroups: e.MuscleGroups, Description: e.Description,
			FormTips: e.FormTips, Equipment: e.Equipment, ImageURL: e.ImageURL,
		})
		n++
	}
	return n, nil
}

// Exercises lets the store double as the planner's catalog source.
func (m *memStore) Exercises(ctx context.Context, env plan.Environment) ([]plan.CatalogEntry, error) {
	rows, _ := m.ListCatalogExercises(ctx, env)
	return storage.CatalogEntries(rows), nil
}

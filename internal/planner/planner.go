// Package planner turns health profiles into structured exercise plans:
// generate, save, parse, then enrich from the catalog.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/healthtrack/internal/generate"
	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/storage"
)

// ErrNoHealthProfile is returned when a plan is requested for a user
// without any health record.
var ErrNoHealthProfile = errors.New("complete your health profile first")

// ErrGeneration marks failures of the text generator.
var ErrGeneration = errors.New("plan generation failed")

// imageCandidateLimit caps the exercise names offered for illustration.
const imageCandidateLimit = 5

// Store is the persistence the planner needs.
type Store interface {
	LatestHealthRecord(ctx context.Context, userID int) (*models.HealthRecordRow, error)
	ListGoals(ctx context.Context, userID int) ([]models.GoalRow, error)
	SavePlan(ctx context.Context, userID int, env plan.Environment, text string) (*models.SavedPlanRow, error)
	GetPlan(ctx context.Context, userID int, env plan.Environment) (*models.SavedPlanRow, error)
}

// StructuredPlan is the day-by-day view of a saved plan.
type StructuredPlan struct {
	Environment     plan.Environment `json:"environment"`
	Days            []plan.DayPlan   `json:"days"`
	SelectedDay     string           `json:"selected_day"`
	ImageCandidates []string         `json:"image_candidates"`
	Enriched        bool             `json:"enriched"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Service orchestrates plan generation and keeps the latest plan state per user.
type Service struct {
	store   Store
	gen     generate.Generator
	catalog plan.CatalogSource
	log     *slog.Logger
	metrics *Metrics
	timeout time.Duration

	mu     sync.Mutex
	states map[int]plan.State
}

// New creates a Service. gen may be nil, in which case Generate fails with
// ErrGeneration and saved plans can still be viewed.
func New(store Store, gen generate.Generator, catalog plan.CatalogSource, metrics *Metrics, timeout time.Duration, log *slog.Logger) *Service {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Service{
		store:   store,
		gen:     gen,
		catalog: NewLoggingSource(catalog, log, metrics),
		log:     log,
		metrics: metrics,
		timeout: timeout,
		states:  make(map[int]plan.State),
	}
}

// EnrichByDefault reports whether plans for env are enriched unless the
// caller says otherwise. Only gym plans are.
func EnrichByDefault(env plan.Environment) bool {
	return env == plan.Gym
}

// Generate writes a new plan for env from the user's latest health record,
// saves it, and returns its structured view.
func (s *Service) Generate(ctx context.Context, userID int, env plan.Environment) (*StructuredPlan, error) {
	s.update(userID, func(st plan.State) plan.State { return st.WithLoading(env, true) })
	defer s.update(userID, func(st plan.State) plan.State { return st.WithLoading(env, false) })

	health, err := s.store.LatestHealthRecord(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoHealthProfile
	}
	if err != nil {
		return nil, fmt.Errorf("loading health profile: %w", err)
	}

	goalRows, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	var goals []string
	for _, g := range goalRows {
		if !g.Completed {
			goals = append(goals, g.Title)
		}
	}

	text, err := s.generate(ctx, generate.PlanRequest{Environment: env, Health: *health, Goals: goals})
	if err != nil {
		return nil, err
	}

	saved, err := s.store.SavePlan(ctx, userID, env, text)
	if err != nil {
		return nil, fmt.Errorf("saving generated plan: %w", err)
	}
	s.log.Info("plan generated", "user_id", userID, "environment", env, "bytes", len(text))

	return s.structure(ctx, userID, env, saved, EnrichByDefault(env)), nil
}

func (s *Service) generate(ctx context.Context, req generate.PlanRequest) (string, error) {
	env := string(req.Environment)
	if s.gen == nil {
		s.metrics.generations.WithLabelValues(env, "unavailable").Inc()
		return "", fmt.Errorf("%w: no generator configured", ErrGeneration)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.gen.GeneratePlan(ctx, req)
	s.metrics.genDuration.WithLabelValues(env).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.generations.WithLabelValues(env, "error").Inc()
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	s.metrics.generations.WithLabelValues(env, "ok").Inc()
	return text, nil
}

// Structured returns the structured view of the user's saved plan for env.
// A nil enrich applies EnrichByDefault.
func (s *Service) Structured(ctx context.Context, userID int, env plan.Environment, enrich *bool) (*StructuredPlan, error) {
	saved, err := s.store.GetPlan(ctx, userID, env)
	if err != nil {
		return nil, err
	}
	doEnrich := EnrichByDefault(env)
	if enrich != nil {
		doEnrich = *enrich
	}
	return s.structure(ctx, userID, env, saved, doEnrich), nil
}

// State returns the user's current plan state.
func (s *Service) State(userID int) plan.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[userID]
	if !ok {
		return plan.NewState()
	}
	return st
}

func (s *Service) structure(ctx context.Context, userID int, env plan.Environment, saved *models.SavedPlanRow, enrich bool) *StructuredPlan {
	days := plan.Parse(saved.PlanText)
	s.metrics.parsedDays.WithLabelValues(string(env)).Observe(float64(len(days)))

	if enrich {
		days = plan.Enrich(ctx, days, env, s.catalog)
	}

	var next plan.State
	s.update(userID, func(st plan.State) plan.State {
		next = st.WithGenerated(env, saved.PlanText).WithParsed(env, days)
		return next
	})

	return &StructuredPlan{
		Environment:     env,
		Days:            days,
		SelectedDay:     next.FirstDay(env),
		ImageCandidates: plan.BoldNames(saved.PlanText, imageCandidateLimit),
		Enriched:        enrich,
		UpdatedAt:       saved.UpdatedAt,
	}
}

func (s *Service) update(userID int, fn func(plan.State) plan.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[userID]
	if !ok {
		st = plan.NewState()
	}
	s.states[userID] = fn(st)
}

// LoggingSource wraps a catalog so failures and empty results, which the
// matcher otherwise swallows, are logged and counted. metrics may be nil.
type LoggingSource struct {
	src     plan.CatalogSource
	log     *slog.Logger
	metrics *Metrics
}

// NewLoggingSource wraps src.
func NewLoggingSource(src plan.CatalogSource, log *slog.Logger, metrics *Metrics) *LoggingSource {
	return &LoggingSource{src: src, log: log, metrics: metrics}
}

func (l *LoggingSource) Exercises(ctx context.Context, env plan.Environment) ([]plan.CatalogEntry, error) {
	if l.src == nil {
		l.count(env, "error")
		return nil, fmt.Errorf("no catalog configured")
	}
	entries, err := l.src.Exercises(ctx, env)
	if err != nil {
		l.log.Warn("catalog unavailable, plan left unenriched", "environment", env, "error", err)
		l.count(env, "error")
		return nil, err
	}
	if len(entries) == 0 {
		l.log.Warn("catalog empty, plan left unenriched", "environment", env)
		l.count(env, "empty")
		return entries, nil
	}
	l.count(env, "ok")
	return entries, nil
}

func (l *LoggingSource) count(env plan.Environment, outcome string) {
	if l.metrics != nil {
		l.metrics.enrichResults.WithLabelValues(string(env), outcome).Inc()
	}
}

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/healthtrack/internal/models"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/planner"
	"github.com/claude/healthtrack/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the persistence behind the HTTP API. *storage.DB implements it.
type Store interface {
	planner.Store
	UserStore

	InsertHealthRecord(ctx context.Context, r *models.HealthRecordRow) error
	QueryHealthRecords(ctx context.Context, userID int, start, end time.Time) ([]models.HealthRecordRow, error)

	GetGoal(ctx context.Context, userID int, id uuid.UUID) (*models.GoalRow, error)
	CreateGoal(ctx context.Context, g *models.GoalRow) error
	UpdateGoal(ctx context.Context, g *models.GoalRow) error
	DeleteGoal(ctx context.Context, userID int, id uuid.UUID) error

	ListPlans(ctx context.Context, userID int) ([]models.SavedPlanRow, error)

	ListCatalogExercises(ctx context.Context, env plan.Environment) ([]models.CatalogExerciseRow, error)
	SeedCatalog(ctx context.Context, env plan.Environment, entries []plan.CatalogEntry) (int64, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       Store
	planner  *planner.Service
	log      *slog.Logger
	apiKey   string
	router   chi.Router
	whois    WhoIsClient
	metrics  *httpMetrics
	gatherer prometheus.Gatherer
}

// New creates a new Server with all routes configured. HTTP metrics are
// registered with reg and served from /metrics.
func New(db Store, svc *planner.Service, apiKey string, reg *prometheus.Registry, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		planner: svc,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
		metrics: newHTTPMetrics(nil),
	}
	if reg != nil {
		s.metrics = newHTTPMetrics(reg)
		s.gatherer = reg
	}
	s.routes()
	return s
}

// SetTailscale switches caller identity from the dev user to tailnet WhoIs.
func (s *Server) SetTailscale(whois WhoIsClient) {
	s.whois = whois
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.metrics.Metrics)

	if s.gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identity)

		r.Get("/me", s.handleMe)

		r.Get("/health/latest", s.handleLatestHealth)
		r.Get("/health", s.handleQueryHealth)
		r.Get("/goals", s.handleListGoals)
		r.Get("/exercise/plans", s.handleListPlans)
		r.Get("/exercise/plans/{environment}", s.handleStructuredPlan)
		r.Get("/exercise/list", s.handleListCatalog)
		r.Post("/exercise/parse", s.handleParsePlan)

		// Writes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/health", s.handleRecordHealth)
			r.Post("/goals", s.handleCreateGoal)
			r.Put("/goals/{id}", s.handleUpdateGoal)
			r.Delete("/goals/{id}", s.handleDeleteGoal)
			r.Post("/goals/{id}/toggle", s.handleToggleGoal)
			r.Post("/exercise/plans", s.handleSavePlan)
			r.Post("/exercise/generate", s.handleGeneratePlan)
			r.Post("/exercise/seed", s.handleSeedCatalog)
		})
	})
}

// identity applies TailscaleIdentity once SetTailscale was called and
// DevIdentity otherwise.
func (s *Server) identity(next http.Handler) http.Handler {
	dev := DevIdentity(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.whois == nil {
			dev.ServeHTTP(w, r)
			return
		}
		TailscaleIdentity(s.whois, s.db, s.log)(next).ServeHTTP(w, r)
	})
}

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/claude/healthtrack/internal/catalog"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/go-chi/chi/v5"
)

type savePlanRequest struct {
	Environment string `json:"environment"`
	Plan        string `json:"plan"`
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.ListPlans(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	var req savePlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	env, err := plan.ParseEnvironment(req.Environment)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Plan) == "" {
		badRequest(w, "plan is required")
		return
	}

	saved, err := s.db.SavePlan(r.Context(), userIDFromContext(r), env, req.Plan)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req savePlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	env, err := plan.ParseEnvironment(req.Environment)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	sp, err := s.planner.Generate(r.Context(), userIDFromContext(r), env)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

// handleStructuredPlan returns the parsed view of a saved plan. ?enrich
// overrides the per-environment default.
func (s *Server) handleStructuredPlan(w http.ResponseWriter, r *http.Request) {
	env, err := plan.ParseEnvironment(chi.URLParam(r, "environment"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var enrich *bool
	if v := r.URL.Query().Get("enrich"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, "enrich must be true or false")
			return
		}
		enrich = &b
	}

	sp, err := s.planner.Structured(r.Context(), userIDFromContext(r), env, enrich)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

// handleParsePlan parses plan text without touching storage. The body is
// either raw text or JSON {"plan": "..."}.
func (s *Server) handleParsePlan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		badRequest(w, "reading body: "+err.Error())
		return
	}
	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req savePlanRequest
		if err := json.Unmarshal(body, &req); err != nil {
			badRequest(w, "invalid JSON: "+err.Error())
			return
		}
		text = req.Plan
	}
	writeJSON(w, http.StatusOK, plan.Parse(text))
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	env, err := plan.ParseEnvironment(r.URL.Query().Get("environment"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	rows, err := s.db.ListCatalogExercises(r.Context(), env)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleSeedCatalog inserts the built-in catalog. Existing names are kept,
// so repeated calls insert nothing.
func (s *Server) handleSeedCatalog(w http.ResponseWriter, r *http.Request) {
	inserted, err := catalog.SeedAll(r.Context(), s.db)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("catalog seeded", "home", inserted[plan.Home], "gym", inserted[plan.Gym])
	writeJSON(w, http.StatusOK, map[string]any{"inserted": inserted})
}

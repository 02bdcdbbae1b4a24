package server

import (
	"net/http"

	"github.com/claude/healthtrack/internal/goals"
	"github.com/claude/healthtrack/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.ListGoals(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g models.GoalRow
	if !decodeJSON(w, r, &g) {
		return
	}
	if err := goals.Validate(&g); err != nil {
		badRequest(w, err.Error())
		return
	}
	g.UserID = userIDFromContext(r)
	goals.Recompute(&g)

	if err := s.db.CreateGoal(r.Context(), &g); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// handleUpdateGoal applies the fields present in the body to the stored goal.
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGoal(w, r)
	if !ok {
		return
	}
	id, uid := g.ID, g.UserID
	if !decodeJSON(w, r, g) {
		return
	}
	g.ID, g.UserID = id, uid
	if err := goals.Validate(g); err != nil {
		badRequest(w, err.Error())
		return
	}
	goals.Recompute(g)

	if err := s.db.UpdateGoal(r.Context(), g); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGoal(w, r)
	if !ok {
		return
	}
	goals.Toggle(g)
	if err := s.db.UpdateGoal(r.Context(), g); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid goal ID")
		return
	}
	if err := s.db.DeleteGoal(r.Context(), userIDFromContext(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadGoal(w http.ResponseWriter, r *http.Request) (*models.GoalRow, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid goal ID")
		return nil, false
	}
	g, err := s.db.GetGoal(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return g, true
}

package server

import (
	"net/http"

	"github.com/claude/healthtrack/internal/models"
)

func (s *Server) handleLatestHealth(w http.ResponseWriter, r *http.Request) {
	rec, err := s.db.LatestHealthRecord(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleQueryHealth(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	rows, err := s.db.QueryHealthRecords(r.Context(), userIDFromContext(r), start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleRecordHealth(w http.ResponseWriter, r *http.Request) {
	var rec models.HealthRecordRow
	if !decodeJSON(w, r, &rec) {
		return
	}
	if rec.HeightCM <= 0 || rec.WeightKG <= 0 || rec.Age <= 0 {
		badRequest(w, "height_cm, weight_kg and age must be positive")
		return
	}
	if rec.StressLevel != nil && (*rec.StressLevel < 1 || *rec.StressLevel > 10) {
		badRequest(w, "stress_level must be between 1 and 10")
		return
	}
	rec.UserID = userIDFromContext(r)

	if err := s.db.InsertHealthRecord(r.Context(), &rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

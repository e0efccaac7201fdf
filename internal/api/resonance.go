package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/resonance/internal/engine"
	"github.com/MikeSquared-Agency/resonance/internal/glyph"
	"github.com/MikeSquared-Agency/resonance/internal/store"
)

const maxBodyBytes = 1 << 20

// ScoreRequest is the body of POST /api/v1/score.
type ScoreRequest struct {
	Text string `json:"text"`
}

// InteractionRequest is the body of POST /api/v1/interactions.
type InteractionRequest struct {
	UserID    string     `json:"user_id"`
	Text      string     `json:"text"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ClassifyResponse is returned by GET /api/v1/classify.
type ClassifyResponse struct {
	Valence   float64     `json:"valence"`
	Intensity float64     `json:"intensity"`
	Glyph     glyph.Glyph `json:"glyph"`
	Symbol    string      `json:"symbol"`
	Rule      string      `json:"rule"`
}

// score handles POST /api/v1/score
func (s *Server) score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Evaluate(req.Text))
}

// classify handles GET /api/v1/classify?valence=&intensity=
func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	v, err := floatParam(r, "valence")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	i, err := floatParam(r, "intensity")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, rule := glyph.Explain(v, i)
	writeJSON(w, http.StatusOK, ClassifyResponse{
		Valence:   v,
		Intensity: i,
		Glyph:     g,
		Symbol:    g.Symbol(),
		Rule:      rule,
	})
}

// createInteraction handles POST /api/v1/interactions
func (s *Server) createInteraction(w http.ResponseWriter, r *http.Request) {
	var req InteractionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	var at time.Time
	if req.Timestamp != nil {
		at = *req.Timestamp
	}

	res, err := s.engine.ProcessAt(r.Context(), req.UserID, req.Text, at)
	if errors.Is(err, engine.ErrEmptyUser) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("process interaction failed", "user_id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// listRelationships handles GET /api/v1/relationships
func (s *Server) listRelationships(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.Users(r.Context())
	if err != nil {
		slog.Error("list relationships failed", "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users": ids,
		"count": len(ids),
	})
}

// getRelationship handles GET /api/v1/relationships/{userID}
func (s *Server) getRelationship(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	st, err := s.engine.Relationship(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "relationship not found")
		return
	}
	if err != nil {
		slog.Error("load relationship failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// listExperiences handles GET /api/v1/relationships/{userID}/experiences?limit=
func (s *Server) listExperiences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, 500)
	}
	exps, err := s.engine.Experiences(r.Context(), userID, limit)
	if err != nil {
		slog.Error("list experiences failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if exps == nil {
		exps = []store.Experience{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"experiences": exps,
		"count":       len(exps),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func floatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return f, nil
}

package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/p-n-ai/studymate/internal/app"
	"github.com/p-n-ai/studymate/internal/quiz"
	"github.com/p-n-ai/studymate/internal/study"
)

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.ctrl.HealthCheck(r.Context()); err != nil {
		slog.Warn("readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	if err := renderPage(w, s.exam, s.ctrl.Snapshot()); err != nil {
		slog.Error("failed to render page", "error", err)
	}
}

func (s *server) handleSelectSection(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.SelectSection(r.FormValue("section")); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	redirectHome(w, r)
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	kind, err := study.ParseKind(r.FormValue("kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := s.ctrl.Generate(r.Context(), r.FormValue("topic"), kind); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	redirectHome(w, r)
}

func (s *server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ctrl.ToggleCompletion(r.Context(), r.FormValue("topic")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, app.ErrUnknownTopic) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err)
		return
	}
	redirectHome(w, r)
}

func (s *server) handleQuizSelect(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.ctrl.SelectOption(index, r.FormValue("option")); err != nil {
		respondError(w, quizStatus(err), err)
		return
	}
	redirectHome(w, r)
}

func (s *server) handleQuizReveal(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.ctrl.Reveal(index); err != nil {
		respondError(w, quizStatus(err), err)
		return
	}
	redirectHome(w, r)
}

func quizStatus(err error) int {
	switch {
	case errors.Is(err, quiz.ErrAnswered), errors.Is(err, quiz.ErrNoSelection), errors.Is(err, app.ErrNoQuiz):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (s *server) handleScroll(w http.ResponseWriter, r *http.Request) {
	var ev app.ScrollEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"progress": s.ctrl.OnScroll(ev)})
}

type restoreResponse struct {
	OK bool `json:"ok"`
	app.Restore
}

func (s *server) handleRestore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	height, err1 := strconv.ParseFloat(q.Get("scrollHeight"), 64)
	client, err2 := strconv.ParseFloat(q.Get("clientHeight"), 64)
	if err := errors.Join(err1, err2); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if !finite(height) || !finite(client) {
		respondError(w, http.StatusBadRequest, errors.New("scroll metrics must be finite numbers"))
		return
	}
	restore, ok := s.ctrl.RestoreOffset(app.ScrollMetrics{Height: height, Client: client})
	respondJSON(w, http.StatusOK, restoreResponse{OK: ok, Restore: restore})
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// Package api provides the local HTTP API. Every endpoint is a thin
// adapter over the app services; no progression logic lives here.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ascend-app/ascend/internal/ai"
	"github.com/ascend-app/ascend/internal/app/gamification"
	"github.com/ascend-app/ascend/internal/app/habit"
	"github.com/ascend-app/ascend/internal/app/motivation"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/health"
)

// Server is the Ascend HTTP API server.
type Server struct {
	game           *gamification.Service
	habits         *habit.Service
	messages       *motivation.Service
	ai             *ai.Client
	health         *health.Checker
	metricsEnabled bool
}

// NewServer creates an API server over the app services.
func NewServer(game *gamification.Service, habits *habit.Service, messages *motivation.Service) *Server {
	return &Server{game: game, habits: habits, messages: messages}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetAI wires the AI collaborator client. Endpoints under /api/ai
// return 503 until this is set with a configured key.
func (s *Server) SetAI(c *ai.Client) { s.ai = c }

// SetHealth wires the periodic self-check results into /health.
func (s *Server) SetHealth(c *health.Checker) { s.health = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.health == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		status, code := "ok", http.StatusOK
		if !s.health.IsHealthy() {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]any{
			"status": status,
			"checks": s.health.Statuses(),
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/profile/init", s.handleInitProfile)
		r.Get("/profile", s.handleProfile)

		r.Post("/logs", s.handleSubmitLog)
		r.Get("/logs", s.handleListLogs)
		r.Get("/logs/{date}", s.handleGetLog)
		r.Get("/streak", s.handleStreak)

		r.Post("/meals", s.handleAddMeal)
		r.Get("/meals/{date}", s.handleListMeals)

		r.Route("/habits", func(r chi.Router) {
			r.Post("/", s.handleCreateHabit)
			r.Get("/", s.handleListHabits)
			r.Delete("/{id}", s.handleDeleteHabit)
			r.Post("/{id}/check", s.handleCheckHabit)
			r.Post("/{id}/uncheck", s.handleUncheckHabit)
		})

		r.Get("/badges", s.handleBadges)

		r.Get("/rewards", s.handleRewards)
		r.Post("/rewards/draw", s.handleDrawReward)

		r.Post("/quests", s.handleCreateQuest)
		r.Get("/quests/{date}", s.handleGetQuest)
		r.Post("/quests/{date}/complete", s.handleCompleteQuest)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)

		r.Route("/ai", func(r chi.Router) {
			r.Get("/quote", s.handleAIQuote)
			r.Get("/journal-prompt", s.handleAIJournalPrompt)
			r.Post("/physique", s.handleAIPhysique)
		})
	})

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrNegativeStat),
		errors.Is(err, domain.ErrHabitName):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrLogNotFound),
		errors.Is(err, domain.ErrHabitNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrQuestExists):
		status = http.StatusConflict
	case errors.Is(err, ai.ErrAPIKeyMissing):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"message": err.Error()},
	})
}

// corsMiddleware adds CORS headers for the local web UI.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ascend-app/ascend/internal/ai"
	"github.com/ascend-app/ascend/internal/app/gamification"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/metrics"
)

// ─── Profile ────────────────────────────────────────────────────────────────

func (s *Server) handleInitProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.game.InitProfile(); err != nil {
		writeError(w, err)
		return
	}
	profile, err := s.game.Profile()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.game.Profile()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileView(profile))
}

// profileView decorates the stored profile with derived progress fields.
func profileView(p *domain.UserProfile) map[string]any {
	return map[string]any{
		"xp":           p.XP,
		"level":        p.Level,
		"badges":       p.Badges,
		"created_at":   p.CreatedAt,
		"xp_to_next":   gamification.XPToNextLevel(p.XP),
		"progress_pct": gamification.ProgressPct(p.XP),
	}
}

// ─── Daily Logs ─────────────────────────────────────────────────────────────

func (s *Server) handleSubmitLog(w http.ResponseWriter, r *http.Request) {
	var log domain.DailyLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		writeError(w, domain.ErrInvalidDate)
		return
	}

	res, err := s.game.SubmitLog(log)
	if err != nil {
		metrics.LogSubmitErrors.WithLabelValues(errorReason(err)).Inc()
		writeError(w, err)
		return
	}

	metrics.LogsSubmitted.Inc()
	if res.EarnedXP > 0 {
		metrics.XPEarned.WithLabelValues("daily_log").Add(float64(res.EarnedXP))
	}
	if res.PenaltyApplied {
		metrics.XPPenalties.Inc()
	}
	metrics.CurrentXP.Set(float64(res.XP))
	metrics.CurrentLevel.Set(float64(res.Level))
	metrics.BadgesUnlocked.Add(float64(len(res.NewBadges)))

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := s.game.Logs(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if logs == nil {
		logs = []domain.DailyLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	log, err := s.game.Log(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	if log == nil {
		writeError(w, domain.ErrLogNotFound)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	today := r.URL.Query().Get("date")
	if today == "" {
		today = domain.DateOf(time.Now())
	}
	if !domain.ValidDate(today) {
		writeError(w, domain.ErrInvalidDate)
		return
	}
	streak, err := s.game.CurrentStreak(today)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.AbstinenceStreak.Set(float64(streak))
	writeJSON(w, http.StatusOK, map[string]any{"date": today, "streak": streak})
}

// ─── Meals ──────────────────────────────────────────────────────────────────

func (s *Server) handleAddMeal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date     string `json:"date"`
		Name     string `json:"name"`
		Calories int    `json:"calories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidDate)
		return
	}
	meal, first, err := s.game.AddMeal(req.Date, req.Name, req.Calories)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"meal":          meal,
		"bonus_awarded": first,
	})
}

func (s *Server) handleListMeals(w http.ResponseWriter, r *http.Request) {
	meals, err := s.game.Meals(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	if meals == nil {
		meals = []domain.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

// ─── Habits ─────────────────────────────────────────────────────────────────

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrHabitName)
		return
	}
	h, err := s.habits.Create(req.Name, req.Icon)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	list, err := s.habits.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []domain.Habit{}
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = domain.DateOf(time.Now())
	}
	done, err := s.habits.CompletedToday(date)
	if err != nil {
		writeError(w, err)
		return
	}

	type habitView struct {
		domain.Habit
		CompletedToday bool `json:"completed_today"`
	}
	views := make([]habitView, len(list))
	for i, h := range list {
		views[i] = habitView{Habit: h, CompletedToday: done[h.ID]}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.habits.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheckHabit(w http.ResponseWriter, r *http.Request) {
	h, err := s.habits.Check(chi.URLParam(r, "id"), toggleDate(r))
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.HabitToggles.WithLabelValues("check").Inc()
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleUncheckHabit(w http.ResponseWriter, r *http.Request) {
	h, err := s.habits.Uncheck(chi.URLParam(r, "id"), toggleDate(r))
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.HabitToggles.WithLabelValues("uncheck").Inc()
	writeJSON(w, http.StatusOK, h)
}

// toggleDate reads an optional ?date= override, defaulting to today.
func toggleDate(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return domain.DateOf(time.Now())
}

// ─── Badges & Rewards ───────────────────────────────────────────────────────

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	profile, err := s.game.Profile()
	if err != nil {
		writeError(w, err)
		return
	}
	type badgeView struct {
		domain.BadgeDef
		Unlocked bool `json:"unlocked"`
	}
	defs := s.game.Badges()
	views := make([]badgeView, len(defs))
	for i, d := range defs {
		views[i] = badgeView{BadgeDef: d, Unlocked: profile.HasBadge(d.ID)}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	catalog, granted, err := s.game.Rewards()
	if err != nil {
		writeError(w, err)
		return
	}
	if granted == nil {
		granted = []domain.UserReward{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"catalog": catalog,
		"granted": granted,
	})
}

func (s *Server) handleDrawReward(w http.ResponseWriter, r *http.Request) {
	reward, err := s.game.DrawReward()
	if err != nil {
		writeError(w, err)
		return
	}
	if reward == nil {
		writeJSON(w, http.StatusOK, map[string]any{"reward": nil, "exhausted": true})
		return
	}
	metrics.RewardDraws.WithLabelValues(string(reward.Rarity)).Inc()
	writeJSON(w, http.StatusOK, map[string]any{"reward": reward, "exhausted": false})
}

// ─── Quests ─────────────────────────────────────────────────────────────────

func (s *Server) handleCreateQuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string `json:"date"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidDate)
		return
	}
	if err := s.game.CreateQuest(req.Date, req.Description); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleGetQuest(w http.ResponseWriter, r *http.Request) {
	quest, err := s.game.Quest(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quest": quest})
}

func (s *Server) handleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	if err := s.game.CompleteQuest(chi.URLParam(r, "date")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	pending, err := s.messages.Pending(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if pending == nil {
		pending = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, domain.ErrInvalidDate)
		return
	}
	if err := s.messages.MarkShown(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── AI Collaborator ────────────────────────────────────────────────────────

func (s *Server) handleAIQuote(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeError(w, ai.ErrAPIKeyMissing)
		return
	}
	start := time.Now()
	quote, err := s.ai.GenerateQuote(r.Context())
	metrics.AILatency.WithLabelValues("quote").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AIErrors.WithLabelValues("quote").Inc()
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleAIJournalPrompt(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeError(w, ai.ErrAPIKeyMissing)
		return
	}
	start := time.Now()
	prompt, err := s.ai.JournalPrompt(r.Context())
	metrics.AILatency.WithLabelValues("journal_prompt").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AIErrors.WithLabelValues("journal_prompt").Inc()
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt": prompt})
}

func (s *Server) handleAIPhysique(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		writeError(w, ai.ErrAPIKeyMissing)
		return
	}
	var req ai.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"message": "invalid request body"},
		})
		return
	}
	start := time.Now()
	analysis, err := s.ai.AnalyzePhysique(r.Context(), req)
	metrics.AILatency.WithLabelValues("physique").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AIErrors.WithLabelValues("physique").Inc()
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// errorReason buckets submission errors for the rejection counter.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrNegativeStat):
		return "negative_stat"
	case errors.Is(err, domain.ErrProfileNotFound):
		return "no_profile"
	default:
		return "internal"
	}
}

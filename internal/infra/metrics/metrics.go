// Package metrics provides Prometheus metrics for Ascend: counters,
// gauges, and histograms for log submissions, progression, habits,
// rewards, and the AI collaborator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Daily Logs ─────────────────────────────────────────────────────────────

// LogsSubmitted tracks daily log submissions, including re-submissions.
var LogsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "logs_submitted_total",
	Help:      "Total daily log submissions.",
})

// LogSubmitErrors tracks rejected submissions by reason.
var LogSubmitErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "log_submit_errors_total",
	Help:      "Total rejected log submissions.",
}, []string{"reason"})

// ─── Progression ────────────────────────────────────────────────────────────

// XPEarned tracks XP accrued, by source.
var XPEarned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "xp_earned_total",
	Help:      "Total XP earned, by source.",
}, []string{"source"})

// XPPenalties tracks quest penalties applied.
var XPPenalties = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "xp_penalties_total",
	Help:      "Total quest penalties applied.",
})

// CurrentLevel tracks the user's level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ascend",
	Name:      "level_current",
	Help:      "Current user level.",
})

// CurrentXP tracks cumulative XP.
var CurrentXP = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ascend",
	Name:      "xp_current",
	Help:      "Current cumulative XP.",
})

// BadgesUnlocked tracks badge unlocks.
var BadgesUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
})

// AbstinenceStreak tracks the current abstinence streak in days.
var AbstinenceStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ascend",
	Name:      "abstinence_streak_days",
	Help:      "Current abstinence streak in days.",
})

// ─── Habits ─────────────────────────────────────────────────────────────────

// HabitToggles tracks habit check/uncheck operations.
var HabitToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "habit_toggles_total",
	Help:      "Total habit toggles by direction.",
}, []string{"direction"})

// ─── Rewards ────────────────────────────────────────────────────────────────

// RewardDraws tracks weighted reward draws by rarity of the outcome.
var RewardDraws = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "reward_draws_total",
	Help:      "Total reward draws by rarity.",
}, []string{"rarity"})

// ─── AI Collaborator ────────────────────────────────────────────────────────

// AILatency tracks AI request duration in seconds by operation.
var AILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ascend",
	Name:      "ai_latency_seconds",
	Help:      "AI request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"op"})

// AIErrors tracks failed AI requests by operation.
var AIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "ai_errors_total",
	Help:      "Total failed AI requests.",
}, []string{"op"})

// ─── Notifications ──────────────────────────────────────────────────────────

// NotificationsQueued tracks notifications accepted by the policy.
var NotificationsQueued = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ascend",
	Name:      "notifications_total",
	Help:      "Total notifications by type.",
}, []string{"type"})

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatheredNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestProgressionMetrics(t *testing.T) {
	LogsSubmitted.Inc()
	XPEarned.WithLabelValues("daily_log").Add(50)
	XPPenalties.Inc()
	CurrentLevel.Set(2)
	CurrentXP.Set(120)
	BadgesUnlocked.Add(1)
	AbstinenceStreak.Set(7)

	names := gatheredNames(t)
	expected := []string{
		"ascend_logs_submitted_total",
		"ascend_xp_earned_total",
		"ascend_xp_penalties_total",
		"ascend_level_current",
		"ascend_xp_current",
		"ascend_badges_unlocked_total",
		"ascend_abstinence_streak_days",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestHabitAndRewardMetrics(t *testing.T) {
	HabitToggles.WithLabelValues("check").Inc()
	HabitToggles.WithLabelValues("uncheck").Inc()
	RewardDraws.WithLabelValues("common").Inc()
	RewardDraws.WithLabelValues("legendary").Inc()

	names := gatheredNames(t)
	if !names["ascend_habit_toggles_total"] {
		t.Error("ascend_habit_toggles_total not found")
	}
	if !names["ascend_reward_draws_total"] {
		t.Error("ascend_reward_draws_total not found")
	}
}

func TestAIMetrics(t *testing.T) {
	AILatency.WithLabelValues("quote").Observe(0.8)
	AIErrors.WithLabelValues("physique").Inc()

	names := gatheredNames(t)
	if !names["ascend_ai_latency_seconds"] {
		t.Error("ascend_ai_latency_seconds not found")
	}
	if !names["ascend_ai_errors_total"] {
		t.Error("ascend_ai_errors_total not found")
	}
}

func TestErrorAndNotificationMetrics(t *testing.T) {
	LogSubmitErrors.WithLabelValues("invalid_date").Inc()
	NotificationsQueued.WithLabelValues("level_up").Inc()

	names := gatheredNames(t)
	if !names["ascend_log_submit_errors_total"] {
		t.Error("ascend_log_submit_errors_total not found")
	}
	if !names["ascend_notifications_total"] {
		t.Error("ascend_notifications_total not found")
	}
}

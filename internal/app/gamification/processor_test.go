package gamification

import (
	"testing"

	"github.com/ascend-app/ascend/internal/domain"
)

func baseProfile() domain.UserProfile {
	return domain.UserProfile{XP: 0, Level: 1}
}

func TestProcess_FirstSubmission(t *testing.T) {
	log := domain.DailyLog{Date: "2026-01-10", StudyHours: 1.0, QuranPages: 5, Abstained: true}

	res := Process(baseProfile(), nil, log, nil, nil, 0, DefaultBadges())

	if res.EarnedXP != 50 {
		t.Errorf("earned %d, want 50", res.EarnedXP)
	}
	if res.XP != 50 {
		t.Errorf("total XP %d, want 50", res.XP)
	}
	if res.Level != 1 {
		t.Errorf("level %d, want 1", res.Level)
	}
	if !containsStr(res.NewBadges, "first-log") {
		t.Errorf("first submission should unlock first-log, got %v", res.NewBadges)
	}
}

func TestProcess_ResubmissionEarnsNothing(t *testing.T) {
	log := domain.DailyLog{Date: "2026-01-10", StudyHours: 1.0, Abstained: true}
	history := []domain.DailyLog{log}
	profile := domain.UserProfile{XP: 40, Level: 1, Badges: []string{"first-log"}}

	res := Process(profile, history, log, &log, nil, 0, DefaultBadges())

	if res.EarnedXP != 0 {
		t.Errorf("identical re-submission earned %d, want 0", res.EarnedXP)
	}
	if res.XP != 40 {
		t.Errorf("XP changed to %d on re-submission", res.XP)
	}
	if len(res.NewBadges) != 0 {
		t.Errorf("re-submission re-unlocked badges: %v", res.NewBadges)
	}
}

func TestProcess_EditEarnsDelta(t *testing.T) {
	prev := domain.DailyLog{Date: "2026-01-10", StudyHours: 1.0} // worth 20
	next := domain.DailyLog{Date: "2026-01-10", StudyHours: 2.0} // worth 40
	profile := domain.UserProfile{XP: 20, Level: 1, Badges: []string{"first-log"}}

	res := Process(profile, []domain.DailyLog{prev}, next, &prev, nil, 0, DefaultBadges())

	if res.EarnedXP != 20 {
		t.Errorf("edit delta earned %d, want 20", res.EarnedXP)
	}
}

func TestProcess_DownwardEditClampsToZero(t *testing.T) {
	prev := domain.DailyLog{Date: "2026-01-10", StudyHours: 2.0}
	next := domain.DailyLog{Date: "2026-01-10", StudyHours: 0.5}
	profile := domain.UserProfile{XP: 40, Level: 1, Badges: []string{"first-log"}}

	res := Process(profile, []domain.DailyLog{prev}, next, &prev, nil, 0, DefaultBadges())

	if res.EarnedXP != 0 {
		t.Errorf("downward edit earned %d, want 0 (no clawback)", res.EarnedXP)
	}
	if res.XP != 40 {
		t.Errorf("downward edit changed XP to %d", res.XP)
	}
}

func TestProcess_QuestPenalty(t *testing.T) {
	quest := &domain.UnexpectedQuest{Date: "2026-01-09", Description: "cold shower"}
	log := domain.DailyLog{Date: "2026-01-10", Abstained: true} // worth 20
	profile := domain.UserProfile{XP: 100, Level: 2, Badges: []string{"first-log"}}

	res := Process(profile, nil, log, nil, quest, 0, DefaultBadges())

	if !res.PenaltyApplied {
		t.Fatal("expected penalty for incomplete quest")
	}
	if res.EarnedXP != 20+XPQuestPenalty {
		t.Errorf("earned %d, want %d", res.EarnedXP, 20+XPQuestPenalty)
	}
	if res.XP != 105 {
		t.Errorf("XP %d, want 105", res.XP)
	}
}

func TestProcess_CompletedQuestNoPenalty(t *testing.T) {
	quest := &domain.UnexpectedQuest{Date: "2026-01-09", Completed: true}
	log := domain.DailyLog{Date: "2026-01-10", Abstained: true}

	res := Process(baseProfile(), nil, log, nil, quest, 0, DefaultBadges())

	if res.PenaltyApplied {
		t.Error("completed quest must not apply a penalty")
	}
	if res.EarnedXP != 20 {
		t.Errorf("earned %d, want 20", res.EarnedXP)
	}
}

func TestProcess_PenaltyNeverGoesNegative(t *testing.T) {
	quest := &domain.UnexpectedQuest{Date: "2026-01-09"}
	log := domain.DailyLog{Date: "2026-01-10"} // worth 0

	res := Process(baseProfile(), nil, log, nil, quest, 0, DefaultBadges())

	if res.XP != 0 {
		t.Errorf("XP went to %d, floor is 0", res.XP)
	}
	if res.Level != 1 {
		t.Errorf("level %d, want 1", res.Level)
	}
}

func TestProcess_LevelUp(t *testing.T) {
	profile := domain.UserProfile{XP: 90, Level: 1, Badges: []string{"first-log"}}
	log := domain.DailyLog{Date: "2026-01-10", Abstained: true} // +20 crosses 100

	res := Process(profile, nil, log, nil, nil, 0, DefaultBadges())

	if !res.LeveledUp || res.Level != 2 {
		t.Errorf("expected level up to 2, got level %d (leveledUp=%v)", res.Level, res.LeveledUp)
	}
}

func TestProcess_StreakBadge(t *testing.T) {
	var history []domain.DailyLog
	dates := []string{
		"2026-01-04", "2026-01-05", "2026-01-06",
		"2026-01-07", "2026-01-08", "2026-01-09",
	}
	for _, d := range dates {
		history = append(history, abstained(d))
	}
	newLog := abstained("2026-01-10") // seventh consecutive day
	profile := domain.UserProfile{XP: 120, Level: 2, Badges: []string{"first-log"}}

	res := Process(profile, history, newLog, nil, nil, 0, DefaultBadges())

	if !containsStr(res.NewBadges, "7-day-streak") {
		t.Errorf("seventh day should unlock 7-day-streak, got %v", res.NewBadges)
	}
}

func TestBuildBadgeContext_Totals(t *testing.T) {
	history := []domain.DailyLog{
		{Date: "2026-01-08", StudyHours: 4, QuranPages: 60},
		{Date: "2026-01-09", StudyHours: 6, QuranPages: 40},
	}
	ctx := BuildBadgeContext(history, history[1])

	if ctx.TotalLogs != 2 {
		t.Errorf("TotalLogs = %d, want 2", ctx.TotalLogs)
	}
	if ctx.TotalStudy != 10 {
		t.Errorf("TotalStudy = %v, want 10", ctx.TotalStudy)
	}
	if ctx.TotalQuran != 100 {
		t.Errorf("TotalQuran = %d, want 100", ctx.TotalQuran)
	}
}

func TestEvaluateBadges_SkipsUnlocked(t *testing.T) {
	ctx := domain.BadgeContext{TotalLogs: 1}
	unlocked := map[string]bool{"first-log": true}

	newly := EvaluateBadges(DefaultBadges(), unlocked, ctx)
	if containsStr(newly, "first-log") {
		t.Error("already-unlocked badge re-reported")
	}
}

func TestMergeLog_ReplacesAndInserts(t *testing.T) {
	history := []domain.DailyLog{
		{Date: "2026-01-08"},
		{Date: "2026-01-10"},
	}

	replaced := mergeLog(history, domain.DailyLog{Date: "2026-01-10", StudyHours: 1})
	if len(replaced) != 2 || replaced[1].StudyHours != 1 {
		t.Errorf("replace failed: %+v", replaced)
	}

	inserted := mergeLog(history, domain.DailyLog{Date: "2026-01-09"})
	if len(inserted) != 3 || inserted[1].Date != "2026-01-09" {
		t.Errorf("ordered insert failed: %+v", inserted)
	}

	appended := mergeLog(history, domain.DailyLog{Date: "2026-01-11"})
	if len(appended) != 3 || appended[2].Date != "2026-01-11" {
		t.Errorf("append failed: %+v", appended)
	}
}

func containsStr(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

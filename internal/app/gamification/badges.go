package gamification

import "github.com/ascend-app/ascend/internal/domain"

// DefaultBadges returns the badge catalog. Each badge is a predicate
// over the submitted history snapshot; new badges slot in here without
// touching the evaluator or the existing predicates. Unlocks are
// permanent: an unlocked badge is never re-evaluated or revoked.
func DefaultBadges() []domain.BadgeDef {
	return []domain.BadgeDef{
		{
			ID: "first-log", Name: "First Step",
			Description: "Submit your very first daily log.",
			Predicate:   func(c domain.BadgeContext) bool { return c.TotalLogs == 1 },
		},
		{
			ID: "7-day-streak", Name: "Week of Will",
			Description: "Seven consecutive abstinent days with no gaps.",
			Predicate: func(c domain.BadgeContext) bool {
				return c.NewLog.Abstained && c.DailyStreak >= 7
			},
		},
		{
			ID: "30-day-streak", Name: "Iron Month",
			Description: "Thirty consecutive abstinent days.",
			Predicate: func(c domain.BadgeContext) bool {
				return c.NewLog.Abstained && c.DailyStreak >= 30
			},
		},
		{
			ID: "scholar-1", Name: "Scholar",
			Description: "Accumulate 10 hours of study.",
			Predicate:   func(c domain.BadgeContext) bool { return c.TotalStudy >= 10 },
		},
		{
			ID: "scholar-2", Name: "Sage",
			Description: "Accumulate 50 hours of study.",
			Predicate:   func(c domain.BadgeContext) bool { return c.TotalStudy >= 50 },
		},
		{
			ID: "quran-1", Name: "Reciter",
			Description: "Read 100 pages in total.",
			Predicate:   func(c domain.BadgeContext) bool { return c.TotalQuran >= 100 },
		},
		{
			ID: "quran-2", Name: "Hafiz Path",
			Description: "Read 500 pages in total.",
			Predicate:   func(c domain.BadgeContext) bool { return c.TotalQuran >= 500 },
		},
	}
}

// BuildBadgeContext assembles the snapshot predicates run against.
// history must be ascending by date with the new log already merged in.
func BuildBadgeContext(history []domain.DailyLog, newLog domain.DailyLog) domain.BadgeContext {
	ctx := domain.BadgeContext{
		Logs:      history,
		NewLog:    newLog,
		TotalLogs: len(history),
	}
	for _, l := range history {
		ctx.TotalStudy += l.StudyHours
		ctx.TotalQuran += l.QuranPages
	}
	ctx.DailyStreak = AbstinenceStreak(history, newLog.Date)
	return ctx
}

// EvaluateBadges returns the ids of badges newly unlocked by this
// submission. Already-unlocked badges are skipped, never re-checked.
func EvaluateBadges(defs []domain.BadgeDef, unlocked map[string]bool, ctx domain.BadgeContext) []string {
	var newly []string
	for _, def := range defs {
		if unlocked[def.ID] {
			continue
		}
		if def.Predicate != nil && def.Predicate(ctx) {
			newly = append(newly, def.ID)
		}
	}
	return newly
}

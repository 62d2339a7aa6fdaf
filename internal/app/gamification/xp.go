package gamification

import "github.com/ascend-app/ascend/internal/domain"

// XP accrual constants. All bonuses are additive and independent.
// Study XP is proportional: one block per 30 minutes logged.
const (
	XPPerStudyBlock  = 10 // per 30 minutes of study
	XPPerQuranPage   = 2
	XPExpenseLogged  = 5 // flat, once per day regardless of amount
	XPAbstained      = 20
	XPCaloriesLogged = 5 // flat, first meal of the day only
	XPPerCustomHabit = 5 // per completed habit, not binary

	// XPQuestPenalty applies once when yesterday's unexpected quest was
	// left incomplete. Negative by definition.
	XPQuestPenalty = -15
)

// EarnedXP computes the total XP a day's log is worth. Missing or
// zero-valued fields simply contribute nothing; the function is total
// over any DailyLog.
//
// Accrual is delta-based at the call sites: re-submitting a day awards
// only the difference against what that day already earned, which keeps
// flat per-day bonuses single-count under at-least-once delivery.
func EarnedXP(l domain.DailyLog) int64 {
	var xp int64

	if l.StudyHours > 0 {
		xp += int64(l.StudyHours / 0.5 * XPPerStudyBlock)
	}
	if l.QuranPages > 0 {
		xp += int64(l.QuranPages) * XPPerQuranPage
	}
	if l.Expenses > 0 {
		xp += XPExpenseLogged
	}
	if l.Abstained {
		xp += XPAbstained
	}
	if l.CaloriesLogged {
		xp += XPCaloriesLogged
	}
	xp += int64(l.CompletedHabitCount()) * XPPerCustomHabit

	return xp
}

package gamification

import (
	"github.com/ascend-app/ascend/internal/domain"
)

// Result is the outcome of processing one day's submission.
type Result struct {
	XP             int64    `json:"xp"`
	Level          int      `json:"level"`
	LeveledUp      bool     `json:"leveled_up"`
	EarnedXP       int64    `json:"earned_xp"`
	NewBadges      []string `json:"new_badges,omitempty"`
	PenaltyApplied bool     `json:"penalty_applied"`
}

// Process orchestrates one submission without side effects: XP delta,
// quest penalty, level recompute, badge evaluation. The caller owns the
// transactional write of the merged log and the updated profile, and is
// responsible for marking pendingQuest completed when PenaltyApplied is
// true, in the same transaction, so a retry can never penalize twice.
//
// prevLog is the existing record for newLog.Date (nil if first write of
// the day). Accrual is the non-negative delta against what that day
// already earned, so an identical re-submission earns nothing.
// extraXP carries flat XP from non-daily-log events (e.g. reward
// milestones); it bypasses the delta rule.
func Process(
	profile domain.UserProfile,
	history []domain.DailyLog,
	newLog domain.DailyLog,
	prevLog *domain.DailyLog,
	pendingQuest *domain.UnexpectedQuest,
	extraXP int64,
	defs []domain.BadgeDef,
) Result {
	earned := EarnedXP(newLog)
	if prevLog != nil {
		earned -= EarnedXP(*prevLog)
	}
	if earned < 0 {
		earned = 0 // edits never claw XP back; only penalties reduce it
	}
	earned += extraXP

	penalty := false
	if pendingQuest != nil && !pendingQuest.Completed {
		earned += XPQuestPenalty
		penalty = true
	}

	newXP := profile.XP + earned
	if newXP < 0 {
		newXP = 0
	}
	newLevel := LevelForXP(newXP)

	merged := mergeLog(history, newLog)
	unlocked := make(map[string]bool, len(profile.Badges))
	for _, id := range profile.Badges {
		unlocked[id] = true
	}
	ctx := BuildBadgeContext(merged, newLog)
	newBadges := EvaluateBadges(defs, unlocked, ctx)

	return Result{
		XP:             newXP,
		Level:          newLevel,
		LeveledUp:      newLevel > profile.Level,
		EarnedXP:       earned,
		NewBadges:      newBadges,
		PenaltyApplied: penalty,
	}
}

// mergeLog returns history with newLog replacing (or appended after) its
// date's entry, preserving ascending order.
func mergeLog(history []domain.DailyLog, newLog domain.DailyLog) []domain.DailyLog {
	merged := make([]domain.DailyLog, 0, len(history)+1)
	placed := false
	for _, l := range history {
		switch {
		case l.Date == newLog.Date:
			merged = append(merged, newLog)
			placed = true
		case !placed && l.Date > newLog.Date:
			merged = append(merged, newLog, l)
			placed = true
		default:
			merged = append(merged, l)
		}
	}
	if !placed {
		merged = append(merged, newLog)
	}
	return merged
}

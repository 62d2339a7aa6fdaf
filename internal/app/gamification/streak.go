package gamification

import "github.com/ascend-app/ascend/internal/domain"

// maxStreakLookback bounds how many days of history a streak scan
// consults. Streaks are computed on demand, never stored.
const maxStreakLookback = 100

// AbstinenceStreak derives the current consecutive-day abstinence streak
// ending at today. Logs may be in any order; only the most recent
// maxStreakLookback days are consulted.
//
// If today has a log, the streak starts there: an abstained=false entry
// today breaks the streak immediately regardless of history. If today is
// not yet logged, the walk starts at yesterday. Each step back requires
// a log to exist for exactly the expected date with abstained=true; a
// gap or a false flag stops the walk. Gaps are never skipped.
func AbstinenceStreak(logs []domain.DailyLog, today string) int {
	byDate := make(map[string]domain.DailyLog, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l
	}

	streak := 0
	expected := today

	if l, ok := byDate[today]; ok {
		if !l.Abstained {
			return 0 // broken today overrides any prior history
		}
		streak = 1
	}
	expected = domain.PrevDate(expected)

	for i := 0; i < maxStreakLookback; i++ {
		l, ok := byDate[expected]
		if !ok || !l.Abstained {
			break
		}
		streak++
		expected = domain.PrevDate(expected)
	}

	return streak
}

package domain

import "time"

// UserProfile is the long-lived gamification state. Level is always
// derived from XP; the two are written together in one transaction and
// must never be persisted out of sync. Badges are append-only.
type UserProfile struct {
	XP        int64     `json:"xp"`
	Level     int       `json:"level"`
	Badges    []string  `json:"badges"`
	CreatedAt time.Time `json:"created_at"`
}

// HasBadge reports whether the badge id has been unlocked.
func (p UserProfile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Habit is a recurring activity the user tracks. Streak state lives on
// the habit itself; per-day completion is a separate HabitEntry record,
// which is what makes same-day undo computable.
type Habit struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon"`
	CreatedAt     time.Time `json:"created_at"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastCompleted string    `json:"last_completed,omitempty"` // ISO date, "" if never
}

// HabitEntry marks a habit completed on a date. The (date, habit) pair
// is unique; checking twice on the same day is a no-op.
type HabitEntry struct {
	Date    string `json:"date"`
	HabitID string `json:"habit_id"`
}

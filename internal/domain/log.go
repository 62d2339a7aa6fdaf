// Package domain holds the pure types of the Ascend core.
// Nothing in here touches storage or the network; services in
// internal/app operate on these values and the sqlite layer persists them.
package domain

import "time"

// DateLayout is the canonical ISO date format used as the natural key
// for daily records. One DailyLog exists per date, merge-on-write.
const DateLayout = "2006-01-02"

// DateOf formats a time as a canonical log date.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// PrevDate returns the calendar day before the given ISO date.
// Malformed input yields an empty string.
func PrevDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// ValidDate reports whether s is a well-formed ISO log date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// DailyLog aggregates one calendar day's activity. Later submissions for
// the same date merge into the existing record; the log is not append-only.
// Numeric fields left unset are treated as zero throughout the core.
type DailyLog struct {
	Date           string          `json:"date"`
	StudyHours     float64         `json:"study_hours"`
	QuranPages     int             `json:"quran_pages"`
	Expenses       float64         `json:"expenses"`
	Abstained      bool            `json:"abstained"`
	CustomHabits   map[string]bool `json:"custom_habits,omitempty"`
	CaloriesLogged bool            `json:"calories_logged"`
	WeightKg       float64         `json:"weight_kg,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CompletedHabitCount returns how many custom habits were checked off.
func (l DailyLog) CompletedHabitCount() int {
	n := 0
	for _, done := range l.CustomHabits {
		if done {
			n++
		}
	}
	return n
}

// Meal is a single recorded meal. The first meal of a date flips the
// CaloriesLogged flag on that date's log; further meals never re-award.
type Meal struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	LoggedAt time.Time `json:"logged_at"`
}

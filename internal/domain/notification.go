package domain

import "time"

// NotificationType categorizes motivational messages.
type NotificationType string

const (
	NotifyLevelUp      NotificationType = "level_up"
	NotifyBadge        NotificationType = "badge"
	NotifyHabitStreak  NotificationType = "habit_streak"
	NotifyReward       NotificationType = "reward"
	NotifyDailySummary NotificationType = "daily_summary"
)

// Notification is a user-facing message. Delivery is fire-and-forget:
// the emitting transaction commits first, then the message is queued.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs how often notifications are surfaced.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy allows a handful of messages per day and
// keeps the night silent.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  5,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}

package domain

import "time"

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeContext is the snapshot a badge predicate is evaluated against:
// the full log history in ascending date order with the just-submitted
// log already merged in, plus precomputed running totals.
type BadgeContext struct {
	Logs        []DailyLog // ascending by date, includes NewLog
	NewLog      DailyLog
	TotalLogs   int
	TotalStudy  float64
	TotalQuran  int
	DailyStreak int // consecutive abstained days ending at NewLog.Date
}

// BadgeDef defines a single badge. Unlock state is per-user; the
// definition itself is immutable catalog data loaded at process start.
type BadgeDef struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Predicate   func(BadgeContext) bool `json:"-"`
}

// ─── Reward Types ───────────────────────────────────────────────────────────

// RewardType categorizes what a reward unlocks.
type RewardType string

const (
	RewardTitle RewardType = "title"
	RewardBadge RewardType = "badge"
	RewardQuote RewardType = "quote"
)

// Rarity drives the weighted draw: common 70, rare 25, legendary 5.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Weight returns the draw weight for this rarity.
func (r Rarity) Weight() int {
	switch r {
	case RarityLegendary:
		return 5
	case RarityRare:
		return 25
	default:
		return 70
	}
}

// Reward is a static catalog entry. Granted rewards are never revoked.
type Reward struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        RewardType `json:"type"`
	Rarity      Rarity     `json:"rarity"`
}

// UserReward records a grant. Append-only.
type UserReward struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// ─── Quest Types ────────────────────────────────────────────────────────────

// UnexpectedQuest is a one-per-day side challenge. If yesterday's quest
// exists and was left incomplete, a fixed XP penalty applies exactly once;
// resolving marks the quest completed so a retried transaction cannot
// apply the penalty twice.
type UnexpectedQuest struct {
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

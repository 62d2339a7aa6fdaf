package gamification

import (
	"math/rand"

	"github.com/ascend-app/ascend/internal/domain"
)

// DefaultRewards returns the static reward catalog. Per-user unlock
// state lives in the store, never on these entries.
func DefaultRewards() []domain.Reward {
	return []domain.Reward{
		{ID: "title-consistent", Name: "The Consistent", Description: "A title for those who show up.", Type: domain.RewardTitle, Rarity: domain.RarityCommon},
		{ID: "title-early-riser", Name: "Early Riser", Description: "Dawn belongs to you.", Type: domain.RewardTitle, Rarity: domain.RarityCommon},
		{ID: "quote-discipline", Name: "Discipline Quote", Description: "\"Discipline is choosing what you want most.\"", Type: domain.RewardQuote, Rarity: domain.RarityCommon},
		{ID: "quote-mountain", Name: "Mountain Quote", Description: "\"The summit is just the halfway point.\"", Type: domain.RewardQuote, Rarity: domain.RarityCommon},
		{ID: "badge-silver-flame", Name: "Silver Flame", Description: "A rare mark of sustained effort.", Type: domain.RewardBadge, Rarity: domain.RarityRare},
		{ID: "title-unbroken", Name: "The Unbroken", Description: "Rare title for unbroken streaks.", Type: domain.RewardTitle, Rarity: domain.RarityRare},
		{ID: "badge-golden-dawn", Name: "Golden Dawn", Description: "Legendary badge of transformation.", Type: domain.RewardBadge, Rarity: domain.RarityLegendary},
	}
}

// DrawReward selects one unclaimed reward by weighted random sampling:
// the candidate pool is flattened into Weight() copies of each reward
// and drawn uniformly (common 70, rare 25, legendary 5). Returns nil
// when no unclaimed rewards remain; that is not an error.
func DrawReward(unclaimed []domain.Reward, rng *rand.Rand) *domain.Reward {
	if len(unclaimed) == 0 {
		return nil
	}

	var pool []int // indexes into unclaimed, repeated by weight
	for i, r := range unclaimed {
		w := r.Rarity.Weight()
		for j := 0; j < w; j++ {
			pool = append(pool, i)
		}
	}

	pick := unclaimed[pool[rng.Intn(len(pool))]]
	return &pick
}

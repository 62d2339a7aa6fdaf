// Package gamification implements the Ascend progression engine:
// the level curve, XP accrual, badge evaluation, streak accounting,
// reward draws, and the processor that ties a day's submission together.
package gamification

import "math/big"

// Level curve constants. Each level's step is floor(100 * 1.2^(i-1));
// the threshold for a level is the cumulative sum of all prior steps.
const (
	baseXP   = 100
	maxLevel = 200
)

// levelThresholds[L] is the cumulative XP required to reach level L.
// Steps are computed in exact integer arithmetic (12^k / 10^k floor);
// floating-point pow drifts enough by the high levels to move threshold
// boundaries, which would break the round-trip contract.
var levelThresholds = buildThresholds()

func buildThresholds() []int64 {
	th := make([]int64, maxLevel+1)

	num := big.NewInt(baseXP) // step numerator: 100 * 12^(i-1)
	den := big.NewInt(1)      // step denominator: 10^(i-1)
	twelve := big.NewInt(12)
	ten := big.NewInt(10)
	step := new(big.Int)

	var cum int64
	for i := 1; i < maxLevel; i++ {
		step.Quo(num, den)
		cum += step.Int64() // fits int64 comfortably through level 200
		th[i+1] = cum
		num.Mul(num, twelve)
		den.Mul(den, ten)
	}
	return th
}

// XPForLevel returns the cumulative XP required to reach a given level.
// Level 1 (and below) requires 0. Levels above the cap share the cap's
// threshold.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > maxLevel {
		level = maxLevel
	}
	return levelThresholds[level]
}

// LevelForXP returns the largest level whose threshold the XP meets.
// Always at least 1; capped at maxLevel.
func LevelForXP(xp int64) int {
	if xp <= 0 {
		return 1
	}
	lo, hi := 1, maxLevel
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if levelThresholds[mid] <= xp {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// XPToNextLevel returns XP remaining from the given total until the next
// level, or 0 at the cap.
func XPToNextLevel(xp int64) int64 {
	level := LevelForXP(xp)
	if level >= maxLevel {
		return 0
	}
	remaining := XPForLevel(level+1) - xp
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// ProgressPct returns progress toward the next level (0.0–100.0).
func ProgressPct(xp int64) float64 {
	level := LevelForXP(xp)
	if level >= maxLevel {
		return 100.0
	}
	floor := XPForLevel(level)
	span := XPForLevel(level+1) - floor
	if span <= 0 {
		return 100.0
	}
	pct := float64(xp-floor) / float64(span) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure, with no infrastructure dependency.

var (
	// Profile errors
	ErrProfileNotFound = errors.New("user profile not initialized")
	ErrProfileExists   = errors.New("user profile already initialized")

	// Log errors
	ErrInvalidDate  = errors.New("date must be an ISO YYYY-MM-DD calendar date")
	ErrLogNotFound  = errors.New("no daily log for that date")
	ErrNegativeStat = errors.New("activity values must be non-negative")

	// Habit errors
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitName     = errors.New("habit name is required")

	// Quest errors
	ErrQuestExists = errors.New("a quest already exists for that date")

	// Reward errors
	ErrNoRewards = errors.New("no unclaimed rewards remain")
)

// Package habit implements per-habit daily completion tracking.
// Streak state lives on the habit row; each day's completion set is a
// separate record, which is what makes same-day undo well-defined.
package habit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// Notifier receives fire-and-forget streak messages after a commit.
type Notifier interface {
	Emit(domain.Notification)
}

// Service manages habits and the check/uncheck state machine. Every
// toggle runs its reads and writes in one transaction so a rapid
// double-click cannot produce a lost update.
type Service struct {
	db     *sqlite.DB
	notify Notifier
}

// NewService creates a habit service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// SetNotifier wires the fire-and-forget message sink.
func (s *Service) SetNotifier(n Notifier) { s.notify = n }

// Create adds a habit with zeroed streak state.
func (s *Service) Create(name, icon string) (*domain.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrHabitName
	}
	h := domain.Habit{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      icon,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertHabit(h); err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return &h, nil
}

// List returns all habits.
func (s *Service) List() ([]domain.Habit, error) {
	return s.db.ListHabits()
}

// Get returns one habit by id.
func (s *Service) Get(id string) (*domain.Habit, error) {
	return s.db.GetHabit(id)
}

// Delete removes a habit and its completion history.
func (s *Service) Delete(id string) error {
	return s.db.DeleteHabit(id)
}

// Check marks a habit completed today. Re-checking an already-completed
// day is a no-op. If yesterday was completed the streak extends,
// otherwise it restarts at 1; extending past the prior streak emits a
// motivational message after the transaction commits.
func (s *Service) Check(id, today string) (*domain.Habit, error) {
	if !domain.ValidDate(today) {
		return nil, domain.ErrInvalidDate
	}

	var updated *domain.Habit
	var extended bool

	err := s.db.WithTx(func(tx *sqlite.Tx) error {
		h, err := tx.GetHabit(id)
		if err != nil {
			return err
		}

		added, err := tx.AddHabitEntry(today, id)
		if err != nil {
			return fmt.Errorf("add entry: %w", err)
		}
		if !added {
			updated = h // already completed today, no-op
			return nil
		}

		yesterdayDone, err := tx.HasHabitEntry(domain.PrevDate(today), id)
		if err != nil {
			return err
		}

		prior := h.CurrentStreak
		if yesterdayDone {
			h.CurrentStreak++
		} else {
			h.CurrentStreak = 1
		}
		if h.CurrentStreak > h.LongestStreak {
			h.LongestStreak = h.CurrentStreak
		}
		h.LastCompleted = today

		if err := tx.UpdateHabitStreak(h.ID, h.CurrentStreak, h.LongestStreak, h.LastCompleted); err != nil {
			return err
		}

		extended = h.CurrentStreak > prior && h.CurrentStreak > 1
		updated = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	if extended && s.notify != nil {
		s.notify.Emit(domain.Notification{
			Type:  domain.NotifyHabitStreak,
			Title: "Streak extended",
			Body:  fmt.Sprintf("%s: %d days in a row. Keep going.", updated.Name, updated.CurrentStreak),
		})
	}
	return updated, nil
}

// Uncheck removes today's completion. If the streak was extended today
// it rolls back one step: to yesterday if yesterday was completed,
// otherwise to zero.
func (s *Service) Uncheck(id, today string) (*domain.Habit, error) {
	if !domain.ValidDate(today) {
		return nil, domain.ErrInvalidDate
	}

	var updated *domain.Habit
	err := s.db.WithTx(func(tx *sqlite.Tx) error {
		h, err := tx.GetHabit(id)
		if err != nil {
			return err
		}

		removed, err := tx.RemoveHabitEntry(today, id)
		if err != nil {
			return fmt.Errorf("remove entry: %w", err)
		}
		if !removed || h.LastCompleted != today {
			updated = h
			return nil
		}

		yesterdayDone, err := tx.HasHabitEntry(domain.PrevDate(today), id)
		if err != nil {
			return err
		}

		if yesterdayDone {
			h.CurrentStreak--
			if h.CurrentStreak < 0 {
				h.CurrentStreak = 0
			}
			h.LastCompleted = domain.PrevDate(today)
		} else {
			h.CurrentStreak = 0
			h.LastCompleted = ""
		}

		if err := tx.UpdateHabitStreak(h.ID, h.CurrentStreak, h.LongestStreak, h.LastCompleted); err != nil {
			return err
		}
		updated = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CompletedToday returns the set of habit ids completed on a date.
func (s *Service) CompletedToday(date string) (map[string]bool, error) {
	entries, err := s.db.ListHabitEntries(date)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(entries))
	for _, e := range entries {
		done[e.HabitID] = true
	}
	return done, nil
}

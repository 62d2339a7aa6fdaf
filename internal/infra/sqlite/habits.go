package sqlite

import (
	"database/sql"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Habits ─────────────────────────────────────────────────────────────────

// InsertHabit creates a new habit with zeroed streak state.
func (s *Store) InsertHabit(h domain.Habit) error {
	_, err := s.q.Exec(
		`INSERT INTO habits (id, name, icon, created_at, current_streak, longest_streak, last_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Icon, h.CreatedAt.Unix(),
		h.CurrentStreak, h.LongestStreak, h.LastCompleted,
	)
	return err
}

// GetHabit retrieves a habit by id. Returns domain.ErrHabitNotFound if missing.
func (s *Store) GetHabit(id string) (*domain.Habit, error) {
	row := s.q.QueryRow(
		`SELECT id, name, icon, created_at, current_streak, longest_streak, last_completed
		 FROM habits WHERE id = ?`, id,
	)
	h, err := scanHabit(row)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrHabitNotFound
	}
	return h, nil
}

// ListHabits returns all habits ordered by creation time.
func (s *Store) ListHabits() ([]domain.Habit, error) {
	rows, err := s.q.Query(
		`SELECT id, name, icon, created_at, current_streak, longest_streak, last_completed
		 FROM habits ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// UpdateHabitStreak writes a habit's streak state after a toggle.
func (s *Store) UpdateHabitStreak(id string, current, longest int, lastCompleted string) error {
	result, err := s.q.Exec(
		`UPDATE habits SET current_streak = ?, longest_streak = ?, last_completed = ? WHERE id = ?`,
		current, longest, lastCompleted, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

// DeleteHabit removes a habit and its completion entries.
func (s *Store) DeleteHabit(id string) error {
	result, err := s.q.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrHabitNotFound
	}
	_, err = s.q.Exec(`DELETE FROM habit_entries WHERE habit_id = ?`, id)
	return err
}

// ─── Habit Entries ──────────────────────────────────────────────────────────

// AddHabitEntry marks a habit completed on a date.
// Returns false if the entry already existed (re-check is a no-op).
func (s *Store) AddHabitEntry(date, habitID string) (bool, error) {
	result, err := s.q.Exec(
		`INSERT OR IGNORE INTO habit_entries (date, habit_id) VALUES (?, ?)`,
		date, habitID,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// RemoveHabitEntry clears a habit's completion for a date.
// Returns false if there was nothing to remove.
func (s *Store) RemoveHabitEntry(date, habitID string) (bool, error) {
	result, err := s.q.Exec(
		`DELETE FROM habit_entries WHERE date = ? AND habit_id = ?`,
		date, habitID,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// HasHabitEntry reports whether a habit was completed on a date.
func (s *Store) HasHabitEntry(date, habitID string) (bool, error) {
	var count int
	err := s.q.QueryRow(
		`SELECT COUNT(*) FROM habit_entries WHERE date = ? AND habit_id = ?`,
		date, habitID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListHabitEntries returns the completion set for a date.
func (s *Store) ListHabitEntries(date string) ([]domain.HabitEntry, error) {
	rows, err := s.q.Query(
		`SELECT date, habit_id FROM habit_entries WHERE date = ? ORDER BY habit_id ASC`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HabitEntry
	for rows.Next() {
		var e domain.HabitEntry
		if err := rows.Scan(&e.Date, &e.HabitID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanHabit(sc scanner) (*domain.Habit, error) {
	var h domain.Habit
	var createdAt int64
	err := sc.Scan(&h.ID, &h.Name, &h.Icon, &createdAt,
		&h.CurrentStreak, &h.LongestStreak, &h.LastCompleted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	h.CreatedAt = time.Unix(createdAt, 0)
	return &h, nil
}

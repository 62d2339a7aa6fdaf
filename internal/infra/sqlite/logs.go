package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Daily Logs ─────────────────────────────────────────────────────────────

// UpsertDailyLog merges a log into its date's row. The date is the
// natural key; a second submission for the same date overwrites fields
// rather than appending a record.
func (s *Store) UpsertDailyLog(l domain.DailyLog) error {
	habits, err := json.Marshal(l.CustomHabits)
	if err != nil {
		return fmt.Errorf("encode custom habits: %w", err)
	}
	if l.CustomHabits == nil {
		habits = []byte("{}")
	}

	_, err = s.q.Exec(
		`INSERT INTO daily_logs (date, study_hours, quran_pages, expenses, abstained, custom_habits, calories_logged, weight_kg, notes, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			study_hours=excluded.study_hours,
			quran_pages=excluded.quran_pages,
			expenses=excluded.expenses,
			abstained=excluded.abstained,
			custom_habits=excluded.custom_habits,
			calories_logged=excluded.calories_logged,
			weight_kg=excluded.weight_kg,
			notes=excluded.notes,
			updated_at=excluded.updated_at`,
		l.Date, l.StudyHours, l.QuranPages, l.Expenses, l.Abstained,
		string(habits), l.CaloriesLogged, l.WeightKg, l.Notes, time.Now().Unix(),
	)
	return err
}

// GetDailyLog retrieves the log for one date. Returns (nil, nil) when no
// log exists for that date.
func (s *Store) GetDailyLog(date string) (*domain.DailyLog, error) {
	row := s.q.QueryRow(
		`SELECT date, study_hours, quran_pages, expenses, abstained, custom_habits, calories_logged, weight_kg, notes, updated_at
		 FROM daily_logs WHERE date = ?`, date,
	)
	return scanDailyLog(row)
}

// ListDailyLogs returns up to limit logs ordered by date descending.
func (s *Store) ListDailyLogs(limit int) ([]domain.DailyLog, error) {
	rows, err := s.q.Query(
		`SELECT date, study_hours, quran_pages, expenses, abstained, custom_habits, calories_logged, weight_kg, notes, updated_at
		 FROM daily_logs ORDER BY date DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// ListDailyLogsAsc returns all logs ordered by date ascending, the order
// badge predicates consume history in.
func (s *Store) ListDailyLogsAsc() ([]domain.DailyLog, error) {
	rows, err := s.q.Query(
		`SELECT date, study_hours, quran_pages, expenses, abstained, custom_habits, calories_logged, weight_kg, notes, updated_at
		 FROM daily_logs ORDER BY date ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// CountDailyLogs returns the total number of logged days.
func (s *Store) CountDailyLogs() (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM daily_logs`).Scan(&count)
	return count, err
}

func scanDailyLog(sc scanner) (*domain.DailyLog, error) {
	var l domain.DailyLog
	var habits string
	var updatedAt int64

	err := sc.Scan(&l.Date, &l.StudyHours, &l.QuranPages, &l.Expenses,
		&l.Abstained, &habits, &l.CaloriesLogged, &l.WeightKg, &l.Notes, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	if habits != "" {
		if err := json.Unmarshal([]byte(habits), &l.CustomHabits); err != nil {
			return nil, fmt.Errorf("decode custom habits: %w", err)
		}
	}
	l.UpdatedAt = time.Unix(updatedAt, 0)
	return &l, nil
}

// ─── Meals ──────────────────────────────────────────────────────────────────

// InsertMeal records one meal.
func (s *Store) InsertMeal(m domain.Meal) error {
	_, err := s.q.Exec(
		`INSERT INTO meals (id, date, name, calories, logged_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Date, m.Name, m.Calories, m.LoggedAt.Unix(),
	)
	return err
}

// ListMeals returns all meals for a date in logged order.
func (s *Store) ListMeals(date string) ([]domain.Meal, error) {
	rows, err := s.q.Query(
		`SELECT id, date, name, calories, logged_at FROM meals WHERE date = ? ORDER BY logged_at ASC`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meals []domain.Meal
	for rows.Next() {
		var m domain.Meal
		var loggedAt int64
		if err := rows.Scan(&m.ID, &m.Date, &m.Name, &m.Calories, &loggedAt); err != nil {
			return nil, err
		}
		m.LoggedAt = time.Unix(loggedAt, 0)
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

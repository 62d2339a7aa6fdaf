// Package sqlite provides SQLite-based persistent storage for Ascend.
// Uses WAL mode for concurrent reads and crash-safe writes.
//
// Multi-row mutations (daily log merge + profile update, habit toggle +
// streak update) run inside a single transaction via WithTx, which is the
// read-modify-write contract the gamification core requires.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// querier is satisfied by both *sql.DB and *sql.Tx, so every data-access
// method works identically inside and outside a transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store carries the data-access methods. DB and Tx both embed it.
type Store struct {
	q querier
}

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	Store
	db *sql.DB
}

// Tx is a Store bound to an open transaction.
type Tx struct {
	Store
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{Store: Store{q: db}, db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// WithTx runs fn inside one transaction. A non-nil error from fn rolls
// everything back, so fn can be safely re-invoked on contention; the
// callers keep their logic pure and idempotent for exactly that reason.
func (d *DB) WithTx(fn func(*Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	t := &Tx{Store: Store{q: tx}}
	if err := fn(t); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Singleton gamification profile. Level is derived from XP and the
		// two are only ever written together.
		`CREATE TABLE IF NOT EXISTS profile (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			xp         INTEGER NOT NULL DEFAULT 0,
			level      INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL
		)`,

		// Unlocked badges are append-only. INSERT OR IGNORE keeps re-grants no-ops.
		`CREATE TABLE IF NOT EXISTS profile_badges (
			id          TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL
		)`,

		// One daily log per calendar date; later writes merge into the row.
		`CREATE TABLE IF NOT EXISTS daily_logs (
			date            TEXT PRIMARY KEY,
			study_hours     REAL    NOT NULL DEFAULT 0,
			quran_pages     INTEGER NOT NULL DEFAULT 0,
			expenses        REAL    NOT NULL DEFAULT 0,
			abstained       BOOLEAN NOT NULL DEFAULT 0,
			custom_habits   TEXT    NOT NULL DEFAULT '{}',
			calories_logged BOOLEAN NOT NULL DEFAULT 0,
			weight_kg       REAL    NOT NULL DEFAULT 0,
			notes           TEXT    NOT NULL DEFAULT '',
			updated_at      INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS meals (
			id        TEXT PRIMARY KEY,
			date      TEXT    NOT NULL,
			name      TEXT    NOT NULL DEFAULT '',
			calories  INTEGER NOT NULL DEFAULT 0,
			logged_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_meals_date ON meals(date)`,

		// Habits carry their own streak state (variant with per-day entries
		// below; this is what makes same-day undo computable).
		`CREATE TABLE IF NOT EXISTS habits (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			icon           TEXT NOT NULL DEFAULT '',
			created_at     INTEGER NOT NULL,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_completed TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS habit_entries (
			date     TEXT NOT NULL,
			habit_id TEXT NOT NULL,
			PRIMARY KEY (date, habit_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habit_entries_habit ON habit_entries(habit_id)`,

		// Granted rewards are append-only.
		`CREATE TABLE IF NOT EXISTS user_rewards (
			id          TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL
		)`,

		// Unexpected quests, one per date. Completed quests never re-apply
		// their penalty.
		`CREATE TABLE IF NOT EXISTS quests (
			date        TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			completed   BOOLEAN NOT NULL DEFAULT 0,
			created_at  INTEGER NOT NULL
		)`,

		// Motivational notification log
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_created ON notifications(created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

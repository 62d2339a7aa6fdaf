package sqlite

import (
	"database/sql"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Profile ────────────────────────────────────────────────────────────────

// InitProfile creates the singleton profile row with xp=0, level=1.
// Returns domain.ErrProfileExists if already initialized.
func (s *Store) InitProfile(at time.Time) error {
	result, err := s.q.Exec(
		`INSERT OR IGNORE INTO profile (id, xp, level, created_at) VALUES (1, 0, 1, ?)`,
		at.Unix(),
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrProfileExists
	}
	return nil
}

// GetProfile loads the profile and its badge set. A missing profile is
// an integrity error (domain.ErrProfileNotFound): gamification cannot
// run for an uninitialized user.
func (s *Store) GetProfile() (*domain.UserProfile, error) {
	var p domain.UserProfile
	var createdAt int64
	err := s.q.QueryRow(`SELECT xp, level, created_at FROM profile WHERE id = 1`).
		Scan(&p.XP, &p.Level, &createdAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = time.Unix(createdAt, 0)

	rows, err := s.q.Query(`SELECT id FROM profile_badges ORDER BY unlocked_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		p.Badges = append(p.Badges, id)
	}
	return &p, rows.Err()
}

// SaveProfile writes xp and level together. Callers must pass a level
// already derived from the xp value; the pair is never split.
func (s *Store) SaveProfile(xp int64, level int) error {
	result, err := s.q.Exec(`UPDATE profile SET xp = ?, level = ? WHERE id = 1`, xp, level)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// ─── Badges ─────────────────────────────────────────────────────────────────

// UnlockBadge records a badge as unlocked.
// Returns false if already unlocked (idempotent).
func (s *Store) UnlockBadge(id string, at time.Time) (bool, error) {
	result, err := s.q.Exec(
		`INSERT OR IGNORE INTO profile_badges (id, unlocked_at) VALUES (?, ?)`,
		id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly unlocked
}

// HasBadge checks whether a badge has been unlocked.
func (s *Store) HasBadge(id string) (bool, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM profile_badges WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package sqlite

import (
	"database/sql"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
)

// ─── Rewards ────────────────────────────────────────────────────────────────

// GrantReward records a reward as unlocked.
// Returns false if already granted (idempotent under retry).
func (s *Store) GrantReward(id string, at time.Time) (bool, error) {
	result, err := s.q.Exec(
		`INSERT OR IGNORE INTO user_rewards (id, unlocked_at) VALUES (?, ?)`,
		id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ListGrantedRewards returns all granted rewards, newest first.
func (s *Store) ListGrantedRewards() ([]domain.UserReward, error) {
	rows, err := s.q.Query(
		`SELECT id, unlocked_at FROM user_rewards ORDER BY unlocked_at DESC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.UserReward
	for rows.Next() {
		var r domain.UserReward
		var unlockedAt int64
		if err := rows.Scan(&r.ID, &unlockedAt); err != nil {
			return nil, err
		}
		r.UnlockedAt = time.Unix(unlockedAt, 0)
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

// ─── Unexpected Quests ──────────────────────────────────────────────────────

// InsertQuest creates a quest for a date. One quest per date.
func (s *Store) InsertQuest(q domain.UnexpectedQuest) error {
	result, err := s.q.Exec(
		`INSERT OR IGNORE INTO quests (date, description, completed, created_at)
		 VALUES (?, ?, ?, ?)`,
		q.Date, q.Description, q.Completed, q.CreatedAt.Unix(),
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrQuestExists
	}
	return nil
}

// GetQuest retrieves the quest for a date. Returns (nil, nil) if none.
func (s *Store) GetQuest(date string) (*domain.UnexpectedQuest, error) {
	var q domain.UnexpectedQuest
	var createdAt int64
	err := s.q.QueryRow(
		`SELECT date, description, completed, created_at FROM quests WHERE date = ?`, date,
	).Scan(&q.Date, &q.Description, &q.Completed, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	q.CreatedAt = time.Unix(createdAt, 0)
	return &q, nil
}

// CompleteQuest marks a quest resolved so its penalty can never apply twice.
func (s *Store) CompleteQuest(date string) error {
	_, err := s.q.Exec(`UPDATE quests SET completed = 1 WHERE date = ?`, date)
	return err
}

// ─── Notifications ──────────────────────────────────────────────────────────

// InsertNotification creates a new notification.
func (s *Store) InsertNotification(n domain.Notification) (int64, error) {
	result, err := s.q.Exec(
		`INSERT INTO notifications (type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?)`,
		string(n.Type), n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NotificationCountSince returns how many notifications were created at
// or after the given time.
func (s *Store) NotificationCountSince(since time.Time) (int, error) {
	var count int
	err := s.q.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`, since.Unix(),
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications.
func (s *Store) ListPendingNotifications(limit int) ([]domain.Notification, error) {
	rows, err := s.q.Query(
		`SELECT id, type, title, body, created_at, shown
		 FROM notifications WHERE shown = 0 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0)
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (s *Store) MarkNotificationShown(id int64) error {
	_, err := s.q.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	return err
}

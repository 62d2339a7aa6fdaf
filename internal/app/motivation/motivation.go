// Package motivation queues and throttles user-facing messages. It is
// the sink behind the Notifier interfaces elsewhere: emitters fire and
// forget, a single background goroutine persists and rate-limits.
package motivation

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/metrics"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

const queueSize = 64

// Service persists notifications subject to a daily cap and quiet
// hours. Emit never blocks the caller: a full queue drops the message,
// which is acceptable for motivational content.
type Service struct {
	db     *sqlite.DB
	policy domain.NotificationPolicy
	now    func() time.Time

	queue chan domain.Notification
	done  chan struct{}
	once  sync.Once
}

// NewService creates a notification service with the given policy.
func NewService(db *sqlite.DB, policy domain.NotificationPolicy) *Service {
	return &Service{
		db:     db,
		policy: policy,
		now:    time.Now,
		queue:  make(chan domain.Notification, queueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to drain and exit.
func (s *Service) Start(ctx context.Context) {
	go s.run(ctx)
}

// Stop shuts the queue down. Messages already queued are processed.
func (s *Service) Stop() {
	s.once.Do(func() { close(s.queue) })
	<-s.done
}

// Emit queues a notification without blocking. Satisfies the Notifier
// interfaces in the gamification and habit packages.
func (s *Service) Emit(n domain.Notification) {
	defer func() {
		// Send on a closed queue during shutdown is not worth a crash.
		_ = recover()
	}()
	select {
	case s.queue <- n:
	default:
		log.Printf("motivation: queue full, dropping %s", n.Type)
	}
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case n, ok := <-s.queue:
			if !ok {
				return
			}
			if err := s.deliver(n); err != nil {
				log.Printf("motivation: deliver: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// deliver persists one notification if the policy allows it.
func (s *Service) deliver(n domain.Notification) error {
	now := s.now()
	ok, reason, err := s.allowed(now)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("motivation: suppressed %s (%s)", n.Type, reason)
		return nil
	}

	n.CreatedAt = now
	n.Shown = false
	if _, err := s.db.InsertNotification(n); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}
	metrics.NotificationsQueued.WithLabelValues(string(n.Type)).Inc()
	return nil
}

// allowed checks quiet hours and the daily cap.
func (s *Service) allowed(now time.Time) (bool, string, error) {
	if inQuietHours(now, s.policy.QuietStart, s.policy.QuietEnd) {
		return false, "quiet hours", nil
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := s.db.NotificationCountSince(midnight)
	if err != nil {
		return false, "", err
	}
	if count >= s.policy.MaxPerDay {
		return false, "daily cap", nil
	}
	return true, "", nil
}

// Pending returns unshown notifications for the UI to surface.
func (s *Service) Pending(limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.db.ListPendingNotifications(limit)
}

// MarkShown acknowledges a delivered notification.
func (s *Service) MarkShown(id int64) error {
	return s.db.MarkNotificationShown(id)
}

// inQuietHours reports whether t falls in the [start, end) window.
// Windows may cross midnight ("22:00".."08:00").
func inQuietHours(t time.Time, start, end string) bool {
	startMin, ok1 := parseHHMM(start)
	endMin, ok2 := parseHHMM(end)
	if !ok1 || !ok2 || startMin == endMin {
		return false
	}
	cur := t.Hour()*60 + t.Minute()
	if startMin < endMin {
		return cur >= startMin && cur < endMin
	}
	return cur >= startMin || cur < endMin
}

func parseHHMM(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hh, err1 := strconv.Atoi(h)
	mm, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

package motivation

import (
	"context"
	"testing"
	"time"

	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func at(hour, min int) time.Time {
	return time.Date(2026, 1, 10, hour, min, 0, 0, time.UTC)
}

func TestInQuietHours(t *testing.T) {
	cases := []struct {
		name  string
		t     time.Time
		quiet bool
	}{
		{"mid afternoon", at(15, 0), false},
		{"late night", at(23, 30), true},
		{"just past midnight", at(0, 30), true},
		{"early morning boundary", at(7, 59), true},
		{"window end is exclusive", at(8, 0), false},
		{"window start is inclusive", at(22, 0), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := inQuietHours(c.t, "22:00", "08:00"); got != c.quiet {
				t.Errorf("inQuietHours(%s) = %v, want %v", c.t.Format("15:04"), got, c.quiet)
			}
		})
	}
}

func TestInQuietHours_SameDayWindow(t *testing.T) {
	if !inQuietHours(at(13, 0), "12:00", "14:00") {
		t.Error("13:00 should be quiet in a 12:00-14:00 window")
	}
	if inQuietHours(at(15, 0), "12:00", "14:00") {
		t.Error("15:00 should not be quiet in a 12:00-14:00 window")
	}
}

func TestParseHHMM(t *testing.T) {
	if m, ok := parseHHMM("22:30"); !ok || m != 22*60+30 {
		t.Errorf("parseHHMM(22:30) = (%d, %v)", m, ok)
	}
	for _, bad := range []string{"", "2230", "25:00", "10:61", "a:b"} {
		if _, ok := parseHHMM(bad); ok {
			t.Errorf("parseHHMM(%q) accepted", bad)
		}
	}
}

func TestDeliver_PersistsDuringDaytime(t *testing.T) {
	svc := NewService(testDB(t), domain.DefaultNotificationPolicy())
	svc.now = func() time.Time { return at(12, 0) }

	err := svc.deliver(domain.Notification{Type: domain.NotifyBadge, Title: "t", Body: "b"})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}

	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	if pending[0].Shown {
		t.Error("fresh notification marked shown")
	}
}

func TestDeliver_SuppressedInQuietHours(t *testing.T) {
	svc := NewService(testDB(t), domain.DefaultNotificationPolicy())
	svc.now = func() time.Time { return at(23, 0) }

	if err := svc.deliver(domain.Notification{Type: domain.NotifyBadge}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	pending, _ := svc.Pending(10)
	if len(pending) != 0 {
		t.Errorf("quiet-hours message persisted: %d", len(pending))
	}
}

func TestDeliver_DailyCap(t *testing.T) {
	policy := domain.DefaultNotificationPolicy()
	policy.MaxPerDay = 2
	svc := NewService(testDB(t), policy)
	svc.now = func() time.Time { return at(12, 0) }

	for i := 0; i < 5; i++ {
		if err := svc.deliver(domain.Notification{Type: domain.NotifyBadge}); err != nil {
			t.Fatalf("deliver %d: %v", i, err)
		}
	}
	pending, _ := svc.Pending(10)
	if len(pending) != 2 {
		t.Errorf("persisted %d, cap is 2", len(pending))
	}
}

func TestMarkShown(t *testing.T) {
	svc := NewService(testDB(t), domain.DefaultNotificationPolicy())
	svc.now = func() time.Time { return at(12, 0) }

	_ = svc.deliver(domain.Notification{Type: domain.NotifyLevelUp})
	pending, _ := svc.Pending(10)
	if len(pending) != 1 {
		t.Fatalf("pending = %d", len(pending))
	}

	if err := svc.MarkShown(pending[0].ID); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	after, _ := svc.Pending(10)
	if len(after) != 0 {
		t.Errorf("shown notification still pending")
	}
}

func TestWorker_EmitThroughQueue(t *testing.T) {
	svc := NewService(testDB(t), domain.DefaultNotificationPolicy())
	svc.now = func() time.Time { return at(12, 0) }

	svc.Start(context.Background())
	svc.Emit(domain.Notification{Type: domain.NotifyHabitStreak, Title: "t", Body: "b"})
	svc.Stop() // drains the queue before returning

	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("worker persisted %d, want 1", len(pending))
	}
}

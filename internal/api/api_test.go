package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ascend-app/ascend/internal/api"
	"github.com/ascend-app/ascend/internal/app/gamification"
	"github.com/ascend-app/ascend/internal/app/habit"
	"github.com/ascend-app/ascend/internal/app/motivation"
	"github.com/ascend-app/ascend/internal/domain"
	"github.com/ascend-app/ascend/internal/infra/sqlite"
)

// testServer wires the full service stack over a temporary database.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	game := gamification.NewService(db)
	habits := habit.NewService(db)
	messages := motivation.NewService(db, domain.DefaultNotificationPolicy())

	srv := httptest.NewServer(api.NewServer(game, habits, messages).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func initProfile(t *testing.T, base string) {
	t.Helper()
	resp := postJSON(t, base+"/api/profile/init", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("init profile status = %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestProfile_InitThenGet(t *testing.T) {
	srv := testServer(t)
	initProfile(t, srv.URL)

	// Second init conflicts.
	resp := postJSON(t, srv.URL+"/api/profile/init", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("second init status = %d, want 409", resp.StatusCode)
	}

	var profile struct {
		XP     int64   `json:"xp"`
		Level  int     `json:"level"`
		ToNext int64   `json:"xp_to_next"`
		Pct    float64 `json:"progress_pct"`
	}
	getResp, err := http.Get(srv.URL + "/api/profile")
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	decode(t, getResp, &profile)
	if profile.Level != 1 || profile.XP != 0 {
		t.Errorf("fresh profile = %+v", profile)
	}
	if profile.ToNext != 100 {
		t.Errorf("xp_to_next = %d, want 100", profile.ToNext)
	}
}

func TestProfile_MissingIs404(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/api/profile")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSubmitLog_EndToEnd(t *testing.T) {
	srv := testServer(t)
	initProfile(t, srv.URL)

	var res gamification.Result
	resp := postJSON(t, srv.URL+"/api/logs", map[string]any{
		"date":        "2026-01-10",
		"study_hours": 1.0,
		"quran_pages": 5,
		"abstained":   true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d", resp.StatusCode)
	}
	decode(t, resp, &res)

	if res.EarnedXP != 50 {
		t.Errorf("earned %d, want 50", res.EarnedXP)
	}
	if len(res.NewBadges) == 0 {
		t.Error("first submission unlocked no badges")
	}

	// Fetch it back.
	var log domain.DailyLog
	getResp, err := http.Get(srv.URL + "/api/logs/2026-01-10")
	if err != nil {
		t.Fatal(err)
	}
	decode(t, getResp, &log)
	if log.StudyHours != 1.0 || !log.Abstained {
		t.Errorf("stored log = %+v", log)
	}
}

func TestSubmitLog_BadInput(t *testing.T) {
	srv := testServer(t)
	initProfile(t, srv.URL)

	resp := postJSON(t, srv.URL+"/api/logs", map[string]any{
		"date": "2026-01-10", "study_hours": -2,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative stat status = %d, want 400", resp.StatusCode)
	}
}

func TestStreakEndpoint(t *testing.T) {
	srv := testServer(t)
	initProfile(t, srv.URL)

	for _, d := range []string{"2026-01-09", "2026-01-10"} {
		resp := postJSON(t, srv.URL+"/api/logs", map[string]any{"date": d, "abstained": true})
		resp.Body.Close()
	}

	var out struct {
		Streak int `json:"streak"`
	}
	resp, err := http.Get(srv.URL + "/api/streak?date=2026-01-10")
	if err != nil {
		t.Fatal(err)
	}
	decode(t, resp, &out)
	if out.Streak != 2 {
		t.Errorf("streak = %d, want 2", out.Streak)
	}
}

func TestHabits_CheckUncheckFlow(t *testing.T) {
	srv := testServer(t)
	initProfile(t, srv.URL)

	var created domain.Habit
	resp := postJSON(t, srv.URL+"/api/habits/", map[string]any{"name": "meditate"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	decode(t, resp, &created)

	checkURL := fmt.Sprintf("%s/api/habits/%s/check?date=2026-01-10", srv.URL, created.ID)
	var checked domain.Habit
	decode(t, postJSON(t, checkURL, nil), &checked)
	if checked.CurrentStreak != 1 {
		t.Errorf("streak after check = %d, want 1", checked.CurrentStreak)
	}

	uncheckURL := fmt.Sprintf("%s/api/habits/%s/uncheck?date=2026-01-10", srv.URL, created.ID)
	var unchecked domain.Habit
	decode(t, postJSON(t, uncheckURL, nil), &unchecked)
	if unchecked.CurrentStreak != 0 {
		t.Errorf("streak after uncheck = %d, want 0", unchecked.CurrentStreak)
	}
}

func TestHabits_BlankNameRejected(t *testing.T) {
	srv := testServer(t)
	resp := postJSON(t, srv.URL+"/api/habits/", map[string]any{"name": "  "})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", resp.StatusCode)
	}
}

func TestRewards_DrawUntilExhausted(t *testing.T) {
	srv := testServer(t)
	initProfile(t, srv.URL)

	total := len(gamification.DefaultRewards())
	for i := 0; i < total; i++ {
		var out struct {
			Reward    *domain.Reward `json:"reward"`
			Exhausted bool           `json:"exhausted"`
		}
		decode(t, postJSON(t, srv.URL+"/api/rewards/draw", nil), &out)
		if out.Reward == nil {
			t.Fatalf("draw %d returned nil before exhaustion", i)
		}
	}

	var final struct {
		Exhausted bool `json:"exhausted"`
	}
	decode(t, postJSON(t, srv.URL+"/api/rewards/draw", nil), &final)
	if !final.Exhausted {
		t.Error("pool not reported exhausted")
	}
}

func TestQuests_DuplicateDateConflicts(t *testing.T) {
	srv := testServer(t)
	initProfile(t, srv.URL)

	body := map[string]any{"date": "2026-01-10", "description": "cold shower"}
	resp := postJSON(t, srv.URL+"/api/quests", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}

	dup := postJSON(t, srv.URL+"/api/quests", body)
	dup.Body.Close()
	if dup.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", dup.StatusCode)
	}
}

func TestAI_UnavailableWithoutClient(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/api/ai/quote")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

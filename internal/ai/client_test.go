package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubCompletion returns a chat-completions server that always replies
// with the given content, capturing the last request payload.
func stubCompletion(t *testing.T, content string, lastReq *chatPayload) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		if lastReq != nil {
			if err := json.NewDecoder(r.Body).Decode(lastReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateQuote_ParsesJSON(t *testing.T) {
	srv := stubCompletion(t, `{"title":"Rise","text":"Start before you feel ready."}`, nil)
	c := NewClient(srv.URL, "test-model", "test-key")

	q, err := c.GenerateQuote(context.Background())
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Title != "Rise" || q.Text != "Start before you feel ready." {
		t.Errorf("quote = %+v", q)
	}
}

func TestGenerateQuote_PlainTextFallback(t *testing.T) {
	srv := stubCompletion(t, "Just keep moving.", nil)
	c := NewClient(srv.URL, "test-model", "test-key")

	q, err := c.GenerateQuote(context.Background())
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Text != "Just keep moving." {
		t.Errorf("fallback text = %q", q.Text)
	}
}

func TestJournalPrompt_FallbackOnEmpty(t *testing.T) {
	srv := stubCompletion(t, "   ", nil)
	c := NewClient(srv.URL, "test-model", "test-key")

	p, err := c.JournalPrompt(context.Background())
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if p != FallbackJournalPrompt {
		t.Errorf("prompt = %q, want fallback", p)
	}
}

func TestAnalyzePhysique_BuildsVisionPayload(t *testing.T) {
	var captured chatPayload
	srv := stubCompletion(t, `{"overall":"solid","muscle_groups":{"back":"developing"},"improvements":["posture"],"recommendations":"more rows"}`, &captured)
	c := NewClient(srv.URL, "test-model", "test-key")

	a, err := c.AnalyzePhysique(context.Background(), AnalysisRequest{
		CurrentImage:  "data:image/jpeg;base64,AAAA",
		PreviousImage: "data:image/jpeg;base64,BBBB",
		Notes:         "cutting phase",
		BodyFatPct:    18.5,
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Overall != "solid" || a.MuscleGroups["back"] != "developing" {
		t.Errorf("analysis = %+v", a)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(captured.Messages))
	}
	parts, ok := captured.Messages[1].Content.([]any)
	if !ok {
		t.Fatalf("user content not a part list: %T", captured.Messages[1].Content)
	}
	if len(parts) != 3 { // two images plus the text prompt
		t.Errorf("content parts = %d, want 3", len(parts))
	}
}

func TestAnalyzePhysique_RequiresImage(t *testing.T) {
	c := NewClient("http://localhost:0", "m", "test-key")
	if _, err := c.AnalyzePhysique(context.Background(), AnalysisRequest{}); err == nil {
		t.Error("missing image accepted")
	}
}

func TestChat_NoAPIKey(t *testing.T) {
	c := NewClient("http://localhost:0", "m", "")
	if _, err := c.GenerateQuote(context.Background()); err != ErrAPIKeyMissing {
		t.Errorf("error = %v, want ErrAPIKeyMissing", err)
	}
	if c.Configured() {
		t.Error("Configured() true without key")
	}
}

func TestChat_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited"},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "m", "test-key")
	if _, err := c.JournalPrompt(context.Background()); err == nil {
		t.Error("service error not surfaced")
	}
}

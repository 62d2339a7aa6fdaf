// Package ai is the typed client for the hosted text/vision generation
// service. It speaks the OpenAI-compatible chat-completions protocol.
// Gamification never depends on these outputs' content, only on the
// fact that a quote/journal/analysis event occurred.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrAPIKeyMissing is returned when no API key is configured.
var ErrAPIKeyMissing = errors.New("ai: api key not configured")

// FallbackJournalPrompt is used when the service returns nothing.
const FallbackJournalPrompt = "What is one small thing you did today that your future self will thank you for?"

// httpDoer lets tests swap the transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	http    httpDoer
}

// NewClient creates an AI client. baseURL is trimmed of trailing slashes.
func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:   strings.TrimSpace(model),
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// SetHTTPClient replaces the underlying transport (tests).
func (c *Client) SetHTTPClient(d httpDoer) {
	if d == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
		return
	}
	c.http = d
}

// Configured reports whether the client can make calls.
func (c *Client) Configured() bool { return c.apiKey != "" }

// ─── Typed Operations ───────────────────────────────────────────────────────

// Quote is a short motivational quote with a title.
type Quote struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// GenerateQuote asks for a short motivational quote. No input.
func (c *Client) GenerateQuote(ctx context.Context) (Quote, error) {
	content, err := c.chat(ctx, chatPayload{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: text("You write short, grounded motivational quotes for a self-improvement app. Respond with JSON: {\"title\": ..., \"text\": ...}. No markdown.")},
			{Role: "user", Content: text("One quote, please.")},
		},
		MaxTokens:   120,
		Temperature: 0.9,
	})
	if err != nil {
		return Quote{}, err
	}

	var q Quote
	if err := json.Unmarshal([]byte(content), &q); err != nil || q.Text == "" {
		// Model ignored the JSON instruction; take the raw text.
		return Quote{Title: "Keep going", Text: strings.TrimSpace(content)}, nil
	}
	return q, nil
}

// JournalPrompt asks for a single journaling prompt. Falls back to a
// deterministic prompt if the service returns nothing.
func (c *Client) JournalPrompt(ctx context.Context) (string, error) {
	content, err := c.chat(ctx, chatPayload{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: text("You write one reflective journaling prompt per request. Reply with the prompt only.")},
			{Role: "user", Content: text("One prompt, please.")},
		},
		MaxTokens:   80,
		Temperature: 0.8,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return FallbackJournalPrompt, nil
	}
	return strings.TrimSpace(content), nil
}

// AnalysisRequest carries one or two physique photos (data URLs or
// https URLs), free-text notes, and an optional body-fat estimate.
type AnalysisRequest struct {
	CurrentImage  string  `json:"current_image"`
	PreviousImage string  `json:"previous_image,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	BodyFatPct    float64 `json:"body_fat_pct,omitempty"`
}

// Analysis is the structured assessment returned by the vision model.
type Analysis struct {
	Overall         string            `json:"overall"`
	MuscleGroups    map[string]string `json:"muscle_groups"`
	Improvements    []string          `json:"improvements"`
	Recommendations string            `json:"recommendations"`
}

// AnalyzePhysique submits photos plus notes for a structured assessment.
func (c *Client) AnalyzePhysique(ctx context.Context, req AnalysisRequest) (Analysis, error) {
	if req.CurrentImage == "" {
		return Analysis{}, fmt.Errorf("ai: current image is required")
	}

	userParts := []contentPart{
		{Type: "image_url", ImageURL: &imageURL{URL: req.CurrentImage}},
	}
	if req.PreviousImage != "" {
		userParts = append(userParts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: req.PreviousImage}})
	}
	prompt := "Assess the physique in the photo(s)."
	if req.PreviousImage != "" {
		prompt = "Compare the current physique (first image) against the previous one (second image)."
	}
	if req.Notes != "" {
		prompt += " Notes: " + req.Notes
	}
	if req.BodyFatPct > 0 {
		prompt += fmt.Sprintf(" Estimated body fat: %.1f%%.", req.BodyFatPct)
	}
	userParts = append(userParts, contentPart{Type: "text", Text: prompt})

	content, err := c.chat(ctx, chatPayload{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: text(`You are a supportive fitness coach. Respond with JSON only: {"overall": str, "muscle_groups": {name: str}, "improvements": [str], "recommendations": str}.`)},
			{Role: "user", Content: userParts},
		},
		MaxTokens:   600,
		Temperature: 0.4,
	})
	if err != nil {
		return Analysis{}, err
	}

	var a Analysis
	if err := json.Unmarshal([]byte(content), &a); err != nil {
		return Analysis{}, fmt.Errorf("ai: parse analysis: %w", err)
	}
	return a, nil
}

// ─── Wire Types ─────────────────────────────────────────────────────────────

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

func text(s string) any { return s }

type chatPayload struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// chat posts one completion request and returns the first choice's text.
func (c *Client) chat(ctx context.Context, payload chatPayload) (string, error) {
	if c.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ai: encode request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ai: read response: %w", err)
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(completion.Error.Message)
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("ai: service error: %s", msg)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

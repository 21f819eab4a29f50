package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zara/zara/config"
)

func TestOpenAIClientSendsSamplingAndParsesReply(t *testing.T) {
	var got struct {
		Model       string    `json:"model"`
		Messages    []Message `json:"messages"`
		Temperature float32   `json:"temperature"`
		MaxTokens   int       `json:"max_tokens"`
		TopP        float32   `json:"top_p"`
		Stream      bool      `json:"stream"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer key, got %q", r.Header.Get("Authorization"))
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Hi there!"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("key", srv.URL+"/v1", 5*time.Second, config.Sampling{Temperature: 0.7, MaxTokens: 4096, TopP: 1})
	text, err := client.Complete(context.Background(), "llama3.1-8b", []Message{
		{Role: "system", Content: "persona"},
		{Role: "user", Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "Hi there!" {
		t.Errorf("unexpected text %q", text)
	}
	if got.Model != "llama3.1-8b" || len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Errorf("unexpected request %+v", got)
	}
	if got.Temperature != 0.7 || got.MaxTokens != 4096 || got.TopP != 1 || got.Stream {
		t.Errorf("unexpected sampling %+v", got)
	}
}

func TestOpenAIClientClassifiesRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Tokens per day limit exceeded","type":"too_many_requests_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("key", srv.URL+"/v1", 5*time.Second, config.Sampling{MaxTokens: 16})
	_, err := client.Complete(context.Background(), "m", []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if pe := ClassifyError(err, "m"); !pe.RateLimited {
		t.Errorf("expected rate-limit classification for %v", err)
	}
}

func TestOpenAIClientOtherErrorsAreNotRateLimits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"Model does not exist","type":"not_found_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("key", srv.URL+"/v1", 5*time.Second, config.Sampling{MaxTokens: 16})
	_, err := client.Complete(context.Background(), "llama3.1-70b", []Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if pe := ClassifyError(err, "llama3.1-70b"); pe.RateLimited {
		t.Errorf("404 misclassified as rate limit: %v", err)
	}
}

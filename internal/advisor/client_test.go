package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecommendReturnsTextVerbatim(t *testing.T) {
	const suggestion = "Try Guardians of the Rift for Runecraft.\nIt is engaging and rewarding."
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		body := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": suggestion}},
			},
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model")
	text, err := client.Recommend(context.Background(), "prompt", "test-key")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if text != suggestion {
		t.Fatalf("expected verbatim text, got %q", text)
	}
}

func TestRecommendMissingCredential(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Recommend(context.Background(), "prompt", "  ")
	if !errors.Is(err, ErrCredentialRequired) {
		t.Fatalf("expected ErrCredentialRequired, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no network call, got %d", calls)
	}
}

func TestRecommendAbsorbsServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	text, err := client.Recommend(context.Background(), "prompt", "bad-key")
	if err != nil {
		t.Fatalf("expected absorbed failure, got %v", err)
	}
	if text != MsgRecommendationFailed {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestRecommendAbsorbsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "")
	text, err := client.Recommend(context.Background(), "prompt", "test-key")
	if err != nil {
		t.Fatalf("expected absorbed failure, got %v", err)
	}
	if text != MsgRecommendationFailed {
		t.Fatalf("unexpected text: %q", text)
	}
}

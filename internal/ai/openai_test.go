package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	c := NewClient("test-key", "gpt-4o-mini", 5*time.Second)
	c.apiURL = url
	return c
}

func TestTranslateAllSingleCall(t *testing.T) {
	var calls int
	var got RequestBody

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}

		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		content := `{"aries": "Овен: хороший день.", "leo": "Лев: смелый день."}`
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	translated, err := c.TranslateAll(context.Background(), map[string]string{
		"aries": "A good day.",
		"leo":   "A bold day.",
	})
	if err != nil {
		t.Fatalf("TranslateAll returned error: %v", err)
	}

	if calls != 1 {
		t.Errorf("API called %d times, want 1", calls)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v", got.ResponseFormat)
	}

	if translated["aries"] != "Овен: хороший день." {
		t.Errorf("aries = %q", translated["aries"])
	}
	if translated["leo"] != "Лев: смелый день." {
		t.Errorf("leo = %q", translated["leo"])
	}
}

func TestTranslateAllAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "rate limited"}}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	if _, err := c.TranslateAll(context.Background(), map[string]string{"aries": "x"}); err == nil {
		t.Fatal("TranslateAll returned nil error on API error")
	}
}

func TestTranslateAllEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	if _, err := c.TranslateAll(context.Background(), map[string]string{"aries": "x"}); err == nil {
		t.Fatal("TranslateAll returned nil error on empty choices")
	}
}

func TestTranslateAllBadJSONContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "not json"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	if _, err := c.TranslateAll(context.Background(), map[string]string{"aries": "x"}); err == nil {
		t.Fatal("TranslateAll returned nil error on unparsable content")
	}
}

func TestTranslateAllNothingToTranslate(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")

	if _, err := c.TranslateAll(context.Background(), nil); err == nil {
		t.Fatal("TranslateAll returned nil error for empty input")
	}
}

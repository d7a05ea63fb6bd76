package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAI_Complete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("OpenAI-Organization") != "org-1" {
			t.Errorf("organization = %q", r.Header.Get("OpenAI-Organization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"build a cat site"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "sk-test", "org-1", "gpt-4", 0.1, 0)
	text, err := c.Complete(context.Background(), []Message{{Role: "system", Content: "hi"}})
	if err != nil {
		t.Fatal(err)
	}
	if text != "build a cat site" {
		t.Fatalf("text = %q", text)
	}
	if got.Model != "gpt-4" || got.Temperature != 0.1 {
		t.Fatalf("request = %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hi" {
		t.Fatalf("messages = %+v", got.Messages)
	}
}

func TestOpenAI_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "k", "", "gpt-4", 0, 0)
	_, err := c.Complete(context.Background(), []Message{{Role: "system", Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestOpenAI_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "k", "", "gpt-4", 0, 0)
	if _, err := c.Complete(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAI_Defaults(t *testing.T) {
	c := NewOpenAI("", "k", "", "gpt-4", 0, 0)
	if c.URL != DefaultOpenAIURL {
		t.Fatalf("url = %q", c.URL)
	}
	if c.Limiter != nil {
		t.Fatal("limiter should be nil without a rate")
	}
	if c.HTTPClient.Timeout != 0 {
		t.Fatal("service calls are bounded by context only")
	}
	limited := NewOpenAI("", "k", "", "gpt-4", 0, 30)
	if limited.Limiter == nil {
		t.Fatal("expected limiter")
	}
}

func TestCommand_Complete(t *testing.T) {
	c := &Command{Args: []string{"echo", "-n"}}
	text, err := c.Complete(context.Background(), []Message{{Role: "system", Content: "first"}, {Role: "user", Content: "second"}})
	if err != nil {
		t.Fatal(err)
	}
	if text != "first\n\nsecond" {
		t.Fatalf("text = %q", text)
	}
}

func TestCommand_Failure(t *testing.T) {
	c := &Command{Args: []string{"sh", "-c", "echo oops >&2; exit 3"}}
	_, err := c.Complete(context.Background(), []Message{{Role: "system", Content: "x"}})
	if err == nil || !strings.Contains(err.Error(), "oops") {
		t.Fatalf("expected failure with stderr, got %v", err)
	}
}

func TestCommand_Empty(t *testing.T) {
	if _, err := (&Command{}).Complete(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
}

package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("fine"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := New(0)
	code, err := p.Status(context.Background(), srv.URL+"/ok")
	if err != nil || code != 200 {
		t.Fatalf("code=%d err=%v", code, err)
	}
	code, err = p.Status(context.Background(), srv.URL+"/missing")
	if err != nil || code != 404 {
		t.Fatalf("code=%d err=%v", code, err)
	}
}

func TestStatus_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	p := New(50 * time.Millisecond)
	start := time.Now()
	if _, err := p.Status(context.Background(), srv.URL); err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("probe ignored its timeout")
	}
}

func TestStatus_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	if _, err := New(time.Second).Status(context.Background(), url); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestStatus_BadURL(t *testing.T) {
	if _, err := New(time.Second).Status(context.Background(), "://nope"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	if New(-1).Client.Timeout != DefaultTimeout {
		t.Fatal("expected default timeout")
	}
}

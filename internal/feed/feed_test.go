package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPSource_Snapshot(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"-Nk1": {"message": "25/08/01,09:00:00 \"500\"", "sender": "+593996002370"},
			"-Nk2": {"message": "garbage", "sender": "unknown"}
		}`))
	}))
	defer srv.Close()

	records, err := NewHTTPSource(srv.URL, time.Second).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got := records["-Nk1"].Sender; got != "+593996002370" {
		t.Errorf("unexpected sender %q", got)
	}
}

func TestHTTPSource_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewHTTPSource(srv.URL, time.Second).Snapshot(context.Background()); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}

func TestHTTPSource_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	if _, err := NewHTTPSource(srv.URL, time.Second).Snapshot(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestHTTPSource_ContextCancellation(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := NewHTTPSource(srv.URL, time.Minute).Snapshot(ctx); err == nil {
		t.Fatalf("expected context deadline error")
	}
}

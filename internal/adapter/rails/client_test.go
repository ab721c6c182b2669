package rails

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type echoPayload struct {
	Message string `json:"message"`
}

func TestClient_PostJSON_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nil)

	var out echoPayload
	if err := client.postJSON(context.Background(), "/v1/push", echoPayload{Message: "hi"}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Message != "ok" {
		t.Errorf("message = %q, want ok", out.Message)
	}
}

func TestClient_PostJSON_DoesNotRetry(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nil)

	err := client.postJSON(context.Background(), "/v1/push", echoPayload{}, nil)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}

	if statusErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", statusErr.Status)
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hit %d times, want exactly 1", got)
	}
}

func TestClient_GetJSON_RetriesTransportErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err != nil {
				t.Fatalf("hijack failed: %v", err)
			}
			conn.Close()
			return
		}
		w.Write([]byte(`{"message":"recovered"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nil)

	var out echoPayload
	if err := client.getJSON(context.Background(), "/v1/status", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Message != "recovered" {
		t.Errorf("message = %q, want recovered", out.Message)
	}

	if got := atomic.LoadInt32(&hits); got < 2 {
		t.Errorf("server hit %d times, want a retry after the dropped connection", got)
	}
}

func TestClient_GetJSON_StatusErrorIsPermanent(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "no such transfer", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nil)

	err := client.getJSON(context.Background(), "/v1/status", &echoPayload{})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hit %d times, want no retries on a definitive status", got)
	}
}

func TestClient_ErrorBodyIsCapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("x", 4096), http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nil)

	err := client.postJSON(context.Background(), "/v1/push", echoPayload{}, nil)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}

	if len(statusErr.Body) != maxErrorBodyBytes {
		t.Errorf("body length = %d, want capped at %d", len(statusErr.Body), maxErrorBodyBytes)
	}
}

func TestClient_ContextCancellationStopsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Fatalf("hijack failed: %v", err)
		}
		conn.Close()
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := client.getJSON(ctx, "/v1/status", &echoPayload{})

	if err == nil {
		t.Fatal("expected an error once the context expired")
	}

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("retries ran %v past the context deadline", elapsed)
	}
}

package feeds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        time.Second,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		Multiplier:     2.0,
		BreakerTimeout: 30 * time.Second,
	}
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient("test", testClientConfig())
	body, err := c.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("unexpected body: %q", body)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestGet_DoesNotRetryClientErrors(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("test", testClientConfig())
	_, err := c.Get(context.Background(), srv.URL, nil)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("expected a single request for a 404, got %d", got)
	}
	if code := statusCode(err); code != http.StatusNotFound {
		t.Errorf("expected status 404 in error chain, got %d", code)
	}
}

func TestGet_RetriesTooManyRequests(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient("test", testClientConfig())
	if _, err := c.Get(context.Background(), srv.URL, nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("expected 429 to be retried, got %d requests", got)
	}
}

func TestGet_SendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "DigitalEarth/1.0" {
			t.Errorf("unexpected User-Agent: %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient("test", testClientConfig())
	header := http.Header{"User-Agent": []string{"DigitalEarth/1.0"}}
	if _, err := c.Get(context.Background(), srv.URL, header); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
}

func TestFetchError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &FetchError{Source: "firms", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("expected FetchError to unwrap to the inner error")
	}

	withStatus := &FetchError{Source: "usgs", StatusCode: 503, Err: &statusError{code: 503}}
	if msg := withStatus.Error(); msg != "usgs fetch failed: unexpected status 503" {
		t.Errorf("unexpected message: %q", msg)
	}
}

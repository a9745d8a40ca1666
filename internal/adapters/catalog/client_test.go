package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"newsstand/internal/core/dates"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(Options{
		BaseURL:    baseURL,
		MaxRetries: 3,
		RetryBase:  time.Millisecond,
	})
	c.sleep = func(time.Duration) {} // no real backoff in tests
	return c
}

func TestItemsInRangeDecodesAndNormalizes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("start"); got != "2025-06-01" {
			t.Errorf("start = %s", got)
		}
		if got := r.URL.Query().Get("end"); got != "2025-06-10" {
			t.Errorf("end = %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a","date":"2025-06-05","breaking":true,"has_content":true},
			{"id":"b","date":"June 7, 2025","featured":true,"has_content":true},
			{"id":"c","date":"not a date","has_content":true}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	items, err := c.ItemsInRange(context.Background(),
		dates.MustDay("2025-06-01"), dates.MustDay("2025-06-10"))
	if err != nil {
		t.Fatalf("ItemsInRange: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}

	if !items[0].Date.Equal(dates.MustDay("2025-06-05")) || !items[0].Breaking {
		t.Fatalf("item a mis-decoded: %+v", items[0])
	}
	if !items[1].Date.Equal(dates.MustDay("2025-06-07")) || !items[1].Featured {
		t.Fatalf("free-form date not normalized: %+v", items[1])
	}
	// unparseable dates come through as the zero Day, never an error
	if !items[2].Date.IsZero() {
		t.Fatalf("bad date should be zero Day: %+v", items[2])
	}
}

func TestRetriesTransientStatusThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"a","date":"2025-06-05","has_content":true}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	items, err := c.AllItems(context.Background())
	if err != nil {
		t.Fatalf("AllItems after retries: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("items = %+v", items)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", calls.Load())
	}
}

func TestRetriesExhaustedSurfaceUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.FeaturedItems(context.Background()); err == nil {
		t.Fatalf("expected error after exhausted retries")
	}
}

func TestUnexpectedStatusDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.ItemsForPage(context.Background(), 1); err == nil {
		t.Fatalf("expected error for unexpected status")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on hard failure)", calls.Load())
	}
}

func TestHasContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/abc/has-content" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"has_content":true}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ok, err := c.HasContent(context.Background(), "abc")
	if err != nil || !ok {
		t.Fatalf("HasContent = %v, %v; want true, nil", ok, err)
	}
}

func TestContextCancellationStopsRetryLoop(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := newTestClient(srv.URL)
	c.sleep = func(time.Duration) { cancel() }

	if _, err := c.AllItems(ctx); err == nil {
		t.Fatalf("expected error after cancellation")
	}
}

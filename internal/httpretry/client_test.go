package httpretry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

func newGetBuilder(url string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

func TestDo_SuccessFirstAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New("test", srv.Client(), Policy{MaxAttempts: 3, Delay: time.Millisecond}, zap.NewNop())

	resp, err := c.Do(context.Background(), newGetBuilder(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if calls.Load() != 1 {
		t.Errorf("expected 1 attempt, got %d", calls.Load())
	}
}

func TestDo_RetryableStatusesExhaustAttempts(t *testing.T) {
	for _, status := range []int{408, 429, 500, 502, 503, 504} {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		}))

		c := New("test", srv.Client(), Policy{MaxAttempts: 3, Delay: time.Millisecond}, zap.NewNop())

		_, err := c.Do(context.Background(), newGetBuilder(srv.URL))
		if !errors.Is(err, domain.ErrRetryExhausted) {
			t.Errorf("status %d: expected ErrRetryExhausted, got %v", status, err)
		}
		if calls.Load() != 3 {
			t.Errorf("status %d: expected 3 attempts, got %d", status, calls.Load())
		}
		srv.Close()
	}
}

func TestDo_NonRetryableStatusFailsImmediately(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))
	defer srv.Close()

	c := New("test", srv.Client(), Policy{MaxAttempts: 3, Delay: time.Millisecond}, zap.NewNop())

	_, err := c.Do(context.Background(), newGetBuilder(srv.URL))

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", upstream.Status)
	}
	if upstream.Body != "missing" {
		t.Errorf("expected body %q, got %q", "missing", upstream.Body)
	}
	if errors.Is(err, domain.ErrRetryExhausted) {
		t.Error("a non-retryable failure must not be reported as exhaustion")
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", calls.Load())
	}
}

func TestDo_SucceedsAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := New("test", srv.Client(), Policy{MaxAttempts: 3, Delay: time.Millisecond}, zap.NewNop())

	resp, err := c.Do(context.Background(), newGetBuilder(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New("test", srv.Client(), Policy{MaxAttempts: 3, Delay: time.Minute}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := c.Do(ctx, newGetBuilder(srv.URL))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("cancellation did not interrupt the retry delay")
	}
}

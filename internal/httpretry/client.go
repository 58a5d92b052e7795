// Package httpretry wraps outbound HTTP calls in a fixed-delay, bounded
// retry policy over an allow-list of transient status codes.
package httpretry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/metrics"
)

// maxErrorBodyBytes caps how much of an upstream error body is kept.
const maxErrorBodyBytes = 8 << 10

// Policy describes one retry policy: fixed delay, bounded attempt count,
// and the set of statuses considered transient.
type Policy struct {
	MaxAttempts       int
	Delay             time.Duration
	RetryableStatuses []int
}

// DefaultRetryableStatuses is the transient allow-list applied when a Policy
// names none.
var DefaultRetryableStatuses = []int{
	http.StatusRequestTimeout,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// Client issues HTTP requests under a Policy. Safe for concurrent use.
type Client struct {
	name      string
	hc        *http.Client
	policy    Policy
	retryable map[int]struct{}
	logger    *zap.Logger
}

// New creates a retrying client. name labels log lines and metrics. A nil
// http.Client falls back to http.DefaultClient.
func New(name string, hc *http.Client, policy Policy, logger *zap.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	statuses := policy.RetryableStatuses
	if len(statuses) == 0 {
		statuses = DefaultRetryableStatuses
	}
	retryable := make(map[int]struct{}, len(statuses))
	for _, s := range statuses {
		retryable[s] = struct{}{}
	}
	return &Client{
		name:      name,
		hc:        hc,
		policy:    policy,
		retryable: retryable,
		logger:    logger,
	}
}

// Do executes the request until it succeeds, fails non-transiently, or the
// attempt budget is exhausted. build is invoked once per attempt so request
// bodies are always fresh.
//
// A 2xx response is returned as-is (caller closes the body). A non-2xx
// status outside the retryable set fails immediately with UpstreamError.
// Exhaustion fails with an error wrapping domain.ErrRetryExhausted, never a
// nil response.
func (c *Client) Do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastStatus int
	var lastErr error

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			metrics.HTTPRetriesTotal.WithLabelValues(c.name).Inc()
			if err := sleep(ctx, c.policy.Delay); err != nil {
				return nil, err
			}
		}

		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("%s: build request: %w", c.name, err)
		}

		resp, err := c.hc.Do(req.WithContext(ctx))
		if err != nil {
			// Transport-level failures are treated as transient.
			lastErr = err
			lastStatus = 0
			c.logger.Warn("HTTP attempt failed",
				zap.String("client", c.name),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.policy.MaxAttempts),
				zap.Error(err),
			)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()

		if _, ok := c.retryable[resp.StatusCode]; !ok {
			return nil, domain.NewUpstreamError(resp.StatusCode, body)
		}

		lastStatus = resp.StatusCode
		lastErr = domain.NewUpstreamError(resp.StatusCode, body)
		c.logger.Warn("HTTP attempt returned retryable status",
			zap.String("client", c.name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.policy.MaxAttempts),
			zap.Int("status", resp.StatusCode),
		)
	}

	if lastStatus != 0 {
		return nil, fmt.Errorf("%w: %s failed %d attempts, last status %d: %w",
			domain.ErrRetryExhausted, c.name, c.policy.MaxAttempts, lastStatus, lastErr)
	}
	return nil, fmt.Errorf("%w: %s failed %d attempts: %w",
		domain.ErrRetryExhausted, c.name, c.policy.MaxAttempts, lastErr)
}

// sleep waits for the fixed retry delay, honoring context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

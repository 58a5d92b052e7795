// Package notify posts plain-text outcome messages to an incoming-webhook
// endpoint.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

const maxErrorBodyBytes = 8 << 10

// Sender posts {"text": ...} payloads. Sends are never retried; callers
// treat failures as best-effort.
type Sender struct {
	hc     *http.Client
	logger *zap.Logger
}

// NewSender creates a notification sender. A nil http.Client falls back to
// http.DefaultClient.
func NewSender(hc *http.Client, logger *zap.Logger) *Sender {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Sender{hc: hc, logger: logger}
}

// Send posts text to the endpoint. An empty endpoint or text is a
// configuration error; a non-success response surfaces as an UpstreamError
// carrying the response body.
func (s *Sender) Send(ctx context.Context, endpoint, text string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: notification endpoint", domain.ErrMissingConfig)
	}
	if text == "" {
		return fmt.Errorf("%w: notification text", domain.ErrMissingConfig)
	}

	raw, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("notify: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return domain.NewUpstreamError(resp.StatusCode, body)
	}

	s.logger.Debug("Notification delivered", zap.Int("text_bytes", len(text)))
	return nil
}

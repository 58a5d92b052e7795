// Package confluence is the document-source adapter: it fetches and updates
// Confluence pages through the REST content API.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

const maxErrorBodyBytes = 8 << 10

// PageSnapshot is the result of fetching a page: identifier, current
// version, title, and body in storage format. Consumed immediately, never
// cached.
type PageSnapshot struct {
	ID      string
	Version int
	Title   string
	Body    string
}

// UpdatedPage is the result of a successful page update.
type UpdatedPage struct {
	ID      string
	Title   string
	Version int
	Links   Links
}

// Links carries the base and tiny link of a page as returned by the API.
type Links struct {
	Base   string `json:"base"`
	TinyUI string `json:"tinyui"`
}

// ShortLink returns the page's tiny URL resolved against its base link.
func (l Links) ShortLink() string {
	return l.Base + l.TinyUI
}

// Client talks to a Confluence site with HTTP Basic authentication.
type Client struct {
	hc     *http.Client
	logger *zap.Logger
}

// NewClient creates a Confluence client. A nil http.Client falls back to
// http.DefaultClient.
func NewClient(hc *http.Client, logger *zap.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{hc: hc, logger: logger}
}

// pageRef is a parsed page URL: the site origin and the numeric content id.
type pageRef struct {
	origin string
	id     string
}

// parsePageRef extracts the origin and the first all-numeric path segment
// from a page URL. No network call is made.
func parsePageRef(pageURL string) (pageRef, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return pageRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidReference, pageURL)
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" && isDigits(seg) {
			return pageRef{origin: u.Scheme + "://" + u.Host, id: seg}, nil
		}
	}
	return pageRef{}, fmt.Errorf("%w: %q", domain.ErrInvalidReference, pageURL)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FetchPage reads the page's current body (storage format) and version.
func (c *Client) FetchPage(ctx context.Context, pageURL, identity, token string) (*PageSnapshot, error) {
	ref, err := parsePageRef(pageURL)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/wiki/rest/api/content/%s?expand=body.storage,version", ref.origin, ref.id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("confluence: build fetch request: %w", err)
	}
	req.SetBasicAuth(identity, token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confluence: fetch page %s: %w", ref.id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, domain.NewUpstreamError(resp.StatusCode, body)
	}

	var payload struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Version struct {
			Number int `json:"number"`
		} `json:"version"`
		Body struct {
			Storage struct {
				Value string `json:"value"`
			} `json:"storage"`
		} `json:"body"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("confluence: decode page %s: %w", ref.id, err)
	}

	c.logger.Debug("Fetched page",
		zap.String("page_id", payload.ID),
		zap.Int("version", payload.Version.Number),
	)

	return &PageSnapshot{
		ID:      payload.ID,
		Version: payload.Version.Number,
		Title:   payload.Title,
		Body:    payload.Body.Storage.Value,
	}, nil
}

// UpdatePage replaces the page body and title, asserting version
// knownVersion+1 in a single round trip. The caller-supplied version is
// never reconciled against the server's live version; if the server enforces
// monotonic versioning its rejection surfaces as an UpstreamError.
func (c *Client) UpdatePage(ctx context.Context, pageURL, newBody, title, identity, token string, knownVersion int) (*UpdatedPage, error) {
	ref, err := parsePageRef(pageURL)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"id":    ref.id,
		"type":  "page",
		"title": title,
		"body": map[string]any{
			"storage": map[string]any{
				"value":          newBody,
				"representation": "storage",
			},
		},
		"metadata": map[string]any{},
		"version": map[string]any{
			"number": knownVersion + 1,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("confluence: marshal update: %w", err)
	}

	endpoint := fmt.Sprintf("%s/wiki/rest/api/content/%s", ref.origin, ref.id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("confluence: build update request: %w", err)
	}
	req.SetBasicAuth(identity, token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confluence: update page %s: %w", ref.id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, domain.NewUpstreamError(resp.StatusCode, body)
	}

	var updated struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Version struct {
			Number int `json:"number"`
		} `json:"version"`
		Links Links `json:"_links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("confluence: decode update response %s: %w", ref.id, err)
	}

	c.logger.Info("Updated page",
		zap.String("page_id", updated.ID),
		zap.Int("version", updated.Version.Number),
	)

	return &UpdatedPage{
		ID:      updated.ID,
		Title:   updated.Title,
		Version: updated.Version.Number,
		Links:   updated.Links,
	}, nil
}

// Package generator calls the external documentation-generation service.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/httpretry"
)

// Config identifies the generation endpoint and its API key.
type Config struct {
	Endpoint string
	APIKey   string
}

// Result is the generation service's response. A non-empty Title replaces
// the page title on update; Cached marks a response served from the
// service's commit cache.
type Result struct {
	HTML   string `json:"newHtmlContent"`
	Title  string `json:"newTitle"`
	Cached bool   `json:"cached"`
}

// Client invokes the generation service under a bounded retry policy.
type Client struct {
	cfg    Config
	retry  *httpretry.Client
	logger *zap.Logger
}

// NewClient creates a generator client using the given retrying transport.
func NewClient(cfg Config, retry *httpretry.Client, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, retry: retry, logger: logger}
}

type requestBody struct {
	Body requestPayload `json:"body"`
}

type requestPayload struct {
	HTMLContent    string `json:"htmlContent"`
	RepoName       string `json:"repoName"`
	WorkspaceName  string `json:"workspaceName"`
	BitbucketToken string `json:"bitbucketToken"`
	OrgAdminEmail  string `json:"orgAdminEmail"`
}

// Generate submits the job's current page body and repository identity and
// returns the regenerated content. Retry exhaustion surfaces as an error
// wrapping domain.ErrRetryExhausted.
func (c *Client) Generate(ctx context.Context, job *domain.SyncJob) (*Result, error) {
	raw, err := json.Marshal(requestBody{
		Body: requestPayload{
			HTMLContent:    job.PageBody,
			RepoName:       job.Repository,
			WorkspaceName:  job.Workspace,
			BitbucketToken: job.RepoToken,
			OrgAdminEmail:  job.AdminEmail,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generator: marshal request: %w", err)
	}

	resp, err := c.retry.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.cfg.Endpoint, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("API-Key", c.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("generator: decode response: %w", err)
	}
	if result.HTML == "" {
		return nil, fmt.Errorf("generator: empty content returned")
	}

	c.logger.Debug("Generated documentation",
		zap.String("repository", job.Repository),
		zap.Bool("cached", result.Cached),
		zap.Int("content_bytes", len(result.HTML)),
	)

	return &result, nil
}

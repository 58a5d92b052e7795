package domain

import (
	"time"

	"github.com/google/uuid"
)

// SyncStatus represents the outcome of a documentation sync attempt.
type SyncStatus string

const (
	StatusQueued    SyncStatus = "QUEUED"
	StatusSucceeded SyncStatus = "SUCCEEDED"
	StatusFailed    SyncStatus = "FAILED"
)

// SyncJob is the unit of work carried through the queue. It is a complete,
// immutable snapshot taken at enqueue time: the worker never re-resolves
// configuration and never re-reads the page version.
type SyncJob struct {
	JobID      uuid.UUID `json:"job_id"`
	Tenant     string    `json:"tenant"`
	Repository string    `json:"repository"`
	Workspace  string    `json:"workspace"`

	// Bitbucket credentials for the generation service.
	RepoToken  string `json:"repo_token"`
	AdminEmail string `json:"admin_email"`

	// Target Confluence page, as seen at enqueue time.
	PageURL     string `json:"page_url"`
	PageVersion int    `json:"page_version"`
	PageTitle   string `json:"page_title"`
	PageBody    string `json:"page_body"`
	DocToken    string `json:"doc_token"`

	// Optional incoming-webhook endpoint for outcome messages.
	NotifyURL string `json:"notify_url,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// JobMessage wraps a SyncJob received from the queue together with the
// broker acknowledgement callbacks. The worker pool calls Ack or Nack after
// the pipeline finishes.
type JobMessage struct {
	Job  *SyncJob
	Ack  func() error
	Nack func(requeue bool) error
}

// RepositoryConfig holds the per-{tenant, repository} settings stored in the
// configuration store. PageURL, RepoToken, DocToken and AdminEmail are
// required; NotifyURL is optional.
type RepositoryConfig struct {
	PageURL    string `json:"page_url"`
	RepoToken  string `json:"repo_token"`
	DocToken   string `json:"doc_token"`
	AdminEmail string `json:"admin_email"`
	NotifyURL  string `json:"notify_url,omitempty"`
}

// Validate returns ErrMissingConfig naming the first absent required field.
func (c *RepositoryConfig) Validate() error {
	switch {
	case c.PageURL == "":
		return missingConfig("page url")
	case c.RepoToken == "":
		return missingConfig("repository token")
	case c.DocToken == "":
		return missingConfig("document token")
	case c.AdminEmail == "":
		return missingConfig("admin email")
	}
	return nil
}

// WebhookEvent is the inbound repository event body. The tenant is supplied
// out-of-band via the webhook URL.
type WebhookEvent struct {
	Repository struct {
		UUID      string `json:"uuid" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Workspace struct {
			Name string `json:"name" binding:"required"`
		} `json:"workspace" binding:"required"`
	} `json:"repository" binding:"required"`
}

// EnqueueResponse is returned to the webhook caller after a job is queued.
type EnqueueResponse struct {
	JobID       uuid.UUID `json:"job_id"`
	PageVersion int       `json:"page_version"`
	Status      string    `json:"status"`
}

// SyncRecord is one row of sync history, written by the worker after each
// processed job. Observational only; the pipeline never reads it back.
type SyncRecord struct {
	JobID            uuid.UUID  `json:"job_id"`
	Tenant           string     `json:"tenant"`
	Repository       string     `json:"repository"`
	PageID           string     `json:"page_id,omitempty"`
	PageTitle        string     `json:"page_title"`
	SubmittedVersion int        `json:"submitted_version"`
	Status           SyncStatus `json:"status"`
	Detail           string     `json:"detail,omitempty"`
	DurationMs       int64      `json:"duration_ms"`
	CreatedAt        time.Time  `json:"created_at"`
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference is returned when no numeric page identifier can be
	// parsed out of a document URL.
	ErrInvalidReference = errors.New("document url carries no numeric page id")

	// ErrRetryExhausted is returned when a retrying HTTP call runs out of
	// attempts without a successful response.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrMissingConfig is returned when required repository configuration is
	// absent. Required fields are never silently defaulted.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrRecordNotFound is returned when no sync history exists for a key.
	ErrRecordNotFound = errors.New("record not found")

	// ErrPublishFailed is returned when the message broker publish fails.
	ErrPublishFailed = errors.New("failed to publish job to message queue")
)

func missingConfig(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingConfig, field)
}

// UpstreamError carries the status and body of a non-success HTTP response
// from the generator, the document source, or a notification endpoint.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

// NewUpstreamError builds an UpstreamError from a response status and body.
func NewUpstreamError(status int, body []byte) *UpstreamError {
	return &UpstreamError{Status: status, Body: string(body)}
}

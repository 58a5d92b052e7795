package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/metrics"
)

// Outcome is the result of one processed job as seen by the side-channel.
// Err nil means success; Link then points at the updated page's tiny URL.
type Outcome struct {
	Title string
	Link  string
	Err   error
}

// Reporter delivers a job outcome through the notification side-channel.
// It is the only way a processed job's result leaves the worker.
type Reporter interface {
	Report(ctx context.Context, job *domain.SyncJob, outcome Outcome)
}

// Notifier posts a plain-text message to an incoming-webhook endpoint.
type Notifier interface {
	Send(ctx context.Context, endpoint, text string) error
}

type notifyReporter struct {
	sender Notifier
	logger *zap.Logger
}

// NewReporter creates the notification-backed Reporter.
func NewReporter(sender Notifier, logger *zap.Logger) Reporter {
	return &notifyReporter{sender: sender, logger: logger}
}

// Report composes exactly one success or failure message and sends it to
// the job's notification endpoint. An unconfigured endpoint is a no-op, and
// a failed send is logged without escalating: notification is best-effort
// relative to the sync itself.
func (r *notifyReporter) Report(ctx context.Context, job *domain.SyncJob, outcome Outcome) {
	if job.NotifyURL == "" {
		r.logger.Debug("No notification endpoint configured, skipping report",
			zap.String("job_id", job.JobID.String()),
		)
		return
	}

	var text string
	if outcome.Err != nil {
		text = fmt.Sprintf("Documentation sync for %q (%s/%s) failed: %v",
			outcome.Title, job.Workspace, job.Repository, outcome.Err)
	} else {
		text = fmt.Sprintf("Documentation %q (%s/%s) synced successfully: %s",
			outcome.Title, job.Workspace, job.Repository, outcome.Link)
	}

	if err := r.sender.Send(ctx, job.NotifyURL, text); err != nil {
		metrics.NotificationFailures.Inc()
		r.logger.Warn("Failed to deliver outcome notification",
			zap.Error(err),
			zap.String("job_id", job.JobID.String()),
		)
	}
}

package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/confluence"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/generator"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/repository"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/transform"
)

// Generator produces the regenerated documentation for a job.
type Generator interface {
	Generate(ctx context.Context, job *domain.SyncJob) (*generator.Result, error)
}

// PageUpdater applies the optimistic version-increment page update.
type PageUpdater interface {
	UpdatePage(ctx context.Context, pageURL, newBody, title, identity, token string, knownVersion int) (*confluence.UpdatedPage, error)
}

// ProcessSyncUsecase runs the generate → transform → update → report
// pipeline for one dequeued job. The outcome is communicated only through
// the Reporter; no caller ever sees a result value.
type ProcessSyncUsecase struct {
	generator Generator
	pages     PageUpdater
	reporter  Reporter
	history   repository.SyncHistory
	logger    *zap.Logger
}

// NewProcessSyncUsecase creates a new ProcessSyncUsecase.
func NewProcessSyncUsecase(
	gen Generator,
	pages PageUpdater,
	reporter Reporter,
	history repository.SyncHistory,
	logger *zap.Logger,
) *ProcessSyncUsecase {
	return &ProcessSyncUsecase{
		generator: gen,
		pages:     pages,
		reporter:  reporter,
		history:   history,
		logger:    logger,
	}
}

// Execute processes a single job. The returned error only drives the
// broker acknowledgement; the notification side-channel has already been
// informed by the time Execute returns.
//
// Replaying a job re-runs the whole pipeline with the version recorded at
// enqueue time. If the page was already updated by a previous attempt, the
// stale version is rejected by the document source and the replay fails;
// that rejection is reported, never retried.
func (uc *ProcessSyncUsecase) Execute(ctx context.Context, job *domain.SyncJob) error {
	start := time.Now()

	result, err := uc.generator.Generate(ctx, job)
	if err != nil {
		uc.logger.Error("Generation failed", zap.Error(err), zap.String("job_id", job.JobID.String()))
		uc.fail(ctx, job, "", start, err)
		return err
	}

	body, err := transform.ImagesToStorage(result.HTML)
	if err != nil {
		uc.logger.Error("Transform failed", zap.Error(err), zap.String("job_id", job.JobID.String()))
		uc.fail(ctx, job, "", start, err)
		return err
	}

	title := job.PageTitle
	if result.Title != "" {
		title = result.Title
	}

	updated, err := uc.pages.UpdatePage(ctx, job.PageURL, body, title, job.AdminEmail, job.DocToken, job.PageVersion)
	if err != nil {
		uc.logger.Error("Page update failed",
			zap.Error(err),
			zap.String("job_id", job.JobID.String()),
			zap.Int("submitted_version", job.PageVersion+1),
		)
		uc.fail(ctx, job, "", start, err)
		return err
	}

	uc.reporter.Report(ctx, job, Outcome{Title: updated.Title, Link: updated.Links.ShortLink()})
	uc.record(ctx, job, &domain.SyncRecord{
		PageID:     updated.ID,
		PageTitle:  updated.Title,
		Status:     domain.StatusSucceeded,
		DurationMs: time.Since(start).Milliseconds(),
	})

	uc.logger.Info("Sync completed",
		zap.String("job_id", job.JobID.String()),
		zap.String("page_id", updated.ID),
		zap.Int("version", updated.Version),
		zap.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// fail reports the failure on the notification side-channel and records it
// in the history, then the caller returns err to the pool.
func (uc *ProcessSyncUsecase) fail(ctx context.Context, job *domain.SyncJob, pageID string, start time.Time, err error) {
	uc.reporter.Report(ctx, job, Outcome{Title: job.PageTitle, Err: err})
	uc.record(ctx, job, &domain.SyncRecord{
		PageID:     pageID,
		PageTitle:  job.PageTitle,
		Status:     domain.StatusFailed,
		Detail:     err.Error(),
		DurationMs: time.Since(start).Milliseconds(),
	})
}

// record fills the job identity into the record and inserts it. History is
// observational: insert failures are logged and swallowed.
func (uc *ProcessSyncUsecase) record(ctx context.Context, job *domain.SyncJob, rec *domain.SyncRecord) {
	rec.JobID = job.JobID
	rec.Tenant = job.Tenant
	rec.Repository = job.Repository
	rec.SubmittedVersion = job.PageVersion + 1

	if err := uc.history.Record(ctx, rec); err != nil {
		uc.logger.Warn("Failed to record sync history",
			zap.Error(err),
			zap.String("job_id", job.JobID.String()),
		)
	}
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/configstore"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/confluence"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/publisher"
)

// PageFetcher fetches the current snapshot of a Confluence page.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL, identity, token string) (*confluence.PageSnapshot, error)
}

// EnqueueSyncUsecase handles an inbound repository event: it resolves the
// stored settings, snapshots the target page, and publishes a complete
// SyncJob. The slow generation and update work never happens here.
type EnqueueSyncUsecase struct {
	store     configstore.Store
	pages     PageFetcher
	publisher publisher.Publisher
	logger    *zap.Logger
}

// NewEnqueueSyncUsecase creates a new EnqueueSyncUsecase.
func NewEnqueueSyncUsecase(store configstore.Store, pages PageFetcher, pub publisher.Publisher, logger *zap.Logger) *EnqueueSyncUsecase {
	return &EnqueueSyncUsecase{
		store:     store,
		pages:     pages,
		publisher: pub,
		logger:    logger,
	}
}

// Execute builds and publishes the sync job for one repository event.
// Missing required settings fail fast with domain.ErrMissingConfig so the
// queued snapshot is always self-sufficient.
func (uc *EnqueueSyncUsecase) Execute(ctx context.Context, tenant string, event *domain.WebhookEvent) (*domain.EnqueueResponse, error) {
	repository := event.Repository.Name

	cfg, err := uc.store.Resolve(ctx, tenant, repository)
	if err != nil {
		return nil, fmt.Errorf("resolve settings for %s/%s: %w", tenant, repository, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("settings for %s/%s: %w", tenant, repository, err)
	}

	snapshot, err := uc.pages.FetchPage(ctx, cfg.PageURL, cfg.AdminEmail, cfg.DocToken)
	if err != nil {
		uc.logger.Error("Failed to fetch page snapshot",
			zap.Error(err),
			zap.String("tenant", tenant),
			zap.String("repository", repository),
		)
		return nil, fmt.Errorf("fetch page snapshot: %w", err)
	}

	// Generate UUIDv7 (time-ordered)
	jobID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate UUIDv7: %w", err)
	}

	job := &domain.SyncJob{
		JobID:       jobID,
		Tenant:      tenant,
		Repository:  repository,
		Workspace:   event.Repository.Workspace.Name,
		RepoToken:   cfg.RepoToken,
		AdminEmail:  cfg.AdminEmail,
		PageURL:     cfg.PageURL,
		PageVersion: snapshot.Version,
		PageTitle:   snapshot.Title,
		PageBody:    snapshot.Body,
		DocToken:    cfg.DocToken,
		NotifyURL:   cfg.NotifyURL,
		EnqueuedAt:  time.Now().UTC(),
	}

	if err := uc.publisher.Publish(ctx, job); err != nil {
		uc.logger.Error("Failed to publish sync job",
			zap.Error(err),
			zap.String("job_id", jobID.String()),
		)
		return nil, domain.ErrPublishFailed
	}

	uc.logger.Info("Sync job enqueued",
		zap.String("job_id", jobID.String()),
		zap.String("tenant", tenant),
		zap.String("repository", repository),
		zap.Int("page_version", snapshot.Version),
	)

	return &domain.EnqueueResponse{
		JobID:       jobID,
		PageVersion: snapshot.Version,
		Status:      string(domain.StatusQueued),
	}, nil
}

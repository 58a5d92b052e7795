package repository

import (
	"context"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

// SyncHistory persists one audit row per processed sync job.
// Implementations must be safe for concurrent use.
type SyncHistory interface {
	// Record inserts the outcome of a processed job.
	Record(ctx context.Context, rec *domain.SyncRecord) error

	// ListByRepository returns the most recent records for a repository,
	// newest first, up to limit.
	ListByRepository(ctx context.Context, tenant, repository string, limit int) ([]*domain.SyncRecord, error)
}

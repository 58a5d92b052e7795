package configstore

import (
	"context"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

// Store reads and writes per-{tenant, repository} settings.
// Implementations must be safe for concurrent use.
type Store interface {
	// Resolve loads the settings for a repository. Absent fields come back
	// empty; required-field validation is the caller's concern.
	Resolve(ctx context.Context, tenant, repository string) (*domain.RepositoryConfig, error)

	// Save writes all settings fields for a repository.
	Save(ctx context.Context, tenant, repository string, cfg *domain.RepositoryConfig) error
}

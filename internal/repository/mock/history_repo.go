package mock

import (
	"context"
	"sync"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/repository"
)

// Ensure SyncHistory implements repository.SyncHistory.
var _ repository.SyncHistory = (*SyncHistory)(nil)

// SyncHistory is an in-memory test double for repository.SyncHistory.
type SyncHistory struct {
	mu      sync.Mutex
	Records []*domain.SyncRecord

	RecordFn func(ctx context.Context, rec *domain.SyncRecord) error
}

func (m *SyncHistory) Record(ctx context.Context, rec *domain.SyncRecord) error {
	if m.RecordFn != nil {
		return m.RecordFn(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, rec)
	return nil
}

func (m *SyncHistory) ListByRepository(ctx context.Context, tenant, repository string, limit int) ([]*domain.SyncRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.SyncRecord
	for i := len(m.Records) - 1; i >= 0 && len(out) < limit; i-- {
		rec := m.Records[i]
		if rec.Tenant == tenant && rec.Repository == repository {
			out = append(out, rec)
		}
	}
	return out, nil
}

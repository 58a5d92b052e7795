package mock

import (
	"context"
	"sync"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/configstore"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

// Ensure Store implements configstore.Store.
var _ configstore.Store = (*Store)(nil)

// Store is an in-memory configuration store for testing.
type Store struct {
	mu      sync.Mutex
	configs map[string]*domain.RepositoryConfig

	// Hook functions for injecting errors.
	ResolveFn func(ctx context.Context, tenant, repository string) (*domain.RepositoryConfig, error)
	SaveFn    func(ctx context.Context, tenant, repository string, cfg *domain.RepositoryConfig) error
}

// NewStore creates a new mock store.
func NewStore() *Store {
	return &Store{configs: make(map[string]*domain.RepositoryConfig)}
}

// Seed installs a config for a repository without going through Save.
func (m *Store) Seed(tenant, repository string, cfg *domain.RepositoryConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[tenant+"/"+repository] = cfg
}

func (m *Store) Resolve(ctx context.Context, tenant, repository string) (*domain.RepositoryConfig, error) {
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, tenant, repository)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg, ok := m.configs[tenant+"/"+repository]; ok {
		cp := *cfg
		return &cp, nil
	}
	// Unconfigured repositories resolve to empty fields, like the real store.
	return &domain.RepositoryConfig{}, nil
}

func (m *Store) Save(ctx context.Context, tenant, repository string, cfg *domain.RepositoryConfig) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, tenant, repository, cfg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *cfg
	m.configs[tenant+"/"+repository] = &cp
	return nil
}

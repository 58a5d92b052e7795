package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/configstore"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

var _ configstore.Store = (*redisStore)(nil)

// Settings are flat key-value pairs keyed "<tenant>_<repository>_<field>".
const (
	fieldPageURL    = "page_url"
	fieldRepoToken  = "repo_token"
	fieldDocToken   = "doc_token"
	fieldAdminEmail = "admin_email"
	fieldNotifyURL  = "notify_url"
)

type redisStore struct {
	client *goredis.Client
}

// NewStore creates a Redis-backed configuration store.
func NewStore(client *goredis.Client) configstore.Store {
	return &redisStore{client: client}
}

func key(tenant, repository, field string) string {
	return fmt.Sprintf("%s_%s_%s", tenant, repository, field)
}

func (s *redisStore) Resolve(ctx context.Context, tenant, repository string) (*domain.RepositoryConfig, error) {
	keys := []string{
		key(tenant, repository, fieldPageURL),
		key(tenant, repository, fieldRepoToken),
		key(tenant, repository, fieldDocToken),
		key(tenant, repository, fieldAdminEmail),
		key(tenant, repository, fieldNotifyURL),
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: resolve settings: %w", err)
	}

	str := func(i int) string {
		if v, ok := vals[i].(string); ok {
			return v
		}
		return ""
	}

	return &domain.RepositoryConfig{
		PageURL:    str(0),
		RepoToken:  str(1),
		DocToken:   str(2),
		AdminEmail: str(3),
		NotifyURL:  str(4),
	}, nil
}

func (s *redisStore) Save(ctx context.Context, tenant, repository string, cfg *domain.RepositoryConfig) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key(tenant, repository, fieldPageURL), cfg.PageURL, 0)
	pipe.Set(ctx, key(tenant, repository, fieldRepoToken), cfg.RepoToken, 0)
	pipe.Set(ctx, key(tenant, repository, fieldDocToken), cfg.DocToken, 0)
	pipe.Set(ctx, key(tenant, repository, fieldAdminEmail), cfg.AdminEmail, 0)
	pipe.Set(ctx, key(tenant, repository, fieldNotifyURL), cfg.NotifyURL, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: save settings: %w", err)
	}
	return nil
}

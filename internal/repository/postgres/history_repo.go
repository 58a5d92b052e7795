package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/repository"
)

// Ensure pgHistoryRepo implements repository.SyncHistory.
var _ repository.SyncHistory = (*pgHistoryRepo)(nil)

type pgHistoryRepo struct {
	pool *pgxpool.Pool
}

// NewSyncHistory creates a PostgreSQL-backed sync history repository.
func NewSyncHistory(pool *pgxpool.Pool) repository.SyncHistory {
	return &pgHistoryRepo{pool: pool}
}

func (r *pgHistoryRepo) Record(ctx context.Context, rec *domain.SyncRecord) error {
	query := `
		INSERT INTO sync_history (job_id, tenant, repository, page_id, page_title, submitted_version, status, detail, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query,
		rec.JobID, rec.Tenant, rec.Repository, rec.PageID, rec.PageTitle,
		rec.SubmittedVersion, rec.Status, rec.Detail, rec.DurationMs, now,
	)
	if err != nil {
		return fmt.Errorf("postgres: record sync: %w", err)
	}
	rec.CreatedAt = now
	return nil
}

func (r *pgHistoryRepo) ListByRepository(ctx context.Context, tenant, repository string, limit int) ([]*domain.SyncRecord, error) {
	query := `
		SELECT job_id, tenant, repository, page_id, page_title, submitted_version, status, detail, duration_ms, created_at
		FROM sync_history
		WHERE tenant = $1 AND repository = $2
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, tenant, repository, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list syncs: %w", err)
	}
	defer rows.Close()

	var recs []*domain.SyncRecord
	for rows.Next() {
		rec := &domain.SyncRecord{}
		if err := rows.Scan(
			&rec.JobID, &rec.Tenant, &rec.Repository, &rec.PageID, &rec.PageTitle,
			&rec.SubmittedVersion, &rec.Status, &rec.Detail, &rec.DurationMs, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan sync record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list syncs: %w", err)
	}
	return recs, nil
}

package mock

import (
	"context"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/publisher"
)

// Ensure Publisher implements publisher.Publisher.
var _ publisher.Publisher = (*Publisher)(nil)

// Publisher is a mock message publisher for testing.
type Publisher struct {
	Published []*domain.SyncJob
	PublishFn func(ctx context.Context, job *domain.SyncJob) error
}

// NewPublisher creates a new mock publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

func (m *Publisher) Publish(ctx context.Context, job *domain.SyncJob) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, job)
	}
	m.Published = append(m.Published, job)
	return nil
}

func (m *Publisher) Close() error {
	return nil
}

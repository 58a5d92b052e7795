package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/confluence"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/generator"
	mockrepo "github.com/Manoranjanmaharana1/SherlockSync/internal/repository/mock"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/usecase"
)

type stubGenerator struct {
	err error
}

func (s *stubGenerator) Generate(ctx context.Context, job *domain.SyncJob) (*generator.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &generator.Result{HTML: "<p>regenerated</p>"}, nil
}

type stubUpdater struct{}

func (s *stubUpdater) UpdatePage(ctx context.Context, pageURL, newBody, title, identity, token string, knownVersion int) (*confluence.UpdatedPage, error) {
	return &confluence.UpdatedPage{ID: "123456", Title: title, Version: knownVersion + 1}, nil
}

type stubReporter struct{}

func (s *stubReporter) Report(ctx context.Context, job *domain.SyncJob, outcome usecase.Outcome) {}

func newTestUsecase(genErr error) *usecase.ProcessSyncUsecase {
	return usecase.NewProcessSyncUsecase(
		&stubGenerator{err: genErr},
		&stubUpdater{},
		&stubReporter{},
		&mockrepo.SyncHistory{},
		zap.NewNop(),
	)
}

func newJobMessage(acks, nacks *atomic.Int32) *domain.JobMessage {
	id, _ := uuid.NewV7()
	return &domain.JobMessage{
		Job: &domain.SyncJob{
			JobID:       id,
			Tenant:      "acme",
			Repository:  "billing-service",
			PageURL:     "https://acme.atlassian.net/wiki/pages/123456",
			PageVersion: 5,
			PageTitle:   "Service Docs",
			PageBody:    "<p>old</p>",
		},
		Ack: func() error {
			acks.Add(1)
			return nil
		},
		Nack: func(requeue bool) error {
			nacks.Add(1)
			return nil
		},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestPool_ProcessesAndAcks(t *testing.T) {
	jobs := make(chan *domain.JobMessage, 4)
	p := NewWorkerPool(2, jobs, newTestUsecase(nil), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	var acks, nacks atomic.Int32
	for i := 0; i < 4; i++ {
		jobs <- newJobMessage(&acks, &nacks)
	}

	waitFor(t, func() bool { return acks.Load() == 4 })
	if nacks.Load() != 0 {
		t.Errorf("expected 0 nacks, got %d", nacks.Load())
	}

	cancel()
	p.Stop()
}

func TestPool_NacksOnFailure(t *testing.T) {
	jobs := make(chan *domain.JobMessage, 1)
	p := NewWorkerPool(1, jobs, newTestUsecase(errors.New("generation blew up")), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	var acks, nacks atomic.Int32
	jobs <- newJobMessage(&acks, &nacks)

	waitFor(t, func() bool { return nacks.Load() == 1 })
	if acks.Load() != 0 {
		t.Errorf("expected 0 acks, got %d", acks.Load())
	}

	cancel()
	p.Stop()
}

func TestPool_StopsWhenChannelCloses(t *testing.T) {
	jobs := make(chan *domain.JobMessage, 2)
	p := NewWorkerPool(2, jobs, newTestUsecase(nil), zap.NewNop())

	p.Start(context.Background())

	var acks, nacks atomic.Int32
	jobs <- newJobMessage(&acks, &nacks)
	jobs <- newJobMessage(&acks, &nacks)
	close(jobs)

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop after channel close")
	}

	if acks.Load() != 2 {
		t.Errorf("expected 2 acks, got %d", acks.Load())
	}
}

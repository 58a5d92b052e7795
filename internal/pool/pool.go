package pool

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/metrics"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/usecase"
)

// WorkerPool manages a fixed-size pool of goroutines that process sync jobs.
type WorkerPool struct {
	size      int
	jobs      <-chan *domain.JobMessage
	processUC *usecase.ProcessSyncUsecase
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewWorkerPool creates a new fixed-size worker pool.
func NewWorkerPool(size int, jobs <-chan *domain.JobMessage, processUC *usecase.ProcessSyncUsecase, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		size:      size,
		jobs:      jobs,
		processUC: processUC,
		logger:    logger,
	}
}

// Start launches all worker goroutines. Call Stop to wait for them to finish.
func (p *WorkerPool) Start(ctx context.Context) {
	p.logger.Info("Starting worker pool", zap.Int("pool_size", p.size))

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop waits for all workers to finish their current jobs and exit.
func (p *WorkerPool) Stop() {
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

func (p *WorkerPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Worker panic recovered",
				zap.Int("worker_id", id),
				zap.Any("panic", r),
			)
		}
	}()

	p.logger.Debug("Worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Worker shutting down", zap.Int("worker_id", id))
			return
		case msg, ok := <-p.jobs:
			if !ok {
				p.logger.Debug("Job channel closed", zap.Int("worker_id", id))
				return
			}

			job := msg.Job

			p.logger.Info("Worker processing sync job",
				zap.Int("worker_id", id),
				zap.String("job_id", job.JobID.String()),
				zap.String("repository", job.Repository),
			)

			metrics.WorkersActive.Inc()
			startTime := time.Now()

			err := p.processUC.Execute(ctx, job)
			elapsed := time.Since(startTime).Seconds()

			metrics.WorkersActive.Dec()
			metrics.SyncDuration.Observe(elapsed)

			if err != nil {
				// The outcome has already been reported on the notification
				// side-channel. Nack without requeue — a failed sync carries
				// a stale page version and must not loop through the queue.
				if nackErr := msg.Nack(false); nackErr != nil {
					p.logger.Error("Failed to NACK message",
						zap.String("job_id", job.JobID.String()),
						zap.Error(nackErr),
					)
				}
				metrics.SyncsTotal.WithLabelValues("failed").Inc()
				continue
			}

			if ackErr := msg.Ack(); ackErr != nil {
				p.logger.Error("Failed to ACK message after sync",
					zap.String("job_id", job.JobID.String()),
					zap.Error(ackErr),
				)
			}
			metrics.SyncsTotal.WithLabelValues("succeeded").Inc()
		}
	}
}

// ABOUTME: Fire-and-forget push queue for the cloud home document
// ABOUTME: Coalesces bursts into a bounded channel; retries with backoff off the hot path

package sync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/harper/binary-home/internal/models"
	"github.com/harper/binary-home/internal/util"
)

const (
	pushQueueDepth  = 16
	pushMaxAttempts = 3
	pushBackoffBase = 500 * time.Millisecond
)

// pushJob is one queued document upload
type pushJob struct {
	state    *models.HomeState
	snapshot *models.AxisSnapshot
}

// Pusher decouples local writes from cloud uploads. Enqueue never blocks
// the caller: when the queue is full the oldest job is dropped, because a
// newer document always supersedes an older one.
type Pusher struct {
	client *Client
	jobs   chan pushJob
	logger *zap.Logger
}

// NewPusher builds a pusher around the given cloud client
func NewPusher(client *Client, logger *zap.Logger) *Pusher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pusher{
		client: client,
		jobs:   make(chan pushJob, pushQueueDepth),
		logger: logger,
	}
}

// Enqueue schedules a document upload without blocking
func (p *Pusher) Enqueue(state *models.HomeState, snapshot *models.AxisSnapshot) {
	if !p.client.Enabled() {
		return
	}
	job := pushJob{state: state, snapshot: snapshot}
	for {
		select {
		case p.jobs <- job:
			return
		default:
		}
		// Queue full: drop the oldest job and try again
		select {
		case <-p.jobs:
		default:
		}
	}
}

// Run drains the queue until the context is cancelled. Each job is retried
// with backoff; a job that still fails is logged and dropped, never retried
// across jobs.
func (p *Pusher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			err := util.Retry(ctx, pushMaxAttempts, pushBackoffBase, func() error {
				return p.client.Push(ctx, job.state, job.snapshot)
			})
			if err != nil {
				p.logger.Warn("cloud push failed, dropping job", zap.Error(err))
			}
		}
	}
}

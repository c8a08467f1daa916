package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/darrylwest/service-uptime/internal/logger"
	"github.com/darrylwest/service-uptime/pkg/status"
)

// SnapshotTTLFactor is how many report intervals a published snapshot outlives
// its publication. A missed tick or two does not make the instance vanish.
const SnapshotTTLFactor = 3

// SnapshotPublisher receives status snapshots. *redis.Store satisfies it.
type SnapshotPublisher interface {
	SaveSnapshot(ctx context.Context, instanceID string, snap status.Snapshot, ttl time.Duration) error
	DeleteSnapshot(ctx context.Context, instanceID string) error
}

// Reporter periodically logs the service status and publishes a snapshot
type Reporter struct {
	status     status.ServiceStatus
	publisher  SnapshotPublisher
	logger     logger.Logger
	instanceID string
	interval   time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	started    bool
	done       chan struct{}
}

// NewReporter creates a new reporter. publisher may be nil, in which case
// the status is only logged.
func NewReporter(
	st status.ServiceStatus,
	publisher SnapshotPublisher,
	log logger.Logger,
	instanceID string,
	interval time.Duration,
) *Reporter {
	return &Reporter{
		status:     st,
		publisher:  publisher,
		logger:     log,
		instanceID: instanceID,
		interval:   interval,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start publishes once, then every interval until Stop or ctx is done
func (r *Reporter) Start(ctx context.Context) error {
	// Run immediately on start
	if err := r.Publish(ctx); err != nil {
		r.logger.Warn("initial status publish failed",
			logger.Error(err))
	}

	r.started = true
	ticker := time.NewTicker(r.interval)
	go func() {
		defer close(r.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.Publish(ctx); err != nil {
					r.logger.Error("status publish failed",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the periodic loop and waits for it to exit
func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	if r.started {
		<-r.done
	}
}

// Publish logs the current status and hands a snapshot to the publisher
func (r *Reporter) Publish(ctx context.Context) error {
	snap := r.status.Snapshot()

	r.logger.Info("service status",
		logger.String("instance_id", r.instanceID),
		logger.Stringer("uptime", snap.Uptime),
		logger.Uint64("uptime_seconds", snap.UptimeSeconds),
		logger.Uint64("errors", snap.Errors),
		logger.Uint64("access", snap.Access))

	if r.publisher == nil {
		return nil
	}
	return r.publisher.SaveSnapshot(ctx, r.instanceID, snap, SnapshotTTLFactor*r.interval)
}

// Retire removes this instance's snapshot so peers stop seeing it
func (r *Reporter) Retire(ctx context.Context) error {
	if r.publisher == nil {
		return nil
	}
	return r.publisher.DeleteSnapshot(ctx, r.instanceID)
}

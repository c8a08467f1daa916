package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/darrylwest/service-uptime/pkg/status"
)

// ErrNotFound is returned when an instance has no live snapshot.
var ErrNotFound = errors.New("snapshot not found")

// Store publishes status snapshots to Redis for dashboards and peers.
// Snapshots expire on their own; nothing is ever read back into counters.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSnapshot stores the snapshot of an instance, expiring after ttl
func (s *Store) SaveSnapshot(ctx context.Context, instanceID string, snap status.Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, SnapshotKey(instanceID), data, ttl)
	pipe.SAdd(ctx, AllSnapshotsKey(), instanceID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the snapshot of an instance
func (s *Store) GetSnapshot(ctx context.Context, instanceID string) (status.Snapshot, error) {
	data, err := s.client.Get(ctx, SnapshotKey(instanceID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return status.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, instanceID)
		}
		return status.Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap status.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return status.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return snap, nil
}

// GetAllSnapshots returns the live snapshots keyed by instance ID.
// Instances whose snapshot has expired are pruned from the index set.
func (s *Store) GetAllSnapshots(ctx context.Context) (map[string]status.Snapshot, error) {
	ids, err := s.client.SMembers(ctx, AllSnapshotsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get instance IDs: %w", err)
	}

	snaps := make(map[string]status.Snapshot, len(ids))
	var expired []interface{}
	for _, id := range ids {
		snap, err := s.GetSnapshot(ctx, id)
		if errors.Is(err, ErrNotFound) {
			expired = append(expired, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		snaps[id] = snap
	}

	if len(expired) > 0 {
		if err := s.client.SRem(ctx, AllSnapshotsKey(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired instances: %w", err)
		}
	}

	return snaps, nil
}

// DeleteSnapshot removes the snapshot of an instance
func (s *Store) DeleteSnapshot(ctx context.Context, instanceID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, SnapshotKey(instanceID))
	pipe.SRem(ctx, AllSnapshotsKey(), instanceID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

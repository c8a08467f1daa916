package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/darrylwest/service-uptime/pkg/status"
	"github.com/darrylwest/service-uptime/pkg/uptime"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func snapshotAt(secs, errs, access uint64) status.Snapshot {
	return status.Snapshot{
		Uptime:        uptime.SecondsToHMS(secs),
		UptimeSeconds: secs,
		StartedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Errors:        errs,
		Access:        access,
	}
}

func TestSaveAndGetSnapshot(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	want := snapshotAt(90061, 2, 40)
	if err := s.SaveSnapshot(ctx, "node-1", want, time.Minute); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	if ttl := mr.TTL(SnapshotKey("node-1")); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}
	if ok, _ := mr.SIsMember(AllSnapshotsKey(), "node-1"); !ok {
		t.Error("node-1 missing from the index set")
	}

	got, err := s.GetSnapshot(ctx, "node-1")
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}
	if got.Uptime != want.Uptime || got.UptimeSeconds != want.UptimeSeconds ||
		got.Errors != want.Errors || got.Access != want.Access || !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("GetSnapshot() = %+v, want %+v", got, want)
	}
}

func TestGetSnapshotNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.GetSnapshot(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSnapshot() error = %v, want ErrNotFound", err)
	}
}

func TestGetAllSnapshotsPrunesExpired(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	if err := s.SaveSnapshot(ctx, "short", snapshotAt(1, 0, 1), 10*time.Second); err != nil {
		t.Fatalf("SaveSnapshot(short) error = %v", err)
	}
	if err := s.SaveSnapshot(ctx, "long", snapshotAt(2, 0, 2), time.Hour); err != nil {
		t.Fatalf("SaveSnapshot(long) error = %v", err)
	}

	all, err := s.GetAllSnapshots(ctx)
	if err != nil {
		t.Fatalf("GetAllSnapshots() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllSnapshots() returned %d instances, want 2", len(all))
	}

	mr.FastForward(11 * time.Second)

	all, err = s.GetAllSnapshots(ctx)
	if err != nil {
		t.Fatalf("GetAllSnapshots() after expiry error = %v", err)
	}
	if _, ok := all["short"]; ok || len(all) != 1 {
		t.Errorf("GetAllSnapshots() = %v, want only long", all)
	}
	if all["long"].Access != 2 {
		t.Errorf("long access = %d, want 2", all["long"].Access)
	}
	if ok, _ := mr.SIsMember(AllSnapshotsKey(), "short"); ok {
		t.Error("expired id short should have been pruned from the index set")
	}
}

func TestDeleteSnapshot(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	if err := s.SaveSnapshot(ctx, "node-1", snapshotAt(5, 0, 0), time.Minute); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if err := s.DeleteSnapshot(ctx, "node-1"); err != nil {
		t.Fatalf("DeleteSnapshot() error = %v", err)
	}

	if mr.Exists(SnapshotKey("node-1")) {
		t.Error("snapshot key still exists after delete")
	}
	if ok, _ := mr.SIsMember(AllSnapshotsKey(), "node-1"); ok {
		t.Error("node-1 still in the index set after delete")
	}
	if _, err := s.GetSnapshot(ctx, "node-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSnapshot() after delete error = %v, want ErrNotFound", err)
	}
}

func TestInstanceNamedAllKeepsFleetIndex(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	for _, id := range []string{"node-a", "all", "index"} {
		if err := s.SaveSnapshot(ctx, id, snapshotAt(1, 0, 0), time.Minute); err != nil {
			t.Fatalf("SaveSnapshot(%q) error = %v", id, err)
		}
	}

	all, err := s.GetAllSnapshots(ctx)
	if err != nil {
		t.Fatalf("GetAllSnapshots() error = %v", err)
	}
	for _, id := range []string{"node-a", "all", "index"} {
		if _, ok := all[id]; !ok {
			t.Errorf("instance %q missing from fleet %v", id, all)
		}
	}
}

func TestPing(t *testing.T) {
	s, mr := newTestStore(t)

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	mr.Close()
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail once the server is gone")
	}
}

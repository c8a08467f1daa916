package redis

const (
	// KeyPrefixSnapshot is the prefix for per-instance status snapshots
	KeyPrefixSnapshot = "uptime:status:"
	// KeyAllSnapshots is the set of instance IDs with a published snapshot.
	// It lives outside KeyPrefixSnapshot so no instance ID can collide with it.
	KeyAllSnapshots = "uptime:index:status"
)

// SnapshotKey returns the Redis key for an instance's snapshot
func SnapshotKey(instanceID string) string {
	return KeyPrefixSnapshot + instanceID
}

// AllSnapshotsKey returns the key for the set of all instance IDs
func AllSnapshotsKey() string {
	return KeyAllSnapshots
}

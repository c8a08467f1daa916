package deps

import (
	"context"
	"net/http"

	"github.com/darrylwest/service-uptime/internal/logger"
	"github.com/darrylwest/service-uptime/pkg/status"
)

// SnapshotReader reads snapshots published by every live instance.
type SnapshotReader interface {
	GetAllSnapshots(ctx context.Context) (map[string]status.Snapshot, error)
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	Status       status.ServiceStatus // shared with the reporter and the metrics collector
	ServiceName  string
	InstanceID   string
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	AllowedCIDRS []string       // IPs allowed to access /status and /metrics endpoints
	AllowedHosts []string       // Host headers allowed to access /status endpoints
	TrustProxy   bool           // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimit    RateLimit      // per-client throttling of /status endpoints
	Store        SnapshotReader // nil when redis is disabled
	Metrics      http.Handler   // nil when metrics are disabled
}

// RateLimit is the per-client token bucket applied to /status. Burst 0 disables it.
type RateLimit struct {
	Burst     int
	PerMinute int
}

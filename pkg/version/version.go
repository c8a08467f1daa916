// Package version holds build metadata, set at link time with
// -ldflags "-X github.com/darrylwest/service-uptime/pkg/version.Version=v0.1.0".
package version

import (
	"runtime"
	"time"
)

// Build metadata. Each is overridable with -X at link time.
var (
	// Version is the release identifier, "dev" for untagged builds.
	Version = "dev"
	// Commit is the short VCS revision, "none" when not injected.
	Commit = "none"
	// BuildDate is RFC 3339. Without -X it holds the process start time, not the build time.
	BuildDate = time.Now().Format(time.RFC3339)
	// GoVersion is the toolchain that built the binary.
	GoVersion = runtime.Version()
)

// String renders "<version> (commit=<commit>, built=<date>, go=<go version>)".
func String() string {
	return Version + " (commit=" + Commit + ", built=" + BuildDate + ", go=" + GoVersion + ")"
}

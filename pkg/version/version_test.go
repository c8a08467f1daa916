package version

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultBuildDateIsRFC3339(t *testing.T) {
	if _, err := time.Parse(time.RFC3339, BuildDate); err != nil {
		t.Errorf("BuildDate %q is not RFC 3339: %v", BuildDate, err)
	}
}

func TestString(t *testing.T) {
	defer func(v, c, b, g string) { Version, Commit, BuildDate, GoVersion = v, c, b, g }(Version, Commit, BuildDate, GoVersion)

	Version, Commit, BuildDate, GoVersion = "v0.1.0", "abcd123", "2024-01-01T00:00:00Z", "go1.25.5"

	want := "v0.1.0 (commit=abcd123, built=2024-01-01T00:00:00Z, go=go1.25.5)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(String(), Version) {
		t.Error("String() should lead with the version")
	}
}

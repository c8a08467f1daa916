// Package status combines an Uptime with error and access counters into a
// minimal service status report.
package status

import (
	"fmt"
	"time"

	"github.com/darrylwest/service-uptime/pkg/counter"
	"github.com/darrylwest/service-uptime/pkg/uptime"
)

// ServiceStatus holds the uptime, errors and access state of a service.
//
// Callers mutate Errors and Access directly. Copying a ServiceStatus is
// shallow: the copy's counters share storage with the original.
type ServiceStatus struct {
	Uptime uptime.Uptime
	Errors counter.Counter
	Access counter.Counter
}

// Create returns a status whose uptime starts now and whose counters are zero.
func Create() ServiceStatus {
	return CreateWithClock(uptime.SystemClock())
}

// CreateWithClock is Create with an explicit time source.
func CreateWithClock(c uptime.Clock) ServiceStatus {
	return ServiceStatus{
		Uptime: uptime.NewWithClock(c),
		Errors: counter.Create(),
		Access: counter.Create(),
	}
}

// String renders "uptime: <uptime>, errors: <n>, access: <n>".
func (s ServiceStatus) String() string {
	return render(s.Uptime.Get(), s.Errors.Count(), s.Access.Count())
}

// Snapshot is a point-in-time copy of a ServiceStatus.
type Snapshot struct {
	Uptime        uptime.DaysHoursMinutesSeconds `json:"uptime" yaml:"uptime"`
	UptimeSeconds uint64                         `json:"uptime_seconds" yaml:"uptime_seconds"`
	StartedAt     time.Time                      `json:"started_at" yaml:"started_at"`
	Errors        uint64                         `json:"errors" yaml:"errors"`
	Access        uint64                         `json:"access" yaml:"access"`
}

// Snapshot reads the current values. Each field is read atomically; the
// snapshot as a whole is not.
func (s ServiceStatus) Snapshot() Snapshot {
	secs := s.Uptime.Seconds()
	return Snapshot{
		Uptime:        uptime.SecondsToHMS(secs),
		UptimeSeconds: secs,
		StartedAt:     s.Uptime.StartedAt(),
		Errors:        s.Errors.Count(),
		Access:        s.Access.Count(),
	}
}

func (s Snapshot) String() string {
	return render(s.Uptime, s.Errors, s.Access)
}

func render(up uptime.DaysHoursMinutesSeconds, errors, access uint64) string {
	return fmt.Sprintf("uptime: %s, errors: %d, access: %d", up, errors, access)
}

package uptime

import "fmt"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// DaysHoursMinutesSeconds is the canonical breakdown of a seconds count.
// Seconds and Minutes are in [0,59], Hours in [0,23]; Days is unbounded.
//
// The zero value is the zero duration.
type DaysHoursMinutesSeconds struct {
	Seconds uint64 `json:"seconds" yaml:"seconds"`
	Minutes uint64 `json:"minutes" yaml:"minutes"`
	Hours   uint64 `json:"hours" yaml:"hours"`
	Days    uint64 `json:"days" yaml:"days"`
}

// SecondsToHMS converts seconds to days, hours, minutes and seconds.
func SecondsToHMS(seconds uint64) DaysHoursMinutesSeconds {
	return DaysHoursMinutesSeconds{
		Seconds: seconds % secondsPerMinute,
		Minutes: (seconds % secondsPerHour) / secondsPerMinute,
		Hours:   (seconds % secondsPerDay) / secondsPerHour,
		Days:    seconds / secondsPerDay,
	}
}

// FromSeconds is an alias for SecondsToHMS.
func FromSeconds(seconds uint64) DaysHoursMinutesSeconds {
	return SecondsToHMS(seconds)
}

// TotalSeconds reassembles the breakdown into a seconds count.
func (d DaysHoursMinutesSeconds) TotalSeconds() uint64 {
	return d.Days*secondsPerDay + d.Hours*secondsPerHour + d.Minutes*secondsPerMinute + d.Seconds
}

// Compare orders chronologically, most significant unit first.
// It returns -1, 0 or +1.
func (d DaysHoursMinutesSeconds) Compare(o DaysHoursMinutesSeconds) int {
	for _, p := range [...][2]uint64{
		{d.Days, o.Days},
		{d.Hours, o.Hours},
		{d.Minutes, o.Minutes},
		{d.Seconds, o.Seconds},
	} {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// Less reports whether d is shorter than o.
func (d DaysHoursMinutesSeconds) Less(o DaysHoursMinutesSeconds) bool {
	return d.Compare(o) < 0
}

// String renders "<days> days, <HH>:<MM>:<SS> hms".
func (d DaysHoursMinutesSeconds) String() string {
	return fmt.Sprintf("%d days, %02d:%02d:%02d hms", d.Days, d.Hours, d.Minutes, d.Seconds)
}

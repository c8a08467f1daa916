package uptime

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSecondsToHMS(t *testing.T) {
	tests := []struct {
		name    string
		seconds uint64
		want    DaysHoursMinutesSeconds
	}{
		{name: "zero", seconds: 0, want: DaysHoursMinutesSeconds{}},
		{name: "59 seconds", seconds: 59, want: DaysHoursMinutesSeconds{Seconds: 59}},
		{name: "one minute", seconds: 60, want: DaysHoursMinutesSeconds{Minutes: 1}},
		{name: "61 seconds", seconds: 61, want: DaysHoursMinutesSeconds{Minutes: 1, Seconds: 1}},
		{name: "one hour", seconds: 3600, want: DaysHoursMinutesSeconds{Hours: 1}},
		{name: "one hour one minute one second", seconds: 3661, want: DaysHoursMinutesSeconds{Hours: 1, Minutes: 1, Seconds: 1}},
		{name: "fifteen hours", seconds: 54000, want: DaysHoursMinutesSeconds{Hours: 15}},
		{name: "one day", seconds: 86400, want: DaysHoursMinutesSeconds{Days: 1}},
		{name: "one day one hour", seconds: 90000, want: DaysHoursMinutesSeconds{Days: 1, Hours: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SecondsToHMS(tt.seconds)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, FromSeconds(tt.seconds))
		})
	}
}

func TestSecondsToHMSRanges(t *testing.T) {
	for s := uint64(0); s < 100000; s++ {
		p := SecondsToHMS(s)
		if p.Seconds > 59 || p.Minutes > 59 || p.Hours > 23 || p.Days > 3 {
			t.Fatalf("SecondsToHMS(%d) = %+v out of range", s, p)
		}
		if p.TotalSeconds() != s {
			t.Fatalf("SecondsToHMS(%d).TotalSeconds() = %d", s, p.TotalSeconds())
		}
	}
}

func TestSecondsToHMSLargeInputs(t *testing.T) {
	tenYears := uint64(10 * 365 * secondsPerDay)
	for _, s := range []uint64{tenYears, tenYears + 86399, math.MaxUint64} {
		p := SecondsToHMS(s)
		assert.Equal(t, s, p.TotalSeconds())
		assert.LessOrEqual(t, p.Hours, uint64(23))
		assert.LessOrEqual(t, p.Minutes, uint64(59))
		assert.LessOrEqual(t, p.Seconds, uint64(59))
	}
}

func TestDaysHoursMinutesSecondsString(t *testing.T) {
	assert.Equal(t, "0 days, 00:00:00 hms", DaysHoursMinutesSeconds{}.String())
	assert.Equal(t, "0 days, 01:01:01 hms", SecondsToHMS(3661).String())
	assert.Equal(t, "120 days, 23:59:59 hms", SecondsToHMS(121*secondsPerDay-1).String())
}

func TestCompareIsChronological(t *testing.T) {
	oneDay := DaysHoursMinutesSeconds{Days: 1}
	almostAMinute := DaysHoursMinutesSeconds{Seconds: 59}

	assert.True(t, almostAMinute.Less(oneDay))
	assert.False(t, oneDay.Less(almostAMinute))
	assert.Equal(t, 1, oneDay.Compare(almostAMinute))
	assert.Equal(t, 0, oneDay.Compare(SecondsToHMS(86400)))

	for _, pair := range [][2]uint64{{0, 1}, {59, 60}, {3599, 3600}, {86399, 86400}, {90000, 90061}} {
		a, b := SecondsToHMS(pair[0]), SecondsToHMS(pair[1])
		assert.Equal(t, -1, a.Compare(b), "%v vs %v", a, b)
		assert.Equal(t, 1, b.Compare(a), "%v vs %v", b, a)
	}
}

func TestDaysHoursMinutesSecondsWireNames(t *testing.T) {
	p := SecondsToHMS(90061)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"seconds":1,"minutes":1,"hours":1,"days":1}`, string(data))

	var fromYAML DaysHoursMinutesSeconds
	require.NoError(t, yaml.Unmarshal([]byte("days: 1\nhours: 1\nminutes: 1\nseconds: 1\n"), &fromYAML))
	assert.Equal(t, p, fromYAML)
}

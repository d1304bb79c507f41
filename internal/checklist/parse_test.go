package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelayToSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"N/A", 0},
		{"On Time", 0},
		{"on time", 0},
		{"3:15:00", 11700},
		{"2 D 3:15:00", 184500},
		{"2 d 3:15:00", 184500},
		{"50:00:00", 180000},
		{"1 D 2 h 5 m", 86400 + 7200 + 300},
		{"4h", 14400},
		{"45 M", 2700},
		{"2 days 3 hrs 10 mins", 2*86400 + 3*3600 + 600},
		{"1 day", 86400},
		{"5 hours", 18000},
		{"garbage", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DelayToSeconds(tc.in), "input %q", tc.in)
	}
}

func TestDelayParsersIndividually(t *testing.T) {
	secs, ok := clockParser{}.Parse("1 D 0:00:01")
	assert.True(t, ok)
	assert.Equal(t, int64(86401), secs)

	_, ok = clockParser{}.Parse("1 day")
	assert.False(t, ok)

	_, ok = unitLetterParser{}.Parse("2 days")
	assert.False(t, ok, "plural words belong to the verbose parser")

	secs, ok = verboseUnitParser{}.Parse("2 days")
	assert.True(t, ok)
	assert.Equal(t, int64(172800), secs)

	_, ok = literalParser{}.Parse("3:00:00")
	assert.False(t, ok)
}

func TestDelayRoundTrip(t *testing.T) {
	for _, secs := range []int64{0, 1, 59, 3600, 86399, 86400, 184500, 10*86400 + 7} {
		assert.Equal(t, secs, DelayToSeconds(FormatDelay(secs)), "seconds %d", secs)
		assert.Equal(t, secs, DelayToSeconds(FormatClock(secs)), "seconds %d", secs)
	}
}

func TestDurationToSeconds(t *testing.T) {
	assert.Equal(t, int64(5400), DurationToSeconds("01:30:00"))
	assert.Equal(t, int64(5400), DurationToSeconds("01:30"))
	assert.Equal(t, int64(5400), DurationToSeconds("90"))
	assert.Equal(t, int64(216000), DurationToSeconds("3600"))
	assert.Equal(t, int64(3601), DurationToSeconds("3601"))
	assert.Equal(t, int64(7200), DurationToSeconds("7200"))
	assert.Equal(t, int64(0), DurationToSeconds(""))
	assert.Equal(t, int64(0), DurationToSeconds("soon"))
	assert.Equal(t, int64(90), DurationToSeconds("1.5"))
	for _, bad := range []string{"NaN", "Inf", "-Inf", "-5", "1e300"} {
		assert.Equal(t, int64(0), DurationToSeconds(bad), "input %q", bad)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatClock(-5))
	assert.Equal(t, "26:00:00", FormatClock(26*3600))
	assert.Equal(t, "1 D 2:00:00", FormatDelay(26*3600))
	assert.Equal(t, "2 D 3:15:00", DisplayDelay("51:15:00"))
	assert.Equal(t, "late-ish", DisplayDelay("late-ish"))
	assert.Equal(t, "12 D 3:15...", TruncateDelay("12 D 3:15:00 extra", 12))
	assert.Equal(t, "1:00:00", TruncateDelay("1:00:00", 12))
}

package checklist

import (
	"strings"
	"time"
)

// Frequency is the recurrence rule of a checklist request.
type Frequency int

const (
	// FrequencyUnknown covers any label outside the table below. It recurs daily.
	FrequencyUnknown Frequency = iota
	FrequencyDaily
	FrequencyWeekly
	FrequencyFortnightly
	FrequencyMonthly
	FrequencyQuarterly
	FrequencyYearly
)

var frequencyLabels = map[string]Frequency{
	"daily":       FrequencyDaily,
	"weekly":      FrequencyWeekly,
	"fortnightly": FrequencyFortnightly,
	"monthly":     FrequencyMonthly,
	"quarterly":   FrequencyQuarterly,
	"yearly":      FrequencyYearly,
}

// ParseFrequency maps a label by exact match. Anything else, including
// different casing, is FrequencyUnknown.
func ParseFrequency(label string) Frequency {
	if f, ok := frequencyLabels[label]; ok {
		return f
	}
	return FrequencyUnknown
}

func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	case FrequencyFortnightly:
		return "fortnightly"
	case FrequencyMonthly:
		return "monthly"
	case FrequencyQuarterly:
		return "quarterly"
	case FrequencyYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// Interval is a calendar step: a number of days or a number of months.
type Interval struct {
	Days   int
	Months int
}

// Interval returns the step applied between two occurrences.
func (f Frequency) Interval() Interval {
	switch f {
	case FrequencyDaily, FrequencyUnknown:
		return Interval{Days: 1}
	case FrequencyWeekly:
		return Interval{Days: 7}
	case FrequencyFortnightly:
		return Interval{Days: 14}
	case FrequencyMonthly:
		return Interval{Months: 1}
	case FrequencyQuarterly:
		return Interval{Months: 3}
	case FrequencyYearly:
		return Interval{Months: 12}
	default:
		return Interval{Days: 1}
	}
}

// Occurrence returns the n-th occurrence counted from anchor. Month steps
// keep the anchor's day of month and clamp it to the last day of shorter
// months, so Jan 31 monthly gives Feb 29 (leap year) then Mar 31.
func (i Interval) Occurrence(anchor time.Time, n int) time.Time {
	if i.Months == 0 {
		return anchor.AddDate(0, 0, i.Days*n)
	}
	y, m, d := anchor.Date()
	total := int(m) - 1 + i.Months*n
	year := y + total/12
	month := time.Month(total%12 + 1)
	if last := daysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, anchor.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NormalizeLabel trims a user-supplied frequency label. It does not lower-case
// it: matching stays exact.
func NormalizeLabel(label string) string {
	return strings.TrimSpace(label)
}

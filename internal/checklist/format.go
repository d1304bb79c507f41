package checklist

import "fmt"

// FormatClock renders seconds as H:MM:SS with unbounded hours.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// FormatDelay renders the canonical delay string, "N D H:MM:SS" once the
// delay reaches a full day.
func FormatDelay(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	if days == 0 {
		return FormatClock(seconds)
	}
	return fmt.Sprintf("%d D %s", days, FormatClock(seconds%86400))
}

// DisplayDelay relabels a stored delay in canonical form. Text that does
// not parse to a positive delay is shown as stored.
func DisplayDelay(stored string) string {
	if secs := DelayToSeconds(stored); secs > 0 {
		return FormatDelay(secs)
	}
	return stored
}

// TruncateDelay shortens a display string for narrow table cells; the full
// text goes into the tooltip.
func TruncateDelay(display string, limit int) string {
	r := []rune(display)
	if limit <= 3 || len(r) <= limit {
		return display
	}
	return string(r[:limit-3]) + "..."
}

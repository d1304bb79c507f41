package checklist

import (
	"strings"
	"time"

	"checklist_manager/internal/models"
)

// Result is the derived lateness of one subtask at a given instant.
type Result struct {
	IsDelayed    bool   `json:"is_delayed"`
	DelayDisplay string `json:"delay_display"`
	// ShouldPersist is set when IsDelayed/NewDelayDuration differ from the row.
	ShouldPersist    bool    `json:"-"`
	NewDelayDuration *string `json:"-"`
}

// PlannedCutoff is the end of the planned day in loc. Planned dates carry no
// time, so 23:59:59 stands in for the deadline.
func PlannedCutoff(planned time.Time, loc *time.Location) time.Time {
	y, m, d := planned.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}

// Classify derives whether s is late at now. Pending rows (and statuses this
// package does not know) are recomputed against the planned cutoff on every
// call and compared with the stored fields, so the delay grows until the row
// is closed. Other rows use the first matching rule: a stored delay, then the
// completed flag, then N/A.
// It never touches the database; see services.Reconcile for persistence.
func Classify(s *models.ChecklistSubtask, now time.Time) Result {
	stored := strings.TrimSpace(s.StoredDelay())
	status := models.SubtaskStatus(s.Status)

	if usesLiveDelay(status) {
		return classifyLive(s, stored, now)
	}

	if hasRecordedDelay(stored) && status != models.StatusCantBeDone {
		return Result{IsDelayed: true, DelayDisplay: DisplayDelay(stored)}
	}

	if status == models.StatusCompleted {
		if s.IsDelayed && stored != "" {
			return Result{IsDelayed: true, DelayDisplay: DisplayDelay(stored)}
		}
		return Result{DelayDisplay: DelayOnTime}
	}

	return Result{DelayDisplay: DelayNotApplicable}
}

func classifyLive(s *models.ChecklistSubtask, stored string, now time.Time) Result {
	cutoff := PlannedCutoff(s.PlannedDate, now.Location())
	if !now.After(cutoff) {
		return Result{
			DelayDisplay:  DelayNotApplicable,
			ShouldPersist: s.IsDelayed || hasRecordedDelay(stored),
		}
	}
	delay := FormatClock(int64(now.Sub(cutoff) / time.Second))
	return Result{
		IsDelayed:        true,
		DelayDisplay:     DisplayDelay(delay),
		ShouldPersist:    !s.IsDelayed || stored != delay,
		NewDelayDuration: &delay,
	}
}

func hasRecordedDelay(stored string) bool {
	return stored != "" &&
		!strings.EqualFold(stored, DelayNotApplicable) &&
		!strings.EqualFold(stored, DelayOnTime)
}

// usesLiveDelay reports whether status is pending or a value this package
// does not know; every known terminal status relies on persisted fields.
func usesLiveDelay(status models.SubtaskStatus) bool {
	switch status {
	case models.StatusCompleted, models.StatusNotDone, models.StatusCantBeDone, models.StatusShifted:
		return false
	default:
		return true
	}
}

// CompletionDelay is the lateness of a completion stamped at `at`, zero
// when the subtask was finished by the end of its planned day.
func CompletionDelay(planned, at time.Time) (time.Duration, bool) {
	cutoff := PlannedCutoff(planned, at.Location())
	if !at.After(cutoff) {
		return 0, false
	}
	return at.Sub(cutoff), true
}

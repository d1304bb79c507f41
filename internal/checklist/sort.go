package checklist

import (
	"sort"

	"checklist_manager/internal/models"
)

// Row is a subtask together with its classification, as shown in the list view.
type Row struct {
	Subtask      models.ChecklistSubtask `json:"subtask"`
	IsDelayed    bool                    `json:"is_delayed"`
	DelayDisplay string                  `json:"delay_display"`
	DelayShort   string                  `json:"delay_short"`
}

// DelayCellWidth is the width of the delay column before truncation.
const DelayCellWidth = 12

func NewRow(s models.ChecklistSubtask, r Result) Row {
	return Row{
		Subtask:      s,
		IsDelayed:    r.IsDelayed,
		DelayDisplay: r.DelayDisplay,
		DelayShort:   TruncateDelay(r.DelayDisplay, DelayCellWidth),
	}
}

type SortField string

const (
	SortPlannedDate SortField = "planned_date"
	SortDelay       SortField = "delay"
	SortDuration    SortField = "duration"
)

// ParseSortField falls back to planned date for unknown columns.
func ParseSortField(raw string) SortField {
	switch f := SortField(raw); f {
	case SortDelay, SortDuration:
		return f
	default:
		return SortPlannedDate
	}
}

// SortRows orders rows in place. Ties keep planned date, then id, ascending.
func SortRows(rows []Row, field SortField, desc bool) {
	key := func(r Row) int64 {
		switch field {
		case SortDelay:
			return DelayToSeconds(r.DelayDisplay)
		case SortDuration:
			return DurationToSeconds(r.Subtask.Duration)
		default:
			return r.Subtask.PlannedDate.Unix()
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := key(rows[i]), key(rows[j])
		if a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		pa, pb := rows[i].Subtask.PlannedDate, rows[j].Subtask.PlannedDate
		if !pa.Equal(pb) {
			return pa.Before(pb)
		}
		return rows[i].Subtask.ID < rows[j].Subtask.ID
	})
}

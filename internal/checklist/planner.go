package checklist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of planned dates.
const DateLayout = "2006-01-02"

var ErrValidation = errors.New("validation failed")

// Request is the transient input of one generation run.
type Request struct {
	AssigneeID  uint   `json:"assignee_id"`
	AssignedBy  string `json:"assigned_by"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Frequency   string `json:"frequency"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// ValidRequest is a Request whose dates and duration have been parsed.
type ValidRequest struct {
	AssigneeID     uint
	AssignedBy     string
	Start          time.Time
	End            time.Time
	Frequency      Frequency
	FrequencyLabel string
	Duration       string
	Description    string
}

// Validate checks every field before any side effect happens. Dates are
// interpreted as calendar days in loc.
func (r Request) Validate(loc *time.Location) (ValidRequest, error) {
	var missing []string
	if r.AssigneeID == 0 {
		missing = append(missing, "assignee_id")
	}
	if strings.TrimSpace(r.AssignedBy) == "" {
		missing = append(missing, "assigned_by")
	}
	if strings.TrimSpace(r.StartDate) == "" {
		missing = append(missing, "start_date")
	}
	if strings.TrimSpace(r.EndDate) == "" {
		missing = append(missing, "end_date")
	}
	if NormalizeLabel(r.Frequency) == "" {
		missing = append(missing, "frequency")
	}
	if strings.TrimSpace(r.Duration) == "" {
		missing = append(missing, "duration")
	}
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return ValidRequest{}, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	start, err := time.ParseInLocation(DateLayout, strings.TrimSpace(r.StartDate), loc)
	if err != nil {
		return ValidRequest{}, fmt.Errorf("%w: invalid start_date %q", ErrValidation, r.StartDate)
	}
	end, err := time.ParseInLocation(DateLayout, strings.TrimSpace(r.EndDate), loc)
	if err != nil {
		return ValidRequest{}, fmt.Errorf("%w: invalid end_date %q", ErrValidation, r.EndDate)
	}
	if start.After(end) {
		return ValidRequest{}, fmt.Errorf("%w: start_date %s is after end_date %s", ErrValidation, r.StartDate, r.EndDate)
	}
	duration, err := normalizeSpan(r.Duration)
	if err != nil {
		return ValidRequest{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	label := NormalizeLabel(r.Frequency)
	return ValidRequest{
		AssigneeID:     r.AssigneeID,
		AssignedBy:     strings.TrimSpace(r.AssignedBy),
		Start:          start,
		End:            end,
		Frequency:      ParseFrequency(label),
		FrequencyLabel: label,
		Duration:       duration,
		Description:    strings.TrimSpace(r.Description),
	}, nil
}

// normalizeSpan accepts HH:MM or HH:MM:SS and returns HH:MM:SS.
func normalizeSpan(raw string) (string, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", fmt.Errorf("invalid duration %q, expected HH:MM:SS", raw)
	}
	values := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return "", fmt.Errorf("invalid duration %q, expected HH:MM:SS", raw)
		}
		if i > 0 && v > 59 {
			return "", fmt.Errorf("invalid duration %q, minutes and seconds must be below 60", raw)
		}
		values[i] = v
	}
	return fmt.Sprintf("%02d:%02d:%02d", values[0], values[1], values[2]), nil
}

// DateSet is a flat set of calendar days.
type DateSet map[string]struct{}

func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (s DateSet) Add(d time.Time) {
	s[d.Format(DateLayout)] = struct{}{}
}

func (s DateSet) Contains(d time.Time) bool {
	_, ok := s[d.Format(DateLayout)]
	return ok
}

// Plan is the outcome of walking a request's date range.
type Plan struct {
	Dates   []time.Time
	Skipped []string
}

// BuildPlan walks start..end inclusive with the request's interval, dropping
// holidays and Sundays. A Sunday is annotated "(Sunday)" even when it is also
// a holiday.
func BuildPlan(req ValidRequest, holidays DateSet) Plan {
	var plan Plan
	interval := req.Frequency.Interval()
	seen := make(map[string]struct{})
	for n := 0; ; n++ {
		d := interval.Occurrence(req.Start, n)
		if d.After(req.End) {
			break
		}
		key := d.Format(DateLayout)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		switch {
		case d.Weekday() == time.Sunday:
			plan.Skipped = append(plan.Skipped, key+" (Sunday)")
		case holidays.Contains(d):
			plan.Skipped = append(plan.Skipped, key+" (Holiday)")
		default:
			plan.Dates = append(plan.Dates, d)
		}
	}
	return plan
}

var subtaskNamespace = uuid.MustParse("6f1c2b8e-3d4a-5e6f-8a9b-0c1d2e3f4a5b")

// SubtaskCode derives the stable identity of one occurrence.
func SubtaskCode(description string, date time.Time, assigneeID uint) string {
	name := description + date.Format(DateLayout) + strconv.FormatUint(uint64(assigneeID), 10)
	return uuid.NewSHA1(subtaskNamespace, []byte(name)).String()
}

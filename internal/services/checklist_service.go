package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checklist_manager/internal/checklist"
	"checklist_manager/internal/models"
	"checklist_manager/internal/repository"

	log "github.com/sirupsen/logrus"
)

// NoSubtasksMessage is shown when a run created nothing.
const NoSubtasksMessage = "No subtasks generated"

// GenerateResult reports one generation run. Created == 0 is a valid,
// non-error outcome.
type GenerateResult struct {
	Created      int      `json:"created"`
	SkippedDates []string `json:"skipped_dates"`
	// FailedDates were planned but their insert failed and was skipped.
	FailedDates []string `json:"failed_dates,omitempty"`
}

func (r *GenerateResult) Empty() bool {
	return r.Created == 0
}

func (r *GenerateResult) Message() string {
	if r.Empty() {
		return NoSubtasksMessage
	}
	if r.Created == 1 {
		return "1 subtask generated"
	}
	return fmt.Sprintf("%d subtasks generated", r.Created)
}

// ListQuery carries the list view's filters and sort column.
type ListQuery struct {
	AssigneeID uint
	Status     string
	From       string
	To         string
	Sort       string
	Desc       bool
}

type ChecklistService interface {
	Generate(ctx context.Context, auth *AuthContext, req checklist.Request) (*GenerateResult, error)
	List(ctx context.Context, auth *AuthContext, q ListQuery, now time.Time) ([]checklist.Row, error)
	Reconcile(ctx context.Context, subtask *models.ChecklistSubtask, now time.Time) checklist.Result
	ReconcilePending(ctx context.Context, now time.Time) (int, error)
	UpdateStatus(ctx context.Context, auth *AuthContext, id uint, status string, at time.Time) (*models.ChecklistSubtask, error)
}

type checklistService struct {
	subtaskRepo repository.SubtaskRepository
	holidays    HolidayService
	notifier    DelayNotifier
	loc         *time.Location
}

func NewChecklistService(subtaskRepo repository.SubtaskRepository, holidays HolidayService, notifier DelayNotifier, loc *time.Location) ChecklistService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if loc == nil {
		loc = time.Local
	}
	return &checklistService{subtaskRepo: subtaskRepo, holidays: holidays, notifier: notifier, loc: loc}
}

// Generate validates req, expands it into dated rows and inserts them in one
// transaction. Nothing is written when validation or authorization fails.
func (s *checklistService) Generate(ctx context.Context, auth *AuthContext, req checklist.Request) (*GenerateResult, error) {
	if req.AssignedBy == "" {
		req.AssignedBy = auth.ActorName()
	}
	valid, err := req.Validate(s.loc)
	if err != nil {
		return nil, err
	}
	assignee, ok := auth.Assignee(valid.AssigneeID)
	if !ok {
		return nil, ErrForbiddenAssignee
	}

	holidays, err := s.holidays.GetHolidays(ctx)
	if err != nil {
		return nil, err
	}
	plan := checklist.BuildPlan(valid, holidays)

	rows := make([]*models.ChecklistSubtask, 0, len(plan.Dates))
	for _, d := range plan.Dates {
		rows = append(rows, &models.ChecklistSubtask{
			Code:             checklist.SubtaskCode(valid.Description, d, assignee.ID),
			AssigneeID:       assignee.ID,
			AssigneeUsername: assignee.Username,
			AssigneeName:     assignee.DisplayName(),
			Department:       assignee.Department,
			Description:      valid.Description,
			Frequency:        valid.FrequencyLabel,
			Duration:         valid.Duration,
			PlannedDate:      calendarDay(d),
			Status:           string(models.StatusPending),
			AssignedBy:       valid.AssignedBy,
		})
	}

	result := &GenerateResult{SkippedDates: plan.Skipped}
	if result.SkippedDates == nil {
		result.SkippedDates = []string{}
	}
	created, err := s.subtaskRepo.InsertGenerated(ctx, rows, func(row *models.ChecklistSubtask, err error) {
		date := row.PlannedDate.Format(checklist.DateLayout)
		log.WithFields(log.Fields{"date": date, "assignee_id": row.AssigneeID}).
			Warnf("Skipping subtask, insert failed: %v", err)
		result.FailedDates = append(result.FailedDates, date)
	})
	if err != nil {
		return nil, fmt.Errorf("generate subtasks: %w", err)
	}
	result.Created = created

	entry := log.WithFields(log.Fields{
		"assignee_id": assignee.ID,
		"frequency":   valid.FrequencyLabel,
		"created":     created,
		"skipped":     len(plan.Skipped),
	})
	if valid.Frequency == checklist.FrequencyUnknown {
		entry.Warnf("Unrecognized frequency %q, generated daily", valid.FrequencyLabel)
	}
	entry.Info(result.Message())
	return result, nil
}

// List returns the visible rows classified at now, persisting changed delay
// fields row by row along the way.
func (s *checklistService) List(ctx context.Context, auth *AuthContext, q ListQuery, now time.Time) ([]checklist.Row, error) {
	filter := repository.SubtaskFilter{
		AssigneeIDs: auth.VisibleAssigneeIDs(),
		AssigneeID:  q.AssigneeID,
		Status:      q.Status,
	}
	if q.From != "" {
		from, err := parseDay(q.From)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := parseDay(q.To)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	subtasks, err := s.subtaskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}

	rows := make([]checklist.Row, 0, len(subtasks))
	for i := range subtasks {
		result := s.Reconcile(ctx, &subtasks[i], now)
		rows = append(rows, checklist.NewRow(subtasks[i], result))
	}
	checklist.SortRows(rows, checklist.ParseSortField(q.Sort), q.Desc)
	return rows, nil
}

// Reconcile classifies subtask and writes the delay fields when they changed.
// A failed write is logged and the computed result is still returned.
func (s *checklistService) Reconcile(ctx context.Context, subtask *models.ChecklistSubtask, now time.Time) checklist.Result {
	result, _ := s.reconcile(ctx, subtask, now)
	return result
}

// reconcile reports whether the delay fields were written.
func (s *checklistService) reconcile(ctx context.Context, subtask *models.ChecklistSubtask, now time.Time) (checklist.Result, bool) {
	result := checklist.Classify(subtask, now.In(s.loc))
	if !result.ShouldPersist {
		return result, false
	}

	if err := s.subtaskRepo.UpdateDelay(ctx, subtask.ID, result.IsDelayed, result.NewDelayDuration); err != nil {
		log.WithField("subtask_id", subtask.ID).Warnf("Failed to persist delay: %v", err)
		return result, false
	}

	becameLate := result.IsDelayed && !subtask.IsDelayed
	subtask.IsDelayed = result.IsDelayed
	subtask.DelayDuration = result.NewDelayDuration
	if becameLate && result.NewDelayDuration != nil {
		s.notifier.NotifyDelayed(ctx, subtask, *result.NewDelayDuration)
	}
	return result, true
}

// ReconcilePending refreshes every pending row and returns how many were
// written.
func (s *checklistService) ReconcilePending(ctx context.Context, now time.Time) (int, error) {
	subtasks, err := s.subtaskRepo.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending subtasks: %w", err)
	}
	updated := 0
	for i := range subtasks {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if _, written := s.reconcile(ctx, &subtasks[i], now); written {
			updated++
		}
	}
	return updated, nil
}

// UpdateStatus moves a pending subtask to a final status. Completion stamps
// the actual date and time and records the completion-time delay.
func (s *checklistService) UpdateStatus(ctx context.Context, auth *AuthContext, id uint, raw string, at time.Time) (*models.ChecklistSubtask, error) {
	status, err := checklist.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	subtask, err := s.subtaskRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSubtaskNotFound
	}
	if err != nil {
		return nil, err
	}
	if !auth.CanSee(subtask.AssigneeID) {
		return nil, ErrForbiddenAssignee
	}
	from := models.SubtaskStatus(subtask.Status)
	if err := checklist.CheckTransition(from, status); err != nil {
		return nil, err
	}

	at = at.In(s.loc)
	fields := map[string]interface{}{"status": string(status)}
	switch status {
	case models.StatusCompleted:
		fields["actual_date"] = calendarDay(at)
		fields["actual_time"] = at.Format("15:04:05")
		if late, ok := checklist.CompletionDelay(subtask.PlannedDate, at); ok {
			fields["is_delayed"] = true
			fields["delay_duration"] = checklist.FormatDelay(int64(late / time.Second))
		} else {
			fields["is_delayed"] = false
			fields["delay_duration"] = checklist.DelayOnTime
		}
	case models.StatusCantBeDone:
		fields["is_delayed"] = false
		fields["delay_duration"] = checklist.DelayNotApplicable
	}

	ok, err := s.subtaskRepo.UpdateStatus(ctx, id, from, fields)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: subtask %d changed concurrently", checklist.ErrInvalidTransition, id)
	}
	log.WithFields(log.Fields{"subtask_id": id, "status": status}).Info("Subtask status updated")
	return s.subtaskRepo.GetByID(ctx, id)
}

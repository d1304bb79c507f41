package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"checklist_manager/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type SubtaskFilter struct {
	// AssigneeIDs limits rows to these assignees; nil means everyone.
	AssigneeIDs []uint
	AssigneeID  uint
	Status      string
	From        *time.Time
	To          *time.Time
}

// RowErrorFunc receives every insert that failed and was rolled back to its savepoint.
type RowErrorFunc func(row *models.ChecklistSubtask, err error)

type SubtaskRepository interface {
	InsertGenerated(ctx context.Context, rows []*models.ChecklistSubtask, onRowError RowErrorFunc) (int, error)
	GetByID(ctx context.Context, id uint) (*models.ChecklistSubtask, error)
	List(ctx context.Context, filter SubtaskFilter) ([]models.ChecklistSubtask, error)
	ListPending(ctx context.Context) ([]models.ChecklistSubtask, error)
	UpdateDelay(ctx context.Context, id uint, isDelayed bool, delay *string) error
	UpdateStatus(ctx context.Context, id uint, from models.SubtaskStatus, fields map[string]interface{}) (bool, error)
}

type subtaskRepository struct {
	db *gorm.DB
}

func NewSubtaskRepository(db *gorm.DB) SubtaskRepository {
	return &subtaskRepository{db: db}
}

// InsertGenerated writes rows in one transaction. Each insert runs under its
// own savepoint so a failing row is rolled back alone and skipped; any other
// error rolls back the whole batch.
func (r *subtaskRepository) InsertGenerated(ctx context.Context, rows []*models.ChecklistSubtask, onRowError RowErrorFunc) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, row := range rows {
			savepoint := fmt.Sprintf("subtask_%d", i)
			if err := tx.SavePoint(savepoint).Error; err != nil {
				return fmt.Errorf("savepoint: %w", err)
			}
			if err := tx.Create(row).Error; err != nil {
				if rbErr := tx.RollbackTo(savepoint).Error; rbErr != nil {
					return fmt.Errorf("rollback to savepoint: %w", rbErr)
				}
				if onRowError != nil {
					onRowError(row, err)
				}
				continue
			}
			created++
		}
		return ctx.Err()
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *subtaskRepository) GetByID(ctx context.Context, id uint) (*models.ChecklistSubtask, error) {
	var subtask models.ChecklistSubtask
	err := r.db.WithContext(ctx).First(&subtask, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (r *subtaskRepository) List(ctx context.Context, filter SubtaskFilter) ([]models.ChecklistSubtask, error) {
	query := r.db.WithContext(ctx).Model(&models.ChecklistSubtask{})
	if filter.AssigneeIDs != nil {
		query = query.Where("assignee_id IN ?", filter.AssigneeIDs)
	}
	if filter.AssigneeID != 0 {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("planned_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("planned_date <= ?", *filter.To)
	}

	var subtasks []models.ChecklistSubtask
	err := query.Order("planned_date, id").Find(&subtasks).Error
	return subtasks, err
}

func (r *subtaskRepository) ListPending(ctx context.Context) ([]models.ChecklistSubtask, error) {
	var subtasks []models.ChecklistSubtask
	err := r.db.WithContext(ctx).
		Where("status = ?", string(models.StatusPending)).
		Order("planned_date, id").
		Find(&subtasks).Error
	return subtasks, err
}

// UpdateDelay touches only the two derived delay columns.
func (r *subtaskRepository) UpdateDelay(ctx context.Context, id uint, isDelayed bool, delay *string) error {
	return r.db.WithContext(ctx).Model(&models.ChecklistSubtask{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_delayed":     isDelayed,
		"delay_duration": delay,
	}).Error
}

// UpdateStatus applies fields only while the row still has status from.
// It reports false when another writer moved the row first.
func (r *subtaskRepository) UpdateStatus(ctx context.Context, id uint, from models.SubtaskStatus, fields map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ChecklistSubtask{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

package repository

import (
	"context"
	"time"

	"checklist_manager/internal/models"

	"gorm.io/gorm"
)

type HolidayRepository interface {
	List(ctx context.Context) ([]models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	DeleteByDate(ctx context.Context, date time.Time) (bool, error)
}

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) List(ctx context.Context) ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.db.WithContext(ctx).Order("date").Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepository) DeleteByDate(ctx context.Context, date time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Where("date = ?", date).Delete(&models.Holiday{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

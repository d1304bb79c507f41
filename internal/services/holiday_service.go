package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"checklist_manager/internal/checklist"
	"checklist_manager/internal/models"
	"checklist_manager/internal/redis"
	"checklist_manager/internal/repository"

	log "github.com/sirupsen/logrus"
)

// HolidayCache is the subset of the redis client the holiday provider uses.
type HolidayCache interface {
	GetHolidays(ctx context.Context) ([]string, error)
	SetHolidays(ctx context.Context, dates []string, ttl time.Duration) error
	InvalidateHolidays(ctx context.Context) error
}

type HolidayService interface {
	GetHolidays(ctx context.Context) (checklist.DateSet, error)
	ListHolidays(ctx context.Context) ([]models.Holiday, error)
	AddHoliday(ctx context.Context, date, name string) (*models.Holiday, error)
	DeleteHoliday(ctx context.Context, date string) error
}

type holidayService struct {
	holidayRepo repository.HolidayRepository
	cache       HolidayCache
	ttl         time.Duration
}

// NewHolidayService reads through cache when it is non-nil.
func NewHolidayService(holidayRepo repository.HolidayRepository, cache HolidayCache, ttl time.Duration) HolidayService {
	return &holidayService{holidayRepo: holidayRepo, cache: cache, ttl: ttl}
}

func (s *holidayService) GetHolidays(ctx context.Context) (checklist.DateSet, error) {
	if s.cache != nil {
		dates, err := s.cache.GetHolidays(ctx)
		if err == nil {
			set := make(checklist.DateSet, len(dates))
			for _, d := range dates {
				set[d] = struct{}{}
			}
			return set, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			log.Warnf("Holiday cache read failed, falling back to database: %v", err)
		}
	}

	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	set := make(checklist.DateSet, len(holidays))
	dates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		set.Add(h.Date)
		dates = append(dates, h.Date.Format(checklist.DateLayout))
	}

	if s.cache != nil {
		if err := s.cache.SetHolidays(ctx, dates, s.ttl); err != nil {
			log.Warnf("Holiday cache write failed: %v", err)
		}
	}
	return set, nil
}

func (s *holidayService) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	return s.holidayRepo.List(ctx)
}

func (s *holidayService) AddHoliday(ctx context.Context, date, name string) (*models.Holiday, error) {
	d, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	holiday := &models.Holiday{Date: d, Name: strings.TrimSpace(name)}
	if err := s.holidayRepo.Create(ctx, holiday); err != nil {
		return nil, fmt.Errorf("create holiday: %w", err)
	}
	s.invalidate(ctx)
	return holiday, nil
}

// DeleteHoliday does not touch subtasks already generated on that date.
func (s *holidayService) DeleteHoliday(ctx context.Context, date string) error {
	d, err := parseDay(date)
	if err != nil {
		return err
	}
	deleted, err := s.holidayRepo.DeleteByDate(ctx, d)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	if !deleted {
		return ErrHolidayNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *holidayService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateHolidays(ctx); err != nil {
		log.Warnf("Holiday cache invalidation failed: %v", err)
	}
}

// parseDay reads YYYY-MM-DD as a UTC calendar day, the form dates are stored in.
func parseDay(raw string) (time.Time, error) {
	d, err := time.Parse(checklist.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", checklist.ErrValidation, raw)
	}
	return d, nil
}

// calendarDay drops the time and zone of t, keeping its calendar day.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package models

import (
	"time"
)

// ChecklistSubtask is one dated occurrence produced by the recurring generator.
type ChecklistSubtask struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Code             string     `json:"code" gorm:"uniqueIndex;size:64;not null"`
	AssigneeID       uint       `json:"assignee_id" gorm:"index;not null"`
	AssigneeUsername string     `json:"assignee_username" gorm:"not null"`
	AssigneeName     string     `json:"assignee_name"`
	Department       string     `json:"department"`
	Description      string     `json:"description" gorm:"type:text;not null"`
	Frequency        string     `json:"frequency" gorm:"not null"`
	Duration         string     `json:"duration"` // HH:MM:SS
	PlannedDate      time.Time  `json:"planned_date" gorm:"type:date;index;not null"`
	Status           string     `json:"status" gorm:"default:'pending';index"` // pending, completed, not_done, cant_be_done
	ActualDate       *time.Time `json:"actual_date" gorm:"type:date"`
	ActualTime       *string    `json:"actual_time"`
	IsDelayed        bool       `json:"is_delayed" gorm:"default:false"`
	DelayDuration    *string    `json:"delay_duration"`
	AssignedBy       string     `json:"assigned_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (ChecklistSubtask) TableName() string {
	return "checklist_subtasks"
}

// StoredDelay returns the persisted delay string or "" when none is set.
func (s *ChecklistSubtask) StoredDelay() string {
	if s.DelayDuration == nil {
		return ""
	}
	return *s.DelayDuration
}

type SubtaskStatus string

const (
	StatusPending    SubtaskStatus = "pending"
	StatusCompleted  SubtaskStatus = "completed"
	StatusNotDone    SubtaskStatus = "not_done"
	StatusCantBeDone SubtaskStatus = "cant_be_done"
	// StatusShifted is set by the reschedule action; the generator never produces it.
	StatusShifted SubtaskStatus = "shifted"
)

type Holiday struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      time.Time `json:"date" gorm:"type:date;uniqueIndex;not null"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

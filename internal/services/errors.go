package services

import "errors"

var (
	ErrForbiddenAssignee = errors.New("assignee is outside the caller's scope")
	ErrSubtaskNotFound   = errors.New("subtask not found")
	ErrUnknownActor      = errors.New("unknown or inactive user")
	ErrHolidayNotFound   = errors.New("holiday not found")
)

package checklist

import (
	"errors"
	"fmt"

	"checklist_manager/internal/models"
)

var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ParseStatus accepts the statuses a user can move a subtask to.
func ParseStatus(raw string) (models.SubtaskStatus, error) {
	switch s := models.SubtaskStatus(raw); s {
	case models.StatusCompleted, models.StatusNotDone, models.StatusCantBeDone:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// CheckTransition allows pending -> {completed, not_done, cant_be_done} only.
func CheckTransition(from, to models.SubtaskStatus) error {
	if from != models.StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if _, err := ParseStatus(string(to)); err != nil {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

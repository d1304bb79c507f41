package services

import (
	"context"
	"fmt"

	"checklist_manager/internal/checklist"
	"checklist_manager/internal/models"
	"checklist_manager/internal/repository"
	"checklist_manager/pkg/whatsapp"

	log "github.com/sirupsen/logrus"
)

// DelayNotifier is told when a subtask becomes late for the first time.
type DelayNotifier interface {
	NotifyDelayed(ctx context.Context, subtask *models.ChecklistSubtask, delay string)
}

type noopNotifier struct{}

func NewNoopNotifier() DelayNotifier { return noopNotifier{} }

func (noopNotifier) NotifyDelayed(context.Context, *models.ChecklistSubtask, string) {}

// MessageSender is implemented by *whatsapp.Client.
type MessageSender interface {
	SendText(ctx context.Context, phone, message string) (*whatsapp.SendMessageResponse, error)
}

type whatsappNotifier struct {
	sender   MessageSender
	userRepo repository.UserRepository
}

func NewWhatsAppNotifier(sender MessageSender, userRepo repository.UserRepository) DelayNotifier {
	return &whatsappNotifier{sender: sender, userRepo: userRepo}
}

// NotifyDelayed never fails the caller; delivery problems are only logged.
func (n *whatsappNotifier) NotifyDelayed(ctx context.Context, subtask *models.ChecklistSubtask, delay string) {
	entry := log.WithFields(log.Fields{"subtask_id": subtask.ID, "assignee_id": subtask.AssigneeID})

	user, err := n.userRepo.GetByID(ctx, subtask.AssigneeID)
	if err != nil {
		entry.Warnf("Delay notification skipped, assignee lookup failed: %v", err)
		return
	}
	if user.WhatsAppNumber == "" {
		return
	}

	message := fmt.Sprintf("⏰ Checklist task overdue\n%s\nPlanned: %s\nDelay: %s",
		subtask.Description,
		subtask.PlannedDate.Format(checklist.DateLayout),
		checklist.DisplayDelay(delay),
	)
	if _, err := n.sender.SendText(ctx, user.WhatsAppNumber, message); err != nil {
		entry.Warnf("Delay notification failed: %v", err)
		return
	}
	entry.Debug("Delay notification sent")
}

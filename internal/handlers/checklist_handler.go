package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"checklist_manager/internal/checklist"
	"checklist_manager/internal/redis"
	"checklist_manager/internal/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// FlashStore is implemented by *redis.Client.
type FlashStore interface {
	PushFlash(ctx context.Context, owner string, msg *redis.FlashMessage, ttl time.Duration) error
	PopFlash(ctx context.Context, owner string) (*redis.FlashMessage, error)
}

type ChecklistHandler struct {
	checklistService services.ChecklistService
	flash            FlashStore
	flashTTL         time.Duration
	now              func() time.Time
}

func NewChecklistHandler(checklistService services.ChecklistService, flash FlashStore, flashTTL time.Duration) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
		flash:            flash,
		flashTTL:         flashTTL,
		now:              time.Now,
	}
}

type generateResponse struct {
	*services.GenerateResult
	Message string `json:"message"`
}

func (h *ChecklistHandler) Generate(c *gin.Context) {
	var req checklist.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	auth := authFrom(c)
	result, err := h.checklistService.Generate(c.Request.Context(), auth, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.pushFlash(c, auth, result)
	c.JSON(http.StatusOK, generateResponse{GenerateResult: result, Message: result.Message()})
}

func (h *ChecklistHandler) pushFlash(c *gin.Context, auth *services.AuthContext, result *services.GenerateResult) {
	msg := &redis.FlashMessage{
		Level:        "success",
		Message:      result.Message(),
		Created:      result.Created,
		SkippedDates: result.SkippedDates,
		CreatedAt:    h.now(),
	}
	if result.Empty() {
		msg.Level = "warning"
	}
	if err := h.flash.PushFlash(c.Request.Context(), flashOwner(auth), msg, h.flashTTL); err != nil {
		log.Warnf("Failed to store flash message: %v", err)
	}
}

func (h *ChecklistHandler) List(c *gin.Context) {
	q := services.ListQuery{
		Status: c.Query("status"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Sort:   c.Query("sort"),
		Desc:   strings.EqualFold(c.Query("order"), "desc"),
	}
	if raw := c.Query("assignee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee_id"})
			return
		}
		q.AssigneeID = uint(id)
	}

	rows, err := h.checklistService.List(c.Request.Context(), authFrom(c), q, h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

func (h *ChecklistHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subtask id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	now := h.now()
	subtask, err := h.checklistService.UpdateStatus(c.Request.Context(), authFrom(c), uint(id), req.Status, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checklist.NewRow(*subtask, checklist.Classify(subtask, now)))
}

func (h *ChecklistHandler) PopFlash(c *gin.Context) {
	msg, err := h.flash.PopFlash(c.Request.Context(), flashOwner(authFrom(c)))
	if errors.Is(err, redis.ErrCacheMiss) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func flashOwner(auth *services.AuthContext) string {
	if auth.Actor == nil {
		return "anonymous"
	}
	return strconv.FormatUint(uint64(auth.Actor.ID), 10)
}

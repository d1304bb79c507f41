package handlers

import (
	"net/http"

	"checklist_manager/internal/models"
	"checklist_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type HolidayHandler struct {
	holidayService services.HolidayService
}

func NewHolidayHandler(holidayService services.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidayService: holidayService}
}

func (h *HolidayHandler) List(c *gin.Context) {
	holidays, err := h.holidayService.ListHolidays(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

func (h *HolidayHandler) Create(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can edit holidays"})
		return
	}
	var req struct {
		Date string `json:"date" binding:"required"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	holiday, err := h.holidayService.AddHoliday(c.Request.Context(), req.Date, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, holiday)
}

func (h *HolidayHandler) Delete(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can edit holidays"})
		return
	}
	if err := h.holidayService.DeleteHoliday(c.Request.Context(), c.Param("date")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func isAdmin(c *gin.Context) bool {
	auth := authFrom(c)
	return auth.Actor != nil && models.UserRole(auth.Actor.Role) == models.RoleAdmin
}

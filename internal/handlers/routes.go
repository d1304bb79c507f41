package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts every route on router.
func Register(router *gin.Engine, resolver AuthResolver, checklistHandler *ChecklistHandler, holidayHandler *HolidayHandler) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", RequireActor(resolver))
	{
		api.POST("/checklist/generate", checklistHandler.Generate)
		api.GET("/checklist", checklistHandler.List)
		api.PATCH("/checklist/:id/status", checklistHandler.UpdateStatus)
		api.GET("/flash", checklistHandler.PopFlash)

		api.GET("/holidays", holidayHandler.List)
		api.POST("/holidays", holidayHandler.Create)
		api.DELETE("/holidays/:date", holidayHandler.Delete)
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"checklist_manager/internal/checklist"
	"checklist_manager/internal/repository"
	"checklist_manager/internal/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	ActorHeader = "X-User-ID"
	authKey     = "auth"
)

// AuthResolver is implemented by services.UserService.
type AuthResolver interface {
	ResolveAuthContext(ctx context.Context, actorID uint) (*services.AuthContext, error)
}

// RequireActor resolves the caller's authorization context once per request.
// Authentication happens upstream; the header only names the acting user.
func RequireActor(resolver AuthResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader(ActorHeader), 10, 64)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid " + ActorHeader})
			return
		}
		ac, err := resolver.ResolveAuthContext(c.Request.Context(), uint(id))
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(authKey, ac)
		c.Next()
	}
}

func authFrom(c *gin.Context) *services.AuthContext {
	return c.MustGet(authKey).(*services.AuthContext)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checklist.ErrValidation), errors.Is(err, checklist.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, checklist.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnknownActor):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbiddenAssignee):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSubtaskNotFound), errors.Is(err, services.ErrHolidayNotFound), errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.WithField("path", c.FullPath()).Errorf("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

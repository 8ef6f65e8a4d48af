// Package handlers is the HTTP façade: it binds request bodies, pulls the
// authenticated actor out of the gin context, calls the services, and shapes
// JSON responses. All business rules live in the service layer.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mediplan/api/internal/apperr"
	"github.com/mediplan/api/internal/middleware"
	"github.com/mediplan/api/internal/policy"
	"github.com/mediplan/api/internal/service"
)

type Handler struct {
	Auth         *service.AuthService
	Appointments *service.AppointmentService
	Directory    *service.DirectoryService
	Logger       *zap.Logger
}

func NewHandler(authSvc *service.AuthService, aptSvc *service.AppointmentService, dirSvc *service.DirectoryService, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:         authSvc,
		Appointments: aptSvc,
		Directory:    dirSvc,
		Logger:       logger.Named("Handler"),
	}
}

// actor reconstructs the authenticated identity stored by the auth middleware.
func actor(c *gin.Context) policy.Actor {
	return policy.Actor{
		UserID: c.GetString(middleware.ContextUserID),
		Role:   c.GetString(middleware.ContextUserRole),
	}
}

// FieldIssue is one entry of the structured error list on validation failures.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindingError converts a gin binding failure into a 400 body with per-field
// issues when the failure came from validation tags.
func bindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]FieldIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, FieldIssue{Field: fe.Field(), Message: fe.Error()})
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": issues})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
}

// fail maps a service error onto the wire. Errors outside the taxonomy are
// logged and surfaced as a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	if apperr.Internal(err) {
		h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(apperr.Status(err), gin.H{"message": err.Error()})
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/db"
	"teamfeedback-backend/internal/service"
	"teamfeedback-backend/utilities"
)

// respondError maps service and storage errors onto status codes. Anything
// unrecognised is logged and reported as "Failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	var structErr *service.StructureError
	var answerErr *service.AnswerError
	var storageErr *db.StorageError

	switch {
	case errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrFormNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.As(err, &structErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form structure", "errors": structErr.Result.Errors})
	case errors.As(err, &answerErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answers", "errors": answerErr.Problems})
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrFormNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidEventType),
		errors.Is(err, service.ErrAnonymousNotAllowed),
		errors.Is(err, service.ErrMissingEventID),
		errors.Is(err, service.ErrInvalidUserType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &storageErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": storageErr.Error()})
	default:
		utilities.Error("Failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

package utils

import (
	"errors"
	"net/http"

	"hirelink/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondWithError maps the engine's typed errors onto HTTP statuses. Every
// rejected precondition arrives here as a distinct type the caller can
// branch on; anything unrecognized is a 500.
func RespondWithError(c *gin.Context, err error) {
	var (
		notFound   models.NotFoundError
		invalid    models.InvalidTransitionError
		capacity   models.CapacityExceededError
		validation models.ValidationError
		conflict   models.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &invalid):
		JSONError(c, http.StatusUnprocessableEntity, "invalid status transition", err.Error())
	case errors.As(err, &capacity):
		JSONError(c, http.StatusConflict, "provider at capacity", err.Error())
	case errors.As(err, &validation):
		JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.As(err, &conflict):
		JSONError(c, http.StatusConflict, "conflict", err.Error())
	default:
		JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

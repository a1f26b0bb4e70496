package handlers

import (
	"errors"
	"net/http"

	"manabiya-quiz/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP responses. Every
// failure is terminal for the request; nothing here retries.
func respondError(c *gin.Context, err error) {
	var forbidden *service.ForbiddenError
	var validation *service.ValidationError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
			"code":  "UNAUTHORIZED",
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Not found",
			"code":  "NOT_FOUND",
		})
	case errors.Is(err, service.ErrConcurrentAttempt):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Another submission for this attempt was recorded first",
			"code":  "CONCURRENT_ATTEMPT",
		})
	case errors.As(err, &forbidden):
		body := gin.H{
			"error":  "Forbidden",
			"code":   "FORBIDDEN",
			"reason": forbidden.Reason,
		}
		if forbidden.LastSubmission != nil {
			body["last_submission"] = forbidden.LastSubmission
		}
		c.JSON(http.StatusForbidden, body)
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validation.Msg,
			"code":  "VALIDATION_FAILED",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal error",
			"code":    "INTERNAL",
			"details": err.Error(),
		})
	}
	c.Error(err)
}

package handlers

import (
	"net/http"

	"manabiya-quiz/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const identityKey = "identity"

// RequestID tags every request with a v4 UUID for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Authenticated resolves the caller identity from the trusted headers set by
// the gateway and stores it on the context. Identity is resolved here once;
// the services only ever see it as an explicit parameter.
func Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Set(identityKey, service.Identity{
			ID:          userID,
			DisplayName: c.GetHeader("X-User-Name"),
			Email:       c.GetHeader("X-User-Email"),
		})
		c.Next()
	}
}

func currentIdentity(c *gin.Context) service.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(service.Identity); ok {
			return id
		}
	}
	return service.Identity{}
}

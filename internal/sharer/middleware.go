package sharer

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the id of the user making the request. The service has no
// authentication layer; callers identify themselves with this header, as the
// gateway in front of the service is expected to have vetted it.
const Header = "X-Sharer-User-Id"

const contextKey = "sharerUserID"

// Required validates the X-Sharer-User-Id header and stores the id in the
// request context. Requests without a well-formed id are rejected.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": Header + " header is required"})
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": Header + " header must be a UUID"})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// GetUserID returns the sharer id stored by Required, or "" when absent.
func GetUserID(c *gin.Context) string {
	id, ok := c.Get(contextKey)
	if !ok {
		return ""
	}
	s, _ := id.(string)
	return s
}

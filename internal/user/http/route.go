package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers user routes. They are intentionally open:
// creating a user is how callers obtain the identity other endpoints
// expect in the X-Sharer-User-Id header.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/users")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

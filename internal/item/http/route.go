package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, sharerMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	group.Use(sharerMiddleware)
	{
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.GET("/:id", h.Get)
		group.GET("", h.List)
		group.GET("/search", h.Search)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/comment", h.AddComment)
	}
}

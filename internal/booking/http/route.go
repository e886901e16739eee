package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, sharerMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(sharerMiddleware)
	{
		group.POST("", h.Create)
		group.PATCH("/:id", h.Decide)
		group.GET("/:id", h.Get)
		group.GET("", h.ListByBooker)
		group.GET("/owner", h.ListByOwner)
	}
}

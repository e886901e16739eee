package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, sharerMiddleware gin.HandlerFunc) {
	items := g.Group("/items")
	items.Use(sharerMiddleware)
	{
		items.POST("/:id/photos", h.Upload)
		items.GET("/:id/photos", h.ListByItem)
	}

	photos := g.Group("/photos")
	photos.Use(sharerMiddleware)
	{
		photos.GET("/:id", h.Download)
		photos.GET("/:id/thumbnail", h.DownloadThumbnail)
		photos.DELETE("/:id", h.Delete)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	roomGroup := g.Group("/rooms/:id/photos")
	roomGroup.Use(authMiddleware)
	{
		roomGroup.GET("", h.List)
		roomGroup.POST("", h.Upload)
	}

	photoGroup := g.Group("/photos")
	photoGroup.Use(authMiddleware)
	{
		photoGroup.GET("/:id/download", h.Download)
		photoGroup.DELETE("/:id", h.Delete)
	}
}

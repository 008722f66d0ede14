package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reservations")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/availability", h.Availability)
		group.GET("/check-conflict", h.CheckConflict)
		group.GET("/stats", h.Stats)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.PATCH("/:id/status", h.Transition)
		group.POST("/:id/cancel", h.Cancel)
	}

	cfgGroup := g.Group("/reservation-config")
	cfgGroup.Use(authMiddleware)
	{
		cfgGroup.GET("", h.GetConfig)
		cfgGroup.PATCH("", h.UpdateConfig)
	}
}

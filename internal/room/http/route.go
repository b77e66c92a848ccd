package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerOnly gin.HandlerFunc) {
	group := g.Group("/rooms")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/images", h.ListImages)

	// === Owner Routes ===
	owner := group.Group("")
	owner.Use(authMiddleware, ownerOnly)
	{
		owner.POST("", h.Create)
		owner.POST("/bulk", h.BulkCreate)
		owner.PUT("/:id", h.Update)
		owner.PATCH("/:id/availability", h.SetAvailability)
		owner.DELETE("/:id", h.Delete)
		owner.POST("/:id/images", h.UploadImage)
		owner.DELETE("/images/:imageId", h.DeleteImage)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, studentOnly, ownerOnly gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", studentOnly, h.Create)
		group.POST("/:id/approve", ownerOnly, h.Approve)
		group.POST("/:id/reject", ownerOnly, h.Reject)
		group.POST("/:id/cancel", h.Cancel)
	}
}

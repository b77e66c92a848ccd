package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers reporting routes. All are owner-scoped.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerOnly gin.HandlerFunc) {
	group := g.Group("/reports")
	group.Use(authMiddleware, ownerOnly)
	{
		group.GET("/dashboard", h.Dashboard)
		group.GET("/bookings/export", h.ExportBookings)
		group.GET("/earnings/export", h.ExportEarnings)
		group.GET("/feedbacks/export", h.ExportFeedback)
	}
}

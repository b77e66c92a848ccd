package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers payment-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, studentOnly gin.HandlerFunc) {
	group := g.Group("/payments")
	group.Use(authMiddleware)
	{
		group.POST("/verify", studentOnly, h.Verify)
		group.GET("", h.List)
		group.GET("/booking/:bookingId", h.GetByBooking)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers feedback-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, studentOnly, ownerOnly gin.HandlerFunc) {
	group := g.Group("/feedbacks")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/hostel/:id/rating", h.Rating)

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", studentOnly, h.Create)
		authed.POST("/:id/reply", ownerOnly, h.Reply)
		authed.DELETE("/:id", h.Delete)
	}
}

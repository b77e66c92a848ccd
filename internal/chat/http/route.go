package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers chat-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/chat")
	group.Use(authMiddleware)
	{
		group.POST("/messages", h.Send)
		group.GET("/messages", h.History)
	}
}

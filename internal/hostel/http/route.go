package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers hostel-related routes. ownerOnly restricts
// mutating routes to hostel owners; ownership of the specific hostel is
// enforced in the service layer.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerOnly gin.HandlerFunc) {
	group := g.Group("/hostels")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/floors", h.ListFloors)
	group.GET("/:id/images", h.ListImages)

	// === Owner Routes ===
	owner := group.Group("")
	owner.Use(authMiddleware, ownerOnly)
	{
		owner.GET("/mine", h.Mine)
		owner.POST("", h.Create)
		owner.PUT("/:id", h.Update)
		owner.PUT("/:id/cancellation-policy", h.SetPolicy)
		owner.DELETE("/:id", h.Delete)
		owner.POST("/:id/floors", h.AddFloor)
		owner.DELETE("/floors/:floorId", h.DeleteFloor)
		owner.POST("/:id/images", h.UploadImage)
		owner.DELETE("/images/:imageId", h.DeleteImage)
	}
}

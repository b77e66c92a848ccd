package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

// RequireRole ensures the authenticated user holds one of the given roles.
// It MUST be used after auth.AuthRequired middleware. Admins pass every
// role check.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := user.ParseRole(auth.GetUserRole(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if role == user.RoleAdmin {
			c.Next()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
	}
}

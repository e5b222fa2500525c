package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"urbanmind-be/models"
)

// RequireRole rejects callers whose token role is not in the allowed set.
// Superadmins pass any check that admits admins. Must run after
// AuthMiddleware.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		role := models.Role(roleVal.(string))
		for _, a := range allowed {
			if role == a || (a == models.RoleAdmin && role == models.RoleSuperAdmin) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
		c.Abort()
	}
}

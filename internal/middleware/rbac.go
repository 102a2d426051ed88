package middleware

import (
	"fmt"
	"net/http"

	"go-gin-ticket-store/internal/model"

	"github.com/gin-gonic/gin"
)

// RequireRole 要求指定角色；admin 不受限制
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if user.Role == model.RoleAdmin {
			c.Next()
			return
		}

		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": fmt.Sprintf("Requires %s role", role),
			})
			return
		}

		c.Next()
	}
}

// RequirePermission 要求角色持有指定權限
func RequirePermission(permission model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !user.Role.HasPermission(permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": fmt.Sprintf("Missing permission: %s", permission),
			})
			return
		}

		c.Next()
	}
}

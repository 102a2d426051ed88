package middleware

import (
	"net/http"
	"strconv"

	"go-gin-ticket-store/internal/model"

	"github.com/gin-gonic/gin"
)

// Policy 屬性導向的存取決策，回傳 true 表示放行
type Policy func(user *model.AuthUser, c *gin.Context) bool

// RequirePolicy 以動態 policy 判斷存取
func RequirePolicy(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if !policy(user, c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Access denied by policy",
			})
			return
		}

		c.Next()
	}
}

// IsOwner 只能存取自己的資料，路徑上有 :id 時比對使用者 ID
func IsOwner(user *model.AuthUser, c *gin.Context) bool {
	idParam := c.Param("id")
	if idParam == "" {
		// 沒有指定對象視為操作自己
		return true
	}
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return false
	}
	return user.UserID == id
}

// IsAdminOrOwner admin 或本人
func IsAdminOrOwner(user *model.AuthUser, c *gin.Context) bool {
	if user.Role == model.RoleAdmin {
		return true
	}
	return IsOwner(user, c)
}

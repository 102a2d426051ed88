package middleware

import (
	"net/http"
	"strings"

	"go-gin-ticket-store/internal/auth"
	"go-gin-ticket-store/internal/model"

	"github.com/gin-gonic/gin"
)

const authUserKey = "authUser"

// RequireAuth 驗證 Bearer token 並把 principal 放進 context
func RequireAuth(tokenManager *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		user, err := tokenManager.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

// GetAuthUser 取出認證過的使用者，沒有則回 nil
func GetAuthUser(c *gin.Context) *model.AuthUser {
	value, exists := c.Get(authUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.AuthUser)
	if !ok {
		return nil
	}
	return user
}

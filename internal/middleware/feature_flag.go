package middleware

import (
	"fmt"
	"net/http"

	"go-gin-ticket-store/internal/service"
	"go-gin-ticket-store/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireFeatureFlag 旗標關閉時回 403。
// 快取查不到旗標狀態時放行（fail open），功能開關壞掉不應該讓整條路由跟著掛。
func RequireFeatureFlag(flags service.FeatureFlagService, flagKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		enabled, err := flags.IsEnabled(c.Request.Context(), flagKey)
		if err != nil {
			logger.WithComponent("feature-flags").Warn("flag check failed, allowing request", zap.String("flag_key", flagKey), zap.Error(err))
			c.Next()
			return
		}

		if !enabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Feature not available",
				"message": fmt.Sprintf("The feature %q is currently disabled", flagKey),
			})
			return
		}

		c.Next()
	}
}

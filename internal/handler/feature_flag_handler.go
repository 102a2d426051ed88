package handler

import (
	"errors"
	"net/http"

	"go-gin-ticket-store/internal/middleware"
	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/service"
	apperrors "go-gin-ticket-store/pkg/app_errors"
	"go-gin-ticket-store/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeatureFlagHandler struct {
	service service.FeatureFlagService
}

func NewFeatureFlagHandler(service service.FeatureFlagService) *FeatureFlagHandler {
	return &FeatureFlagHandler{service: service}
}

func (h *FeatureFlagHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("flags", h.ListFlags)
		router.PUT("flags/:key", requireAuth, middleware.RequirePermission(model.PermissionManageFeatureFlags), h.UpsertFlag)
	}
}

func (h *FeatureFlagHandler) ListFlags(c *gin.Context) {
	flags, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleFlagError(c, err, "ListFlags")
		return
	}

	c.JSON(http.StatusOK, gin.H{"flags": flags})
}

func (h *FeatureFlagHandler) UpsertFlag(c *gin.Context) {
	key := c.Param("key")

	var req model.UpsertFlagRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	flag, err := h.service.Upsert(c.Request.Context(), key, *req.FlagValue, req.Description)
	if err != nil {
		h.handleFlagError(c, err, "UpsertFlag")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feature flag updated",
		"flag":    flag,
	})
}

func (h *FeatureFlagHandler) handleFlagError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrFlagNotFound):
		log.Warn("Feature flag not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Feature flag not found",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

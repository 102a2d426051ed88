package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-gin-ticket-store/internal/middleware"
	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/service"
	apperrors "go-gin-ticket-store/pkg/app_errors"
	"go-gin-ticket-store/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.POST("analytics/event", h.LogEvent)
		router.GET("analytics/events", requireAuth, middleware.RequirePermission(model.PermissionViewAnalytics), h.ListEvents)
	}
}

func (h *AnalyticsHandler) LogEvent(c *gin.Context) {
	var req model.LogAnalyticsEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.LogEvent(c.Request.Context(), req); err != nil {
		h.handleAnalyticsError(c, err, "LogEvent")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Event logged successfully"})
}

func (h *AnalyticsHandler) ListEvents(c *gin.Context) {
	eventType := c.Query("eventType")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	events, err := h.service.ListEvents(c.Request.Context(), eventType, limit)
	if err != nil {
		h.handleAnalyticsError(c, err, "ListEvents")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *AnalyticsHandler) handleAnalyticsError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "eventType is required",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

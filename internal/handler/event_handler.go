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

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.ListEvents)
		router.GET("events/:id", h.GetEvent)
		router.GET("events/:id/tickets", h.ListEventTickets)
		router.POST("events", requireAuth, middleware.RequirePermission(model.PermissionCreateEvent), h.CreateEvent)
		router.PUT("events/:id", requireAuth, middleware.RequirePermission(model.PermissionEditEvent), h.UpdateEvent)
	}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		h.handleEventError(c, err, "ListEvents")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err, "GetEvent")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h *EventHandler) ListEventTickets(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	tickets, err := h.service.ListTickets(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err, "ListEventTickets")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleEventError(c, err, "CreateEvent")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	var params model.UpdateEventParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	event, err := h.service.Update(c.Request.Context(), id, params)
	if err != nil {
		h.handleEventError(c, err, "UpdateEvent")
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h *EventHandler) handleEventError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

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

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.GET("tickets/:id", h.GetTicket)
		router.GET("tickets/:id/availability", h.GetAvailability)
		router.POST("tickets", requireAuth, middleware.RequirePermission(model.PermissionCreateEvent), h.CreateTicket)
	}
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}

	ticket, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTicketError(c, err, "GetTicket")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

func (h *TicketHandler) GetAvailability(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket id"})
		return
	}

	availability, err := h.service.GetAvailability(c.Request.Context(), id)
	if err != nil {
		h.handleTicketError(c, err, "GetAvailability")
		return
	}

	c.JSON(http.StatusOK, availability)
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req model.CreateTicketRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleTicketError(c, err, "CreateTicket")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

func (h *TicketHandler) handleTicketError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ticket not found",
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

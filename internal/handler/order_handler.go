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

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc, requireSales gin.HandlerFunc) {
	router := r.Group("/api/v1")
	{
		router.POST("orders", requireAuth, requireSales, h.CreateOrder)
		router.GET("orders/user/me", requireAuth, h.ListMyOrders)
		router.GET("orders/:orderNumber", h.GetOrder)
		router.GET("orders/:orderNumber/tickets", h.GetOrderTickets)
		router.PUT("orders/:orderNumber/payment", h.UpdatePayment)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var orderReq model.CreateOrderRequest

	if err := BindJson(c, &orderReq); err != nil {
		return
	}

	user := middleware.GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	created, err := h.service.CreateOrder(c.Request.Context(), user.UserID, orderReq)
	if err != nil {
		h.handleOrderError(c, err, "CreateOrder")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   created,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	order, err := h.service.GetOrderByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.handleOrderError(c, err, "GetOrder")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	user := middleware.GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orders, err := h.service.ListUserOrders(c.Request.Context(), user.UserID)
	if err != nil {
		h.handleOrderError(c, err, "ListMyOrders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrderTickets(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	items, err := h.service.GetOrderItems(c.Request.Context(), orderNumber)
	if err != nil {
		h.handleOrderError(c, err, "GetOrderTickets")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": items})
}

func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	var req model.UpdateOrderStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), orderNumber, req.Status)
	if err != nil {
		h.handleOrderError(c, err, "UpdatePayment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order payment status updated",
		"order":   order,
	})
}

// Helper functions

func (h *OrderHandler) handleOrderError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		// 庫存不足是業務面拒絕，不是衝突
		log.Warn("Not enough tickets available")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Not enough tickets available",
		})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ticket not found",
		})
	case errors.Is(err, apperrors.ErrOrderNotFound):
		log.Warn("Order not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		log.Warn("Invalid status transition")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid status transition",
		})
	case errors.Is(err, apperrors.ErrLockTimeout):
		log.Warn("Lock wait timeout")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Service busy, please retry",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

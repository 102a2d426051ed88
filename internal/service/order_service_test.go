package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/repository"
	apperrors "go-gin-ticket-store/pkg/app_errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService() OrderService {
	db := getTestDB()
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewTicketRepository(db),
		testCfg.Order.ExpireAfter,
		testCfg.Order.LockTimeout,
		testCfg.Order.SweepBatch,
	)
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService := newTestOrderService()
		userID := createTestUser(t, "Alice", "alice@test.com")
		eventID := createTestEvent(t, "Summer Concert", model.EventStatusPublished)
		ticketID := createTestTicket(t, eventID, "VIP", 1500.0, 50)

		req := model.CreateOrderRequest{
			EventID:       eventID,
			TicketID:      ticketID,
			Quantity:      3,
			PaymentMethod: "credit_card",
		}

		order, err := orderService.CreateOrder(ctx, userID, req)
		require.NoError(t, err)
		require.NotNil(t, order)

		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.Equal(t, userID, order.UserID)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(4500)), "total should be price * quantity, got %s", order.TotalAmount)
		assert.Regexp(t, `^TIX-\d+-[0-9A-F]{8}$`, order.OrderNumber)
		assert.Nil(t, order.PaidAt)

		// 每張票一個 item, 編號帶序號
		require.Len(t, order.Items, 3)
		for i, item := range order.Items {
			assert.Equal(t, fmt.Sprintf("%s-%d", order.OrderNumber, i+1), item.TicketCode)
			assert.Equal(t, model.OrderItemStatusValid, item.Status)
		}

		assert.Equal(t, 47, getTicketAvailability(t, ticketID))
	})

	t.Run("Failed - invalid quantity rejected before store", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService := newTestOrderService()

		_, err := orderService.CreateOrder(ctx, 1, model.CreateOrderRequest{EventID: 1, TicketID: 1, Quantity: 0})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		_, err = orderService.CreateOrder(ctx, 0, model.CreateOrderRequest{EventID: 1, TicketID: 1, Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - ErrTicketNotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService := newTestOrderService()
		userID := createTestUser(t, "Bob", "bob@test.com")

		_, err := orderService.CreateOrder(ctx, userID, model.CreateOrderRequest{EventID: 1, TicketID: 9999, Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})

	t.Run("Failed - ticket belongs to another event", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService := newTestOrderService()
		userID := createTestUser(t, "Carol", "carol@test.com")
		eventA := createTestEvent(t, "Event A", model.EventStatusPublished)
		eventB := createTestEvent(t, "Event B", model.EventStatusPublished)
		ticketID := createTestTicket(t, eventA, "GA", 500.0, 10)

		_, err := orderService.CreateOrder(ctx, userID, model.CreateOrderRequest{EventID: eventB, TicketID: ticketID, Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, 10, getTicketAvailability(t, ticketID))
	})

	t.Run("Failed - ErrInsufficientStock leaves no partial state", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService := newTestOrderService()
		userID := createTestUser(t, "Dave", "dave@test.com")
		eventID := createTestEvent(t, "Sold Out Show", model.EventStatusPublished)
		ticketID := createTestTicket(t, eventID, "GA", 800.0, 2)

		_, err := orderService.CreateOrder(ctx, userID, model.CreateOrderRequest{EventID: eventID, TicketID: ticketID, Quantity: 5})
		require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

		assert.Equal(t, 2, getTicketAvailability(t, ticketID))

		var orderCount int
		require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&orderCount))
		assert.Equal(t, 0, orderCount)
	})
}

func TestOrderService_GetOrderByNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - includes items", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService := newTestOrderService()
		userID := createTestUser(t, "Alice", "alice@test.com")
		eventID := createTestEvent(t, "Concert", model.EventStatusPublished)
		ticketID := createTestTicket(t, eventID, "GA", 500.0, 10)

		created, err := orderService.CreateOrder(ctx, userID, model.CreateOrderRequest{EventID: eventID, TicketID: ticketID, Quantity: 2})
		require.NoError(t, err)

		found, err := orderService.GetOrderByNumber(ctx, created.OrderNumber)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Len(t, found.Items, 2)
	})

	t.Run("Failed - ErrOrderNotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService := newTestOrderService()
		_, err := orderService.GetOrderByNumber(ctx, "TIX-0-DEADBEEF")
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})
}

func TestOrderService_ListUserOrders(t *testing.T) {
	ctx := context.Background()

	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	orderService := newTestOrderService()
	alice := createTestUser(t, "Alice", "alice@test.com")
	bob := createTestUser(t, "Bob", "bob@test.com")
	eventID := createTestEvent(t, "Concert", model.EventStatusPublished)
	ticketID := createTestTicket(t, eventID, "GA", 500.0, 10)

	_, err := orderService.CreateOrder(ctx, alice, model.CreateOrderRequest{EventID: eventID, TicketID: ticketID, Quantity: 1})
	require.NoError(t, err)
	_, err = orderService.CreateOrder(ctx, alice, model.CreateOrderRequest{EventID: eventID, TicketID: ticketID, Quantity: 2})
	require.NoError(t, err)
	_, err = orderService.CreateOrder(ctx, bob, model.CreateOrderRequest{EventID: eventID, TicketID: ticketID, Quantity: 1})
	require.NoError(t, err)

	orders, err := orderService.ListUserOrders(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, alice, o.UserID)
	}
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (OrderService, *model.Order, int) {
		orderService := newTestOrderService()
		userID := createTestUser(t, "Alice", "alice@test.com")
		eventID := createTestEvent(t, "Concert", model.EventStatusPublished)
		ticketID := createTestTicket(t, eventID, "GA", 500.0, 10)

		order, err := orderService.CreateOrder(ctx, userID, model.CreateOrderRequest{EventID: eventID, TicketID: ticketID, Quantity: 3})
		require.NoError(t, err)
		require.Equal(t, 7, getTicketAvailability(t, ticketID))
		return orderService, order, ticketID
	}

	t.Run("Success - pay sets paid_at", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService, order, ticketID := setup(t)

		updated, err := orderService.UpdateOrderStatus(ctx, order.OrderNumber, model.OrderStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPaid, updated.Status)
		require.NotNil(t, updated.PaidAt)
		assert.WithinDuration(t, time.Now(), *updated.PaidAt, time.Minute)

		// 付款不影響庫存
		assert.Equal(t, 7, getTicketAvailability(t, ticketID))
	})

	t.Run("Failed - paying twice", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService, order, _ := setup(t)

		_, err := orderService.UpdateOrderStatus(ctx, order.OrderNumber, model.OrderStatusPaid)
		require.NoError(t, err)

		_, err = orderService.UpdateOrderStatus(ctx, order.OrderNumber, model.OrderStatusPaid)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("Success - cancel restores availability", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService, order, ticketID := setup(t)

		updated, err := orderService.UpdateOrderStatus(ctx, order.OrderNumber, model.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, updated.Status)
		assert.Equal(t, 10, getTicketAvailability(t, ticketID))
	})

	t.Run("Failed - cancelling a paid order", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService, order, ticketID := setup(t)

		_, err := orderService.UpdateOrderStatus(ctx, order.OrderNumber, model.OrderStatusPaid)
		require.NoError(t, err)

		_, err = orderService.UpdateOrderStatus(ctx, order.OrderNumber, model.OrderStatusCancelled)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.Equal(t, 7, getTicketAvailability(t, ticketID))
	})

	t.Run("Failed - pending is not a valid target", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService, order, _ := setup(t)

		_, err := orderService.UpdateOrderStatus(ctx, order.OrderNumber, model.OrderStatusPending)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - ErrOrderNotFound", func(t *testing.T) {
		cleanup := setupTestWithTruncate(t)
		defer cleanup()

		orderService := newTestOrderService()
		_, err := orderService.UpdateOrderStatus(ctx, "TIX-0-DEADBEEF", model.OrderStatusPaid)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})
}

func TestOrderService_SweepExpiredOrders(t *testing.T) {
	ctx := context.Background()

	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	orderService := newTestOrderService()
	userID := createTestUser(t, "Alice", "alice@test.com")
	eventID := createTestEvent(t, "Concert", model.EventStatusPublished)
	// 10 張票, 其中 5 張被下面三筆訂單佔走
	ticketID := createTestTicketWithStock(t, eventID, "GA", 500.0, 10, 5)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expiredID := createTestOrder(t, "TIX-1-AAAAAAAA", userID, eventID, ticketID, 2, model.OrderStatusPending, past)
	freshID := createTestOrder(t, "TIX-2-BBBBBBBB", userID, eventID, ticketID, 1, model.OrderStatusPending, future)
	paidID := createTestOrder(t, "TIX-3-CCCCCCCC", userID, eventID, ticketID, 2, model.OrderStatusPaid, past)

	count, err := orderService.SweepExpiredOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	status := func(id int) model.OrderStatus {
		var s model.OrderStatus
		require.NoError(t, testDB.QueryRow(ctx, "SELECT status FROM orders WHERE id = $1", id).Scan(&s))
		return s
	}

	assert.Equal(t, model.OrderStatusCancelled, status(expiredID))
	assert.Equal(t, model.OrderStatusPending, status(freshID))
	assert.Equal(t, model.OrderStatusPaid, status(paidID))

	// 只回補被取消那筆的 2 張
	assert.Equal(t, 7, getTicketAvailability(t, ticketID))

	// 再掃一次不應重複取消
	count, err = orderService.SweepExpiredOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 7, getTicketAvailability(t, ticketID))
}

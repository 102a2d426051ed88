package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go-gin-ticket-store/internal/model"
	apperrors "go-gin-ticket-store/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 模擬實際場景: 100 個使用者同時搶 10 張票
func TestConcurrentOrderCreate_NoOversell(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	orderService := newTestOrderService()

	concurrentUsers := 100
	totalStock := 10

	userIDs := make([]int, concurrentUsers)
	for i := 0; i < concurrentUsers; i++ {
		userIDs[i] = createTestUser(t, fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@test.com", i))
	}

	eventID := createTestEvent(t, "Popular Concert", model.EventStatusPublished)
	ticketID := createTestTicket(t, eventID, "VIP", 1000.0, totalStock)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	insufficientCount := 0
	otherErrs := make([]error, 0)

	for i := 0; i < concurrentUsers; i++ {
		wg.Add(1)
		go func(userIndex int) {
			defer wg.Done()

			req := model.CreateOrderRequest{
				EventID:  eventID,
				TicketID: ticketID,
				Quantity: 1,
			}

			_, err := orderService.CreateOrder(ctx, userIDs[userIndex], req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successCount++
			case errors.Is(err, apperrors.ErrInsufficientStock):
				insufficientCount++
			default:
				otherErrs = append(otherErrs, err)
			}
		}(i)
	}

	wg.Wait()

	t.Logf("100 users competing for 10 tickets - Success: %d, Insufficient: %d", successCount, insufficientCount)

	// 關鍵斷言: 剛好賣出 10 張, 不超賣
	require.Empty(t, otherErrs, "unexpected errors: %v", otherErrs)
	assert.Equal(t, totalStock, successCount, "successful orders should equal total stock")
	assert.Equal(t, concurrentUsers-totalStock, insufficientCount)
	assert.Equal(t, 0, getTicketAvailability(t, ticketID))

	var orderCount, itemCount int
	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE status = 'pending'").Scan(&orderCount))
	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM order_items").Scan(&itemCount))
	assert.Equal(t, totalStock, orderCount)
	assert.Equal(t, totalStock, itemCount)
}

// 併發付款與取消, 同一訂單只能有一個終態
func TestConcurrentStatusTransition_SingleWinner(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()

	ctx := context.Background()
	orderService := newTestOrderService()

	userID := createTestUser(t, "Alice", "alice@test.com")
	eventID := createTestEvent(t, "Concert", model.EventStatusPublished)
	ticketID := createTestTicket(t, eventID, "GA", 500.0, 10)

	order, err := orderService.CreateOrder(ctx, userID, model.CreateOrderRequest{EventID: eventID, TicketID: ticketID, Quantity: 2})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	targets := []model.OrderStatus{
		model.OrderStatusPaid, model.OrderStatusCancelled,
		model.OrderStatusPaid, model.OrderStatusCancelled,
	}
	for _, target := range targets {
		wg.Add(1)
		go func(status model.OrderStatus) {
			defer wg.Done()
			if _, err := orderService.UpdateOrderStatus(ctx, order.OrderNumber, status); err == nil {
				mu.Lock()
				successCount++
				mu.Unlock()
			}
		}(target)
	}

	wg.Wait()

	assert.Equal(t, 1, successCount, "exactly one transition should win")

	// 庫存要嘛回到 10 (取消勝出) 要嘛停在 8 (付款勝出)
	available := getTicketAvailability(t, ticketID)
	final, err := orderService.GetOrderByNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	if final.Status == model.OrderStatusCancelled {
		assert.Equal(t, 10, available)
	} else {
		assert.Equal(t, model.OrderStatusPaid, final.Status)
		assert.Equal(t, 8, available)
	}
}

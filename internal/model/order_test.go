package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to paid", OrderStatusPending, OrderStatusPaid, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to pending", OrderStatusPending, OrderStatusPending, false},
		{"paid to cancelled", OrderStatusPaid, OrderStatusCancelled, false},
		{"paid to pending", OrderStatusPaid, OrderStatusPending, false},
		{"paid to paid", OrderStatusPaid, OrderStatusPaid, false},
		{"cancelled to paid", OrderStatusCancelled, OrderStatusPaid, false},
		{"cancelled to pending", OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_IsExpired(t *testing.T) {
	now := time.Now()

	t.Run("pending order past expired_at", func(t *testing.T) {
		order := &Order{Status: OrderStatusPending, ExpiredAt: now.Add(-time.Minute)}
		assert.True(t, order.IsExpired(now))
	})

	t.Run("pending order before expired_at", func(t *testing.T) {
		order := &Order{Status: OrderStatusPending, ExpiredAt: now.Add(time.Minute)}
		assert.False(t, order.IsExpired(now))
	})

	t.Run("paid order never expires", func(t *testing.T) {
		order := &Order{Status: OrderStatusPaid, ExpiredAt: now.Add(-time.Hour)}
		assert.False(t, order.IsExpired(now))
	})
}

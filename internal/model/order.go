package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 訂單狀態類型
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid 驗證狀態是否有效
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
		OrderStatusPaid:      {}, // 已付款為終態
		OrderStatusCancelled: {}, // 不能轉換到任何狀態
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// OrderItemStatus 票券項目狀態
type OrderItemStatus string

const (
	OrderItemStatusValid OrderItemStatus = "valid"
	OrderItemStatusUsed  OrderItemStatus = "used"
)

// Order 訂單模型
type Order struct {
	ID            int             `json:"id" db:"id"`
	OrderNumber   string          `json:"order_number" db:"order_number"`
	UserID        int             `json:"user_id" db:"user_id"`
	EventID       int             `json:"event_id" db:"event_id"`
	TicketID      int             `json:"ticket_id" db:"ticket_id"`
	Quantity      int             `json:"quantity" db:"quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status        OrderStatus     `json:"status" db:"status"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	ExpiredAt     time.Time       `json:"expired_at" db:"expired_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty" db:"paid_at"`

	Items []*OrderItem `json:"items,omitempty" db:"-"`
}

// IsExpired 檢查 pending 訂單是否已超過保留時間
func (o *Order) IsExpired(now time.Time) bool {
	return o.Status == OrderStatusPending && now.After(o.ExpiredAt)
}

// OrderItem 訂單內的單張票券
type OrderItem struct {
	ID         int             `json:"id" db:"id"`
	OrderID    int             `json:"order_id" db:"order_id"`
	TicketCode string          `json:"ticket_code" db:"ticket_code"`
	Status     OrderItemStatus `json:"status" db:"status"`
	UsedAt     *time.Time      `json:"used_at,omitempty" db:"used_at"`
}

// CreateOrderRequest 創建訂單請求，user 由認證層帶入
type CreateOrderRequest struct {
	EventID       int    `json:"event_id" binding:"required"`
	TicketID      int    `json:"ticket_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	PaymentMethod string `json:"payment_method"`
}

// UpdateOrderStatusRequest 付款狀態更新請求
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket 票種模型，一個活動底下可以有多個票種
type Ticket struct {
	ID                int             `json:"id" db:"id"`
	EventID           int             `json:"event_id" db:"event_id"`
	TicketType        string          `json:"ticket_type" db:"ticket_type"`
	Price             decimal.Decimal `json:"price" db:"price"`
	TotalQuantity     int             `json:"total_quantity" db:"total_quantity"`
	AvailableQuantity int             `json:"available_quantity" db:"available_quantity"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// IsAvailable 檢查票種是否還有剩餘
func (t *Ticket) IsAvailable() bool {
	return t.AvailableQuantity > 0
}

type CreateTicketRequest struct {
	EventID       int             `json:"event_id" binding:"required"`
	TicketType    string          `json:"ticket_type" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	TotalQuantity int             `json:"total_quantity" binding:"required,min=0"`
}

// TicketAvailability 票種剩餘量查詢結果
type TicketAvailability struct {
	TicketID          int    `json:"ticket_id"`
	TicketType        string `json:"ticket_type"`
	Available         bool   `json:"available"`
	AvailableQuantity int    `json:"available_quantity"`
	TotalQuantity     int    `json:"total_quantity"`
}

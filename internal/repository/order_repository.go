package repository

import (
	"context"
	"fmt"
	"go-gin-ticket-store/internal/model"
	apperrors "go-gin-ticket-store/pkg/app_errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	FindByUserID(ctx context.Context, userID int) ([]*model.Order, error)
	FindItemsByOrderID(ctx context.Context, orderID int) ([]*model.OrderItem, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.Order, error)
	CreateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) (*model.OrderItem, error)
	FindByOrderNumberWithLock(ctx context.Context, tx pgx.Tx, orderNumber string) (*model.Order, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.OrderStatus, paidAt *time.Time) (*model.Order, error)
	FindExpiredPendingWithLock(ctx context.Context, tx pgx.Tx, now time.Time, limit int) ([]*model.Order, error)
}

type OrderRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &OrderRepositoryImpl{
		pool: pool,
	}
}

const orderColumns = `id, order_number, user_id, event_id, ticket_id, quantity,
		total_amount, status, payment_method, created_at, expired_at, paid_at`

func scanOrder(row pgx.Row, order *model.Order) error {
	return row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.EventID,
		&order.TicketID,
		&order.Quantity,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.ExpiredAt,
		&order.PaidAt,
	)
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.Order, error) {
	query := fmt.Sprintf(`
		INSERT INTO orders (
			order_number, user_id, event_id, ticket_id, quantity,
			total_amount, status, payment_method, expired_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, orderColumns)

	row := tx.QueryRow(ctx, query,
		order.OrderNumber, order.UserID, order.EventID, order.TicketID,
		order.Quantity, order.TotalAmount, order.Status, order.PaymentMethod,
		order.ExpiredAt,
	)

	if err := scanOrder(row, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

func (r *OrderRepositoryImpl) CreateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) (*model.OrderItem, error) {
	query := `
		INSERT INTO order_items (order_id, ticket_code, status)
		VALUES ($1, $2, $3)
		RETURNING id, order_id, ticket_code, status, used_at
	`

	err := tx.QueryRow(ctx, query,
		item.OrderID, item.TicketCode, item.Status,
	).Scan(
		&item.ID,
		&item.OrderID,
		&item.TicketCode,
		&item.Status,
		&item.UsedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create order item: %w", err)
	}

	return item, nil
}

func (r *OrderRepositoryImpl) FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE order_number = $1
	`, orderColumns)

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, orderNumber), &order)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepositoryImpl) FindByUserID(ctx context.Context, userID int) ([]*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*model.Order

	for rows.Next() {
		var order model.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepositoryImpl) FindItemsByOrderID(ctx context.Context, orderID int) ([]*model.OrderItem, error) {
	query := `
		SELECT id, order_id, ticket_code, status, used_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.OrderItem, 0)

	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.TicketCode,
			&item.Status,
			&item.UsedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// FindByOrderNumberWithLock 鎖住訂單行，狀態檢查與更新必須在同一把鎖下完成
func (r *OrderRepositoryImpl) FindByOrderNumberWithLock(ctx context.Context, tx pgx.Tx, orderNumber string) (*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE order_number = $1
		FOR UPDATE
	`, orderColumns)

	var order model.Order
	err := scanOrder(tx.QueryRow(ctx, query, orderNumber), &order)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *OrderRepositoryImpl) UpdateStatus(
	ctx context.Context,
	tx pgx.Tx,
	id int,
	status model.OrderStatus,
	paidAt *time.Time,
) (*model.Order, error) {
	query := fmt.Sprintf(`
		UPDATE orders
		SET status = $1, paid_at = $2
		WHERE id = $3
		RETURNING %s
	`, orderColumns)

	var order model.Order
	err := scanOrder(tx.QueryRow(ctx, query, status, paidAt, id), &order)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

// FindExpiredPendingWithLock 找出已過期的 pending 訂單。
// SKIP LOCKED 避免清理器和線上的付款、取消請求互相卡住。
func (r *OrderRepositoryImpl) FindExpiredPendingWithLock(ctx context.Context, tx pgx.Tx, now time.Time, limit int) ([]*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE status = $1 AND expired_at < $2
		ORDER BY expired_at ASC
		LIMIT $3
		FOR UPDATE SKIP LOCKED
	`, orderColumns)

	rows, err := tx.Query(ctx, query, model.OrderStatusPending, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*model.Order

	for rows.Next() {
		var order model.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

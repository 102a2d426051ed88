package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/repository"
	apperrors "go-gin-ticket-store/pkg/app_errors"
	"go-gin-ticket-store/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	// 創建訂單：鎖票種行、檢查庫存、扣庫存、寫入訂單與票券，單一交易完成
	CreateOrder(ctx context.Context, userID int, req model.CreateOrderRequest) (*model.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	GetOrderItems(ctx context.Context, orderNumber string) ([]*model.OrderItem, error)
	ListUserOrders(ctx context.Context, userID int) ([]*model.Order, error)
	// 付款狀態轉換，取消時回補庫存
	UpdateOrderStatus(ctx context.Context, orderNumber string, status model.OrderStatus) (*model.Order, error)
	// 取消已過期的 pending 訂單，回傳取消數量
	SweepExpiredOrders(ctx context.Context) (int, error)
}

type OrderServiceImpl struct {
	pool             *pgxpool.Pool
	repository       repository.OrderRepository
	ticketRepository repository.TicketRepository
	expireAfter      time.Duration
	lockTimeout      time.Duration
	sweepBatch       int
}

func NewOrderService(
	pool *pgxpool.Pool,
	orderRepository repository.OrderRepository,
	ticketRepository repository.TicketRepository,
	expireAfter time.Duration,
	lockTimeout time.Duration,
	sweepBatch int,
) OrderService {
	return &OrderServiceImpl{
		pool:             pool,
		repository:       orderRepository,
		ticketRepository: ticketRepository,
		expireAfter:      expireAfter,
		lockTimeout:      lockTimeout,
		sweepBatch:       sweepBatch,
	}
}

func (s *OrderServiceImpl) CreateOrder(ctx context.Context, userID int, req model.CreateOrderRequest) (*model.Order, error) {
	// 參數不合法就不碰資料庫
	if userID <= 0 || req.EventID <= 0 || req.TicketID <= 0 || req.Quantity < 1 {
		return nil, apperrors.ErrInvalidInput
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.setLockTimeout(ctx, tx); err != nil {
		return nil, err
	}

	// FOR UPDATE 鎖住票種行：同票種的搶票交易在這裡排隊
	ticket, err := s.ticketRepository.FindByIDWithLock(ctx, tx, req.TicketID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	if ticket.EventID != req.EventID {
		return nil, apperrors.ErrInvalidInput
	}

	if ticket.AvailableQuantity < req.Quantity {
		return nil, apperrors.ErrInsufficientStock
	}

	now := time.Now().UTC()
	order := &model.Order{
		OrderNumber:   newOrderNumber(now),
		UserID:        userID,
		EventID:       req.EventID,
		TicketID:      req.TicketID,
		Quantity:      req.Quantity,
		TotalAmount:   ticket.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Status:        model.OrderStatusPending,
		PaymentMethod: req.PaymentMethod,
		ExpiredAt:     now.Add(s.expireAfter),
	}

	if _, err := s.repository.Create(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := s.ticketRepository.DecrementAvailability(ctx, tx, ticket.ID, req.Quantity); err != nil {
		return nil, err
	}

	order.Items = make([]*model.OrderItem, 0, req.Quantity)
	for i := 1; i <= req.Quantity; i++ {
		item := &model.OrderItem{
			OrderID:    order.ID,
			TicketCode: fmt.Sprintf("%s-%d", order.OrderNumber, i),
			Status:     model.OrderItemStatusValid,
		}
		if _, err := s.repository.CreateItem(ctx, tx, item); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translateStoreErr(err)
	}

	// 只計成功 commit 的訂單
	metrics.OrdersTotal.WithLabelValues(strconv.Itoa(order.EventID), order.PaymentMethod).Inc()

	return order, nil
}

func (s *OrderServiceImpl) GetOrderByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	order, err := s.repository.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	items, err := s.repository.FindItemsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (s *OrderServiceImpl) GetOrderItems(ctx context.Context, orderNumber string) ([]*model.OrderItem, error) {
	order, err := s.repository.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.repository.FindItemsByOrderID(ctx, order.ID)
}

func (s *OrderServiceImpl) ListUserOrders(ctx context.Context, userID int) ([]*model.Order, error) {
	return s.repository.FindByUserID(ctx, userID)
}

func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, orderNumber string, status model.OrderStatus) (*model.Order, error) {
	if status != model.OrderStatusPaid && status != model.OrderStatusCancelled {
		return nil, apperrors.ErrInvalidInput
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.setLockTimeout(ctx, tx); err != nil {
		return nil, err
	}

	// 狀態檢查與更新必須在同一把行鎖下，避免重複付款、付款後取消
	order, err := s.repository.FindByOrderNumberWithLock(ctx, tx, orderNumber)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidTransition
	}

	var paidAt *time.Time
	if status == model.OrderStatusPaid {
		now := time.Now().UTC()
		paidAt = &now
	}

	updated, err := s.repository.UpdateStatus(ctx, tx, order.ID, status, paidAt)
	if err != nil {
		return nil, err
	}

	if status == model.OrderStatusCancelled {
		if err := s.ticketRepository.IncrementAvailability(ctx, tx, order.TicketID, order.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translateStoreErr(err)
	}

	return updated, nil
}

func (s *OrderServiceImpl) SweepExpiredOrders(ctx context.Context) (int, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := s.setLockTimeout(ctx, tx); err != nil {
		return 0, err
	}

	expired, err := s.repository.FindExpiredPendingWithLock(ctx, tx, time.Now().UTC(), s.sweepBatch)
	if err != nil {
		return 0, translateStoreErr(err)
	}

	for _, order := range expired {
		if _, err := s.repository.UpdateStatus(ctx, tx, order.ID, model.OrderStatusCancelled, nil); err != nil {
			return 0, err
		}
		if err := s.ticketRepository.IncrementAvailability(ctx, tx, order.TicketID, order.Quantity); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, translateStoreErr(err)
	}

	if len(expired) > 0 {
		metrics.ExpiredOrdersTotal.Add(float64(len(expired)))
	}

	return len(expired), nil
}

// setLockTimeout 限制行鎖等待時間，慢客戶端不能無限期卡住整個票種
func (s *OrderServiceImpl) setLockTimeout(ctx context.Context, tx pgx.Tx) error {
	if s.lockTimeout <= 0 {
		return nil
	}
	_, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds()))
	return err
}

// newOrderNumber 產生可依建立時間排序的訂單編號，例如 TIX-1717000000000-9F3A1B2C
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("TIX-%d-%s", now.UnixMilli(), suffix)
}

// translateStoreErr 把 lock_timeout 轉成可重試的應用層錯誤
func translateStoreErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "55P03" {
		return apperrors.ErrLockTimeout
	}
	return err
}

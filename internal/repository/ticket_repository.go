package repository

import (
	"context"
	"go-gin-ticket-store/internal/model"
	apperrors "go-gin-ticket-store/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	FindByID(ctx context.Context, id int) (*model.Ticket, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error)
	DecrementAvailability(ctx context.Context, tx pgx.Tx, id int, quantity int) error
	IncrementAvailability(ctx context.Context, tx pgx.Tx, id int, quantity int) error
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (
		event_id, ticket_type, price, total_quantity, available_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, ticket_type, price,
			total_quantity, available_quantity, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		ticket.EventID, ticket.TicketType, ticket.Price,
		ticket.TotalQuantity, ticket.AvailableQuantity,
	).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.TicketType,
		&ticket.Price,
		&ticket.TotalQuantity,
		&ticket.AvailableQuantity,
		&ticket.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Ticket, error) {
	query := `
		SELECT id, event_id, ticket_type, price,
				total_quantity, available_quantity, created_at
		FROM tickets
		WHERE id = $1
	`

	var ticket model.Ticket
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.TicketType,
		&ticket.Price,
		&ticket.TotalQuantity,
		&ticket.AvailableQuantity,
		&ticket.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	query := `
		SELECT id, event_id, ticket_type, price,
				total_quantity, available_quantity, created_at
		FROM tickets
		WHERE event_id = $1
		ORDER BY price ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)

	for rows.Next() {
		var ticket model.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.EventID,
			&ticket.TicketType,
			&ticket.Price,
			&ticket.TotalQuantity,
			&ticket.AvailableQuantity,
			&ticket.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

// FindByIDWithLock 以 FOR UPDATE 鎖住票種行，序列化同票種的搶票交易
func (r *TicketRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error) {
	query := `
		SELECT id, event_id, ticket_type, price,
				total_quantity, available_quantity, created_at
		FROM tickets
		WHERE id = $1
		FOR UPDATE
	`

	var ticket model.Ticket
	err := tx.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.TicketType,
		&ticket.Price,
		&ticket.TotalQuantity,
		&ticket.AvailableQuantity,
		&ticket.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepositoryImpl) DecrementAvailability(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	query := `
		UPDATE tickets
		SET available_quantity = available_quantity - $1
		WHERE id = $2 AND available_quantity >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInsufficientStock
	}

	return nil
}

func (r *TicketRepositoryImpl) IncrementAvailability(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	// 回補不可以超過總量
	query := `
		UPDATE tickets
		SET available_quantity = available_quantity + $1
		WHERE id = $2 AND available_quantity + $1 <= total_quantity
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRestockExceedsTotal
	}

	return nil
}

package service

import (
	"context"

	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/repository"
	apperrors "go-gin-ticket-store/pkg/app_errors"
)

type TicketService interface {
	GetByID(ctx context.Context, id int) (*model.Ticket, error)
	GetAvailability(ctx context.Context, id int) (*model.TicketAvailability, error)
	Create(ctx context.Context, req model.CreateTicketRequest) (*model.Ticket, error)
}

type TicketServiceImpl struct {
	repo      repository.TicketRepository
	eventRepo repository.EventRepository
}

func NewTicketService(repo repository.TicketRepository, eventRepo repository.EventRepository) TicketService {
	return &TicketServiceImpl{repo: repo, eventRepo: eventRepo}
}

func (s *TicketServiceImpl) GetByID(ctx context.Context, id int) (*model.Ticket, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TicketServiceImpl) GetAvailability(ctx context.Context, id int) (*model.TicketAvailability, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.TicketAvailability{
		TicketID:          ticket.ID,
		TicketType:        ticket.TicketType,
		Available:         ticket.IsAvailable(),
		AvailableQuantity: ticket.AvailableQuantity,
		TotalQuantity:     ticket.TotalQuantity,
	}, nil
}

func (s *TicketServiceImpl) Create(ctx context.Context, req model.CreateTicketRequest) (*model.Ticket, error) {
	if req.TotalQuantity < 0 || req.Price.IsNegative() {
		return nil, apperrors.ErrInvalidInput
	}

	if _, err := s.eventRepo.FindByID(ctx, req.EventID); err != nil {
		return nil, err
	}

	ticket := &model.Ticket{
		EventID:           req.EventID,
		TicketType:        req.TicketType,
		Price:             req.Price,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.TotalQuantity,
	}
	return s.repo.Create(ctx, ticket)
}

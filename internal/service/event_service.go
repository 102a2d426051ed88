package service

import (
	"context"

	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/repository"
)

type EventService interface {
	ListPublished(ctx context.Context) ([]*model.Event, error)
	GetByID(ctx context.Context, id int) (*model.Event, error)
	ListTickets(ctx context.Context, eventID int) ([]*model.Ticket, error)
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
}

type EventServiceImpl struct {
	repo       repository.EventRepository
	ticketRepo repository.TicketRepository
}

func NewEventService(repo repository.EventRepository, ticketRepo repository.TicketRepository) EventService {
	return &EventServiceImpl{repo: repo, ticketRepo: ticketRepo}
}

func (s *EventServiceImpl) ListPublished(ctx context.Context) ([]*model.Event, error) {
	return s.repo.ListPublished(ctx)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) ListTickets(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	// 先確認活動存在，404 要分得出是活動還是票種
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.ticketRepo.ListByEventID(ctx, eventID)
}

func (s *EventServiceImpl) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Status:      model.EventStatusDraft,
	}
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	values := map[string]interface{}{}
	if params.Title != nil {
		values["title"] = *params.Title
	}
	if params.Description != nil {
		values["description"] = *params.Description
	}
	if params.EventDate != nil {
		values["event_date"] = *params.EventDate
	}
	if params.Location != nil {
		values["location"] = *params.Location
	}
	if params.ImageURL != nil {
		values["image_url"] = *params.ImageURL
	}
	if params.Status != nil {
		values["status"] = *params.Status
	}
	return s.repo.Update(ctx, id, values)
}

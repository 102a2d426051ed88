package service

import (
	"context"

	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/queue"
	"go-gin-ticket-store/internal/repository"
	apperrors "go-gin-ticket-store/pkg/app_errors"
)

const analyticsListMaxLimit = 1000

type AnalyticsService interface {
	// LogEvent 只發到隊列就返回，落地由 worker 處理
	LogEvent(ctx context.Context, req model.LogAnalyticsEventRequest) error
	ListEvents(ctx context.Context, eventType string, limit int) ([]*model.AnalyticsEvent, error)
}

type AnalyticsServiceImpl struct {
	repo  repository.AnalyticsRepository
	queue queue.AnalyticsQueue
}

func NewAnalyticsService(repo repository.AnalyticsRepository, queue queue.AnalyticsQueue) AnalyticsService {
	return &AnalyticsServiceImpl{repo: repo, queue: queue}
}

func (s *AnalyticsServiceImpl) LogEvent(ctx context.Context, req model.LogAnalyticsEventRequest) error {
	if req.EventType == "" {
		return apperrors.ErrInvalidInput
	}

	event := &model.AnalyticsEvent{
		UserID:        req.UserID,
		SessionID:     req.SessionID,
		EventType:     req.EventType,
		EventData:     req.EventData,
		FlagsSnapshot: req.FlagsSnapshot,
	}

	return s.queue.PublishEvent(ctx, event)
}

func (s *AnalyticsServiceImpl) ListEvents(ctx context.Context, eventType string, limit int) ([]*model.AnalyticsEvent, error) {
	if limit <= 0 || limit > analyticsListMaxLimit {
		limit = 100
	}
	return s.repo.List(ctx, eventType, limit)
}

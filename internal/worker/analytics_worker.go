package worker

import (
	"context"
	"go-gin-ticket-store/internal/queue"
	"go-gin-ticket-store/internal/repository"
	"go-gin-ticket-store/pkg/logger"

	"go.uber.org/zap"
)

// AnalyticsWorker 把隊列中的分析事件落地到資料庫
type AnalyticsWorker interface {
	Start(ctx context.Context) error
}

type AnalyticsWorkerImpl struct {
	repository repository.AnalyticsRepository
	queue      queue.AnalyticsQueue
}

func NewAnalyticsWorker(repository repository.AnalyticsRepository, queue queue.AnalyticsQueue) AnalyticsWorker {
	return &AnalyticsWorkerImpl{
		repository: repository,
		queue:      queue,
	}
}

func (w *AnalyticsWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeEvents(ctx)
	if err != nil {
		return err
	}

	go func() {
		log := logger.WithComponent("analytics-worker")
		for msg := range msgs {
			if err := w.repository.Insert(ctx, msg.Data); err != nil {
				// 資料庫暫時寫不進去就重試
				log.Warn("insert analytics event failed", zap.String("event_type", msg.Data.EventType), zap.Error(err))
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}

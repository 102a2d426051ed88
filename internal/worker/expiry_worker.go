package worker

import (
	"context"
	"time"

	"go-gin-ticket-store/internal/service"
	"go-gin-ticket-store/pkg/logger"

	"go.uber.org/zap"
)

// ExpiryWorker 定時取消已超過保留時間的 pending 訂單並回補庫存
type ExpiryWorker interface {
	Start(ctx context.Context) error
}

type ExpiryWorkerImpl struct {
	service  service.OrderService
	interval time.Duration
}

func NewExpiryWorker(service service.OrderService, interval time.Duration) ExpiryWorker {
	return &ExpiryWorkerImpl{
		service:  service,
		interval: interval,
	}
}

func (w *ExpiryWorkerImpl) Start(ctx context.Context) error {
	go func() {
		log := logger.WithComponent("expiry-worker")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := w.service.SweepExpiredOrders(ctx)
				if err != nil {
					log.Error("sweep expired orders failed", zap.Error(err))
					continue
				}
				if n > 0 {
					log.Info("cancelled expired orders", zap.Int("count", n))
				}
			}
		}
	}()
	return nil
}

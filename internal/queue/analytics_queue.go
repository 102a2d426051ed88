package queue

import (
	"context"
	"go-gin-ticket-store/internal/model"
)

type Delivery struct {
	Data *model.AnalyticsEvent
	Ack  func()
	Nack func(requeue bool)
}

type AnalyticsQueue interface {
	// 發送分析事件到隊列
	PublishEvent(ctx context.Context, event *model.AnalyticsEvent) error
	// 訂閱分析事件隊列
	SubscribeEvents(ctx context.Context) (<-chan Delivery, error)
}

type AnalyticsQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列，測試與單機部署用
	ch chan *model.AnalyticsEvent
}

func NewAnalyticsQueue(bufferSize int) AnalyticsQueue {
	return &AnalyticsQueueImpl{
		ch: make(chan *model.AnalyticsEvent, bufferSize),
	}
}

func (q *AnalyticsQueueImpl) PublishEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	select {
	case q.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *AnalyticsQueueImpl) SubscribeEvents(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: event,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- event // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}

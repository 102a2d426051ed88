package service

import (
	"context"

	"go-gin-ticket-store/internal/cache"
	"go-gin-ticket-store/internal/model"
	"go-gin-ticket-store/internal/repository"
	"go-gin-ticket-store/pkg/logger"

	"go.uber.org/zap"
)

type FeatureFlagService interface {
	List(ctx context.Context) ([]*model.FeatureFlag, error)
	Upsert(ctx context.Context, key string, value bool, description *string) (*model.FeatureFlag, error)
	// IsEnabled 走快取；快取出錯時 fail open 回傳 false 與錯誤由呼叫端決定
	IsEnabled(ctx context.Context, key string) (bool, error)
	Snapshot(ctx context.Context) (map[string]bool, error)
}

type FeatureFlagServiceImpl struct {
	repo  repository.FeatureFlagRepository
	cache cache.FeatureFlagCache
}

func NewFeatureFlagService(repo repository.FeatureFlagRepository, cache cache.FeatureFlagCache) FeatureFlagService {
	return &FeatureFlagServiceImpl{repo: repo, cache: cache}
}

func (s *FeatureFlagServiceImpl) List(ctx context.Context) ([]*model.FeatureFlag, error) {
	return s.repo.List(ctx)
}

func (s *FeatureFlagServiceImpl) Upsert(ctx context.Context, key string, value bool, description *string) (*model.FeatureFlag, error) {
	flag, err := s.repo.Upsert(ctx, &model.FeatureFlag{
		FlagKey:     key,
		FlagValue:   value,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	// 寫入後立刻刷新快取，旗標切換不用等 TTL
	if err := s.cache.Refresh(ctx); err != nil {
		logger.WithComponent("feature-flags").Warn("cache refresh after upsert failed", zap.String("flag_key", key), zap.Error(err))
	}

	return flag, nil
}

func (s *FeatureFlagServiceImpl) IsEnabled(ctx context.Context, key string) (bool, error) {
	return s.cache.IsEnabled(ctx, key)
}

func (s *FeatureFlagServiceImpl) Snapshot(ctx context.Context) (map[string]bool, error) {
	return s.cache.GetAll(ctx)
}

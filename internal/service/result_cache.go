package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"slidequiz/internal/cache"
	"slidequiz/internal/domain"

	"go.uber.org/zap"
)

// ErrResultNotCached is returned when a submitted result is not in the cache.
var ErrResultNotCached = errors.New("quiz result not found in cache")

// resultCache keeps recently submitted results so they can be fetched again,
// as JSON or as a report, without result history.
type resultCache struct {
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func newResultCache(c domain.Cache, ttl time.Duration, logger *zap.Logger) *resultCache {
	return &resultCache{cache: c, ttl: ttl, logger: logger}
}

func (r *resultCache) generateKey(resultID string) string {
	return cache.GenerateCacheKey("quiz", "result", resultID)
}

func (r *resultCache) Put(ctx context.Context, result *domain.QuizResult) error {
	if result == nil {
		return domain.NewInvalidInputError("cannot cache nil result")
	}

	key := r.generateKey(result.ID)
	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal result for caching", err)
	}
	if err := r.cache.Set(ctx, key, string(data), r.ttl); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to set quiz result to cache for key %s", key), err)
	}
	r.logger.Debug("Cached quiz result", zap.String("key", key), zap.Duration("ttl", r.ttl))
	return nil
}

func (r *resultCache) Get(ctx context.Context, resultID string) (*domain.QuizResult, error) {
	key := r.generateKey(resultID)
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, ErrResultNotCached
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get quiz result from cache for key %s", key), err)
	}
	if data == "" {
		return nil, ErrResultNotCached
	}

	var result domain.QuizResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal quiz result from cache for key %s", key), err)
	}
	return &result, nil
}

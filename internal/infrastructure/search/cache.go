package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"pei_compras/internal/infrastructure/metrics"
	"pei_compras/internal/infrastructure/redis"
	"pei_compras/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Store is the slice of the Redis client the cache needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
}

var _ Store = (*redis.Client)(nil)

// CachedSearch serves repeated queries from Redis. Cache failures never fail
// a search; they only cost a provider call.
type CachedSearch struct {
	inner    interfaces.ISupplierSearch
	store    Store
	provider string
	ttl      time.Duration
	log      *zap.Logger
}

var _ interfaces.ISupplierSearch = (*CachedSearch)(nil)

func NewCachedSearch(inner interfaces.ISupplierSearch, store Store, provider string, ttl time.Duration, logger *zap.Logger) *CachedSearch {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &CachedSearch{
		inner:    inner,
		store:    store,
		provider: provider,
		ttl:      ttl,
		log:      logger.Named("search_cache").With(zap.String("provider", provider)),
	}
}

func (c *CachedSearch) Available() bool {
	return c.inner.Available()
}

func (c *CachedSearch) Search(ctx context.Context, q interfaces.SearchQuery) ([]interfaces.SearchResult, error) {
	key := c.key(q)

	cached, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var results []interfaces.SearchResult
		if jerr := json.Unmarshal([]byte(cached), &results); jerr == nil {
			metrics.SearchCacheTotal.WithLabelValues(c.provider, "hit").Inc()
			return results, nil
		}
		c.log.Warn("cache entry unreadable", zap.String("key", key))
	case redis.IsMiss(err):
	default:
		c.log.Warn("cache get failed", zap.Error(err))
	}
	metrics.SearchCacheTotal.WithLabelValues(c.provider, "miss").Inc()

	results, err := c.inner.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return results, nil
	}
	if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil {
		c.log.Warn("cache set failed", zap.Error(err))
	}
	return results, nil
}

func (c *CachedSearch) key(q interfaces.SearchQuery) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", q.Query, q.Locale, q.MaxResults)))
	return "search:" + c.provider + ":" + hex.EncodeToString(sum[:16])
}

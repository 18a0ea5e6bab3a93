package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Inu41123/api-almacen/internal/cfg"
	"github.com/Inu41123/api-almacen/internal/domain"
	"github.com/Inu41123/api-almacen/pkg/clients"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/Inu41123/api-almacen/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const productListKey = "productos:all"

// CacheRepo caches the full product list in Redis with a TTL. Every write path
// invalidates the list; cache failures are logged and treated as misses.
type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProductList returns the cached list, or (nil, nil) on a miss.
func (c *CacheRepo) GetProductList(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil // cache miss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.logger.Warnf("corrupt product list cache entry, dropping it: %v", err)
		if err := c.client.Client.Del(context.Background(), productListKey).Err(); err != nil {
			c.logger.Warnf("redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return products, nil
}

func (c *CacheRepo) SetProductList(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, productListKey, data, c.cfg.ListTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) InvalidateProductList(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, productListKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

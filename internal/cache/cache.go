package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/onedash/product-scraper/internal/models"
)

// ProductCache stores normalized products keyed by platform and id.
// It exists only to reduce load on the upstream marketplaces; every
// failure path degrades to a live scrape, never to an error.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func key(ref models.ProductReference) string {
	return fmt.Sprintf("scrape:%s:%s", ref.Platform, ref.ID())
}

// Get returns the cached product for a reference, or nil on miss,
// decode failure, or when no cache is configured.
func (c *ProductCache) Get(ctx context.Context, ref models.ProductReference) *models.Product {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := c.client.Get(ctx, key(ref)).Bytes()
	if err != nil {
		return nil
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil
	}
	return &product
}

// Set stores a product for the configured TTL. Errors are swallowed;
// the cache is best-effort.
func (c *ProductCache) Set(ctx context.Context, ref models.ProductReference, product *models.Product) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	c.client.Set(ctx, key(ref), data, c.ttl)
}

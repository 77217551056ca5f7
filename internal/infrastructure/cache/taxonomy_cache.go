// Package cache provides read-through caches in front of repositories.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultTaxonomyTTL bounds how stale a cached taxonomy list may get
const DefaultTaxonomyTTL = 5 * time.Minute

// cacheEntry wraps a cached value with its expiration time
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// TaxonomyCache caches the category, product type and brand lists used by
// the storefront filters. Writes through the wrapped repository clear the
// cache; writes made inside transactions reach it through the ProductCreated
// event instead.
//
// Thread Safety: Safe for concurrent use.
type TaxonomyCache struct {
	catalog.TaxonomyRepository

	entries sync.Map // string -> *cacheEntry[...]
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// TaxonomyCacheOption configures the cache
type TaxonomyCacheOption func(*TaxonomyCache)

// WithTTL sets the entry lifetime
func WithTTL(ttl time.Duration) TaxonomyCacheOption {
	return func(c *TaxonomyCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) TaxonomyCacheOption {
	return func(c *TaxonomyCache) {
		c.logger = logger
	}
}

// NewTaxonomyCache wraps repo with a read-through cache
func NewTaxonomyCache(repo catalog.TaxonomyRepository, opts ...TaxonomyCacheOption) *TaxonomyCache {
	c := &TaxonomyCache{
		TaxonomyRepository: repo,
		ttl:                DefaultTaxonomyTTL,
		now:                time.Now,
		logger:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// readThrough returns the cached value for key or loads and stores it.
// Errors are never cached.
func readThrough[T any](ctx context.Context, c *TaxonomyCache, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := c.entries.Load(key); ok {
		if entry, ok := v.(*cacheEntry[T]); ok && c.now().Before(entry.expiresAt) {
			c.hits.Add(1)
			return entry.value, nil
		}
		c.entries.Delete(key)
	}
	c.misses.Add(1)

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.entries.Store(key, &cacheEntry[T]{value: value, expiresAt: c.now().Add(c.ttl)})
	return value, nil
}

// ListCategories returns all categories
func (c *TaxonomyCache) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return readThrough(ctx, c, "categories", c.TaxonomyRepository.ListCategories)
}

// ListProductTypes returns all product types
func (c *TaxonomyCache) ListProductTypes(ctx context.Context) ([]*catalog.ProductType, error) {
	return readThrough(ctx, c, "product_types", c.TaxonomyRepository.ListProductTypes)
}

// ListProductTypesByCategory returns the product types of a category
func (c *TaxonomyCache) ListProductTypesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*catalog.ProductType, error) {
	return readThrough(ctx, c, "product_types:"+categoryID.String(), func(ctx context.Context) ([]*catalog.ProductType, error) {
		return c.TaxonomyRepository.ListProductTypesByCategory(ctx, categoryID)
	})
}

// ListBrandsByProductType returns the brands linked to a product type
func (c *TaxonomyCache) ListBrandsByProductType(ctx context.Context, productTypeID uuid.UUID) ([]*catalog.Brand, error) {
	return readThrough(ctx, c, "brands:"+productTypeID.String(), func(ctx context.Context) ([]*catalog.Brand, error) {
		return c.TaxonomyRepository.ListBrandsByProductType(ctx, productTypeID)
	})
}

// SaveCategory saves a category and clears the cache
func (c *TaxonomyCache) SaveCategory(ctx context.Context, cat *catalog.Category) error {
	defer c.Invalidate()
	return c.TaxonomyRepository.SaveCategory(ctx, cat)
}

// SaveProductType saves a product type and clears the cache
func (c *TaxonomyCache) SaveProductType(ctx context.Context, pt *catalog.ProductType) error {
	defer c.Invalidate()
	return c.TaxonomyRepository.SaveProductType(ctx, pt)
}

// GetOrCreateProductType delegates and clears the cache
func (c *TaxonomyCache) GetOrCreateProductType(ctx context.Context, name string, categoryID uuid.UUID) (*catalog.ProductType, error) {
	defer c.Invalidate()
	return c.TaxonomyRepository.GetOrCreateProductType(ctx, name, categoryID)
}

// GetOrCreateBrand delegates and clears the cache
func (c *TaxonomyCache) GetOrCreateBrand(ctx context.Context, name string) (*catalog.Brand, error) {
	defer c.Invalidate()
	return c.TaxonomyRepository.GetOrCreateBrand(ctx, name)
}

// LinkBrandToProductType delegates and clears the cache
func (c *TaxonomyCache) LinkBrandToProductType(ctx context.Context, brandID, productTypeID uuid.UUID) error {
	defer c.Invalidate()
	return c.TaxonomyRepository.LinkBrandToProductType(ctx, brandID, productTypeID)
}

// Invalidate drops every cached entry
func (c *TaxonomyCache) Invalidate() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
}

// Stats returns the hit and miss counts
func (c *TaxonomyCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// EventTypes returns the event types this handler is interested in
func (c *TaxonomyCache) EventTypes() []string {
	return []string{catalog.EventTypeProductCreated}
}

// Handle clears the cache: product creation may have added product types or brands
func (c *TaxonomyCache) Handle(_ context.Context, event shared.DomainEvent) error {
	c.logger.Debug("Taxonomy cache invalidated", zap.String("event_type", event.EventType()))
	c.Invalidate()
	return nil
}

var (
	_ catalog.TaxonomyRepository = (*TaxonomyCache)(nil)
	_ shared.EventHandler        = (*TaxonomyCache)(nil)
)

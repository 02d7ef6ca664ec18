package product

import (
	"context"
	"fmt"

	"github.com/shopfront/go-client/api"
	"github.com/shopfront/go-client/cache"
	"github.com/shopfront/go-client/logger"
	"github.com/shopfront/go-client/sys"
)

const basePath = "/api/products"

// Cache key entity types. The list key is "products"; item keys are
// "product:<id>".
const (
	listType = "products"
	itemType = "product"
)

// ListKey addresses the cached product list.
func ListKey() cache.Key {
	return cache.List(listType, nil)
}

// ItemKey addresses one cached product.
func ItemKey(id int64) cache.Key {
	return cache.ItemID(itemType, id)
}

// Service exposes product reads and writes with cache consistency. The
// invalidation policy: every create, update and delete invalidates the
// list key; update and delete additionally invalidate the item key of the
// affected id. A create never pre-populates the item key from its
// response — the first read of a created product is a fresh fetch. That
// costs one extra request but keeps the cache's contents uniformly
// server-derived, matching the original design.
type Service struct {
	client *api.Client
	cache  *cache.Store
	logger logger.Logger
}

// NewService wires a Service. All arguments are required.
func NewService(log logger.Logger, client *api.Client, store *cache.Store) *Service {
	switch {
	case log == nil:
		panic("product: NewService called with nil logger")
	case client == nil:
		panic("product: NewService called with nil api client")
	case store == nil:
		panic("product: NewService called with nil cache store")
	}
	return &Service{client: client, cache: store, logger: log}
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

// List returns all products, served from cache when the list entry is
// ready.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return cache.Query(ctx, s.cache, ListKey(), func(ctx context.Context) ([]Product, error) {
		return api.Get[[]Product](ctx, s.client, basePath)
	})
}

// Get returns one product by id, served from cache when its entry is
// ready. A missing id surfaces as an error wrapping api.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return cache.Query(ctx, s.cache, ItemKey(id), func(ctx context.Context) (Product, error) {
		return api.Get[Product](ctx, s.client, itemPath(id))
	})
}

// Create adds a product. On success the list key is invalidated before
// the result is returned; the new product's item key is left alone (see
// the type comment).
func (s *Service) Create(ctx context.Context, in CreateProduct) sys.Result[Product] {
	return cache.Mutate(ctx, s.cache, []cache.Key{ListKey()}, func(ctx context.Context) (Product, error) {
		return api.Post[Product](ctx, s.client, basePath, in)
	})
}

// Update applies a partial update. On success the list key and the item
// key for id are invalidated before the result is returned.
func (s *Service) Update(ctx context.Context, id int64, in UpdateProduct) sys.Result[Product] {
	return cache.Mutate(ctx, s.cache, []cache.Key{ListKey(), ItemKey(id)}, func(ctx context.Context) (Product, error) {
		return api.Put[Product](ctx, s.client, itemPath(id), in)
	})
}

// Delete removes a product. On success the list key and the item key for
// id are invalidated before the result is returned.
func (s *Service) Delete(ctx context.Context, id int64) sys.Result[struct{}] {
	return cache.Mutate(ctx, s.cache, []cache.Key{ListKey(), ItemKey(id)}, func(ctx context.Context) (struct{}, error) {
		return api.Delete[struct{}](ctx, s.client, itemPath(id))
	})
}

package catalog

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// CategoryRepository persists categories. List queries fill ProductCount.
type CategoryRepository interface {
	shared.Repository[Category]
}

// ProductRepository persists products
type ProductRepository interface {
	shared.Repository[Product]
	// FindByIDs returns the products with the given ids keyed by id; missing ids are absent
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*Product, error)
}

package persistence

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

const productCountColumn = "(SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS product_count"

var categoryQuery = &changelistQuery{
	table: "categories",
	search: map[string]lookup{
		"name": {column: "categories.name"},
	},
	filters:      map[string]lookup{},
	sort:         CategorySortFields,
	defaultOrder: "categories.name ASC, categories.id ASC",
}

var productQuery = &changelistQuery{
	table: "products",
	search: map[string]lookup{
		"name":           {column: "products.name"},
		"description":    {column: "products.description"},
		"brand":          {column: "products.brand"},
		"category__name": {column: "categories.name", join: "JOIN categories ON categories.id = products.category_id"},
	},
	filters: map[string]lookup{
		"category":   {column: "products.category_id", kind: lookupID},
		"brand":      {column: "products.brand"},
		"created_at": {column: "products.created_at", kind: lookupDate},
	},
	sort:         ProductSortFields,
	defaultOrder: "products.id DESC",
}

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	gormRepository[catalog.Category]
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	r := &GormCategoryRepository{newGormRepository[catalog.Category](db, categoryQuery)}
	withCount := func(tx *gorm.DB) *gorm.DB {
		return tx.Select("categories.*, " + productCountColumn)
	}
	r.list = withCount
	r.detail = withCount
	return r
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	gormRepository[catalog.Product]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	r := &GormProductRepository{newGormRepository[catalog.Product](db, productQuery)}
	withCategory := func(tx *gorm.DB) *gorm.DB { return tx.Preload("Category") }
	r.list = withCategory
	r.detail = withCategory
	return r
}

// FindByIDs returns the products with the given ids keyed by id
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*catalog.Product, error) {
	out := make(map[int64]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}

// Ensure interfaces are implemented
var (
	_ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
	_ catalog.ProductRepository  = (*GormProductRepository)(nil)
)

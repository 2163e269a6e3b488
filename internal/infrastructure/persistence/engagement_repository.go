package persistence

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/engagement"
	"gorm.io/gorm"
)

var reviewQuery = &changelistQuery{
	table: "reviews",
	search: map[string]lookup{
		"product__name":  {column: "products.name", join: "JOIN products ON products.id = reviews.product_id"},
		"user__username": {column: "users.username", join: "JOIN users ON users.id = reviews.user_id"},
		"comment":        {column: "reviews.comment"},
	},
	filters: map[string]lookup{
		"rating":     {column: "reviews.rating", kind: lookupInt},
		"created_at": {column: "reviews.created_at", kind: lookupDate},
		"product":    {column: "reviews.product_id", kind: lookupID},
		"user":       {column: "reviews.user_id", kind: lookupID},
	},
	sort:         ReviewSortFields,
	defaultOrder: "reviews.id DESC",
}

var favoriteQuery = &changelistQuery{
	table: "favorites",
	search: map[string]lookup{
		"product__name":  {column: "products.name", join: "JOIN products ON products.id = favorites.product_id"},
		"user__username": {column: "users.username", join: "JOIN users ON users.id = favorites.user_id"},
	},
	filters: map[string]lookup{
		"created_at": {column: "favorites.created_at", kind: lookupDate},
		"user":       {column: "favorites.user_id", kind: lookupID},
		"product":    {column: "favorites.product_id", kind: lookupID},
	},
	sort:         FavoriteSortFields,
	defaultOrder: "favorites.id DESC",
}

var promotionQuery = &changelistQuery{
	table: "promotions",
	search: map[string]lookup{
		"product__name": {column: "products.name", join: "JOIN products ON products.id = promotions.product_id"},
		"description":   {column: "promotions.description"},
	},
	filters: map[string]lookup{
		"product":    {column: "promotions.product_id", kind: lookupID},
		"start_date": {column: "promotions.start_date", kind: lookupDate},
	},
	sort:         PromotionSortFields,
	defaultOrder: "promotions.start_date DESC, promotions.id DESC",
}

func withUserAndProduct(tx *gorm.DB) *gorm.DB {
	return tx.Preload("User").Preload("Product")
}

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	gormRepository[engagement.Review]
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	r := &GormReviewRepository{newGormRepository[engagement.Review](db, reviewQuery)}
	r.list = withUserAndProduct
	r.detail = withUserAndProduct
	return r
}

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	gormRepository[engagement.Favorite]
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	r := &GormFavoriteRepository{newGormRepository[engagement.Favorite](db, favoriteQuery)}
	r.list = withUserAndProduct
	r.detail = withUserAndProduct
	r.conflict = engagement.ErrAlreadyFavorite
	return r
}

// Exists reports whether the pair is favorited by a row other than excludeID
func (r *GormFavoriteRepository) Exists(ctx context.Context, userID, productID int64, excludeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&engagement.Favorite{}).
		Where("user_id = ? AND product_id = ? AND id <> ?", userID, productID, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormPromotionRepository implements PromotionRepository using GORM
type GormPromotionRepository struct {
	gormRepository[engagement.Promotion]
}

// NewGormPromotionRepository creates a new GormPromotionRepository
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	r := &GormPromotionRepository{newGormRepository[engagement.Promotion](db, promotionQuery)}
	withProduct := func(tx *gorm.DB) *gorm.DB { return tx.Preload("Product") }
	r.list = withProduct
	r.detail = withProduct
	return r
}

// Ensure interfaces are implemented
var (
	_ engagement.ReviewRepository    = (*GormReviewRepository)(nil)
	_ engagement.FavoriteRepository  = (*GormFavoriteRepository)(nil)
	_ engagement.PromotionRepository = (*GormPromotionRepository)(nil)
)

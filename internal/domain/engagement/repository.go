package engagement

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// ReviewRepository persists reviews
type ReviewRepository interface {
	shared.Repository[Review]
}

// FavoriteRepository persists favorites. Save returns ErrAlreadyFavorite when
// the (user, product) pair exists.
type FavoriteRepository interface {
	shared.Repository[Favorite]
	Exists(ctx context.Context, userID, productID int64, excludeID int64) (bool, error)
}

// PromotionRepository persists promotions
type PromotionRepository interface {
	shared.Repository[Promotion]
}

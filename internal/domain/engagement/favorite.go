package engagement

import (
	"fmt"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ErrAlreadyFavorite is returned when the user already favorited the product
var ErrAlreadyFavorite = shared.NewDomainError("ALREADY_EXISTS", "Product is already in the user's favorites")

// Favorite marks a product as favorited by a user; the pair is unique
type Favorite struct {
	shared.BaseEntity
	UserID    int64            `gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	User      *identity.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID int64            `gorm:"not null;uniqueIndex:idx_favorites_user_product"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite creates a favorite for the pair
func NewFavorite(userID, productID int64) (*Favorite, error) {
	f := &Favorite{}
	if err := f.Apply(userID, productID); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply changes the pair
func (f *Favorite) Apply(userID, productID int64) error {
	switch {
	case userID <= 0:
		return shared.NewValidationError("User is required")
	case productID <= 0:
		return shared.NewValidationError("Product is required")
	}
	if f.UserID != userID {
		f.User = nil
	}
	if f.ProductID != productID {
		f.Product = nil
	}
	f.UserID = userID
	f.ProductID = productID
	return nil
}

func (f Favorite) String() string {
	return fmt.Sprintf("%s в избранном у %s", productName(f.Product), username(f.User))
}

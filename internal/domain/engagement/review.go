package engagement

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
)

const (
	MinRating = 1
	MaxRating = 5

	shortCommentLen = 50
)

// Review is a user's rating of a product
type Review struct {
	shared.BaseEntity
	UserID    int64            `gorm:"not null;index"`
	User      *identity.User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID int64            `gorm:"not null;index"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Rating    int              `gorm:"type:smallint;not null"`
	Comment   string           `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// ReviewFields are the editable attributes of a review
type ReviewFields struct {
	UserID    int64
	ProductID int64
	Rating    int
	Comment   string
}

// NewReview creates a review
func NewReview(f ReviewFields) (*Review, error) {
	r := &Review{}
	if err := r.Apply(f); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply overwrites the review attributes after validating them
func (r *Review) Apply(f ReviewFields) error {
	switch {
	case f.UserID <= 0:
		return shared.NewValidationError("User is required")
	case f.ProductID <= 0:
		return shared.NewValidationError("Product is required")
	case f.Rating < MinRating || f.Rating > MaxRating:
		return shared.NewValidationError(fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating))
	}
	if r.UserID != f.UserID {
		r.User = nil
	}
	if r.ProductID != f.ProductID {
		r.Product = nil
	}
	r.UserID = f.UserID
	r.ProductID = f.ProductID
	r.Rating = f.Rating
	r.Comment = f.Comment
	return nil
}

// ShortComment truncates the comment to 50 characters for list views
func (r *Review) ShortComment() string {
	return ShortText(r.Comment, shortCommentLen)
}

func (r Review) String() string {
	return fmt.Sprintf("Отзыв от %s на %s", username(r.User), productName(r.Product))
}

// ShortText keeps the first n runes of s and appends "..." when s is longer
func ShortText(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func username(u *identity.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}

func productName(p *catalog.Product) string {
	if p == nil {
		return ""
	}
	return p.Name
}

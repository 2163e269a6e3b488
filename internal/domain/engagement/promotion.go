package engagement

import (
	"fmt"
	"time"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// Promotion is a dated discount campaign on a product
type Promotion struct {
	shared.BaseEntity
	ProductID   int64            `gorm:"not null;index"`
	Product     *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Description string           `gorm:"type:text;not null"`
	StartDate   time.Time        `gorm:"type:date;not null"`
	EndDate     time.Time        `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (Promotion) TableName() string {
	return "promotions"
}

// PromotionFields are the editable attributes of a promotion
type PromotionFields struct {
	ProductID   int64
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

// NewPromotion creates a promotion
func NewPromotion(f PromotionFields) (*Promotion, error) {
	p := &Promotion{}
	if err := p.Apply(f); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply overwrites the promotion. Dates are truncated to calendar days.
func (p *Promotion) Apply(f PromotionFields) error {
	start, end := shared.DateOf(f.StartDate), shared.DateOf(f.EndDate)
	switch {
	case f.ProductID <= 0:
		return shared.NewValidationError("Product is required")
	case f.StartDate.IsZero() || f.EndDate.IsZero():
		return shared.NewValidationError("Start and end dates are required")
	case end.Before(start):
		return shared.NewValidationError("End date cannot be before start date")
	}
	if p.ProductID != f.ProductID {
		p.Product = nil
	}
	p.ProductID = f.ProductID
	p.Description = f.Description
	p.StartDate = start
	p.EndDate = end
	return nil
}

// IsActive reports whether the promotion covers the calendar date of now
func (p *Promotion) IsActive(now time.Time) bool {
	today := shared.DateOf(now)
	return !today.Before(p.StartDate) && !today.After(p.EndDate)
}

func (p Promotion) String() string {
	return fmt.Sprintf("Акция на %s", productName(p.Product))
}

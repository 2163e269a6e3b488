package catalog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expiry status labels shown in the product changelist
const (
	ExpiryNoData  = "Нет данных"
	ExpiryInDate  = "Срок годности"
	ExpiryExpired = "Просрочено"
)

// Product is a sellable catalog item
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text;not null"`
	CategoryID  int64           `gorm:"not null;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null"`
	Brand       string          `gorm:"type:varchar(100);not null"`
	ExpiryDate  *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductFields are the editable attributes of a product
type ProductFields struct {
	Name        string
	Description string
	CategoryID  int64
	Price       decimal.Decimal
	Stock       int
	Brand       string
	ExpiryDate  *time.Time
}

// Validate checks the field constraints of the products table
func (f ProductFields) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return shared.NewValidationError("Product name cannot be empty")
	case utf8.RuneCountInString(f.Name) > 200:
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	case strings.TrimSpace(f.Brand) == "":
		return shared.NewValidationError("Brand cannot be empty")
	case utf8.RuneCountInString(f.Brand) > 100:
		return shared.NewValidationError("Brand cannot exceed 100 characters")
	case f.CategoryID <= 0:
		return shared.NewValidationError("Category is required")
	case f.Price.IsNegative():
		return shared.NewValidationError("Price cannot be negative")
	case f.Stock < 0:
		return shared.NewValidationError("Stock cannot be negative")
	}
	return nil
}

// NewProduct creates a product from validated fields
func NewProduct(f ProductFields) (*Product, error) {
	p := &Product{}
	if err := p.Apply(f); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply overwrites the editable attributes after validating them
func (p *Product) Apply(f ProductFields) error {
	if err := f.Validate(); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(f.Name)
	p.Description = f.Description
	if p.CategoryID != f.CategoryID {
		p.Category = nil
	}
	p.CategoryID = f.CategoryID
	p.Price = f.Price.Round(2)
	p.Stock = f.Stock
	p.Brand = strings.TrimSpace(f.Brand)
	if f.ExpiryDate != nil {
		d := shared.DateOf(*f.ExpiryDate)
		p.ExpiryDate = &d
	} else {
		p.ExpiryDate = nil
	}
	return nil
}

// ExpiryStatus classifies the expiry date against the calendar date of now.
// A product expiring today is already expired.
func (p *Product) ExpiryStatus(now time.Time) string {
	if p.ExpiryDate == nil {
		return ExpiryNoData
	}
	if shared.DateOf(*p.ExpiryDate).After(shared.DateOf(now)) {
		return ExpiryInDate
	}
	return ExpiryExpired
}

func (p Product) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Brand)
}

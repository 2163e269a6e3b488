package order

import (
	"strings"
	"unicode/utf8"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DeliveryMethod is a shipping option an order may reference
type DeliveryMethod struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(100);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"type:text;not null;default:''"`
}

// TableName returns the table name for GORM
func (DeliveryMethod) TableName() string {
	return "delivery_methods"
}

// NewDeliveryMethod creates a delivery method
func NewDeliveryMethod(name string, price decimal.Decimal, description string) (*DeliveryMethod, error) {
	d := &DeliveryMethod{}
	if err := d.Update(name, price, description); err != nil {
		return nil, err
	}
	return d, nil
}

// Update replaces the delivery method's attributes
func (d *DeliveryMethod) Update(name string, price decimal.Decimal, description string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return shared.NewValidationError("Delivery method name cannot be empty")
	case utf8.RuneCountInString(name) > 100:
		return shared.NewValidationError("Delivery method name cannot exceed 100 characters")
	case price.IsNegative():
		return shared.NewValidationError("Delivery price cannot be negative")
	}
	d.Name = name
	d.Price = price.Round(2)
	d.Description = description
	return nil
}

func (d DeliveryMethod) String() string {
	return d.Name
}

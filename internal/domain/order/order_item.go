package order

import (
	"fmt"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrItemProductRequired is returned when an order item has no product
var ErrItemProductRequired = shared.NewValidationError("Order item product is required")

// OrderItem is a product line of an order. Price is the unit price snapshot.
type OrderItem struct {
	shared.BaseEntity
	OrderID   int64            `gorm:"not null;index"`
	ProductID int64            `gorm:"not null;index"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int              `gorm:"not null"`
	Price     *decimal.Decimal `gorm:"type:decimal(10,2)"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// HasNoPrice reports whether the price is unset. Zero is a price.
func (i *OrderItem) HasNoPrice() bool {
	return i.Price == nil
}

// BackfillPrice copies the product's current price into an unset price and
// reports whether it did
func (i *OrderItem) BackfillPrice(p *catalog.Product) bool {
	if !i.HasNoPrice() || p == nil {
		return false
	}
	price := p.Price
	i.Price = &price
	return true
}

// Subtotal is price times quantity, zero while the price is unset
func (i *OrderItem) Subtotal() decimal.Decimal {
	if i.Price == nil {
		return decimal.Zero
	}
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate checks the item before it is persisted
func (i *OrderItem) Validate() error {
	if i.ProductID <= 0 {
		return ErrItemProductRequired
	}
	if i.Quantity < 1 {
		return shared.NewValidationError("Quantity must be at least 1")
	}
	if i.Price != nil && i.Price.IsNegative() {
		return shared.NewValidationError("Item price cannot be negative")
	}
	return nil
}

func (i OrderItem) String() string {
	name := ""
	if i.Product != nil {
		name = i.Product.Name
	}
	return fmt.Sprintf("%s x%d в заказе #%d", name, i.Quantity, i.OrderID)
}

// PrepareItems validates the items and backfills missing prices from products,
// which must hold every referenced product id. It returns the number of
// backfilled items; on error no item has been modified.
func PrepareItems(items []OrderItem, products map[int64]*catalog.Product) (int, error) {
	for idx := range items {
		if err := items[idx].Validate(); err != nil {
			return 0, err
		}
		if _, ok := products[items[idx].ProductID]; !ok {
			return 0, shared.ErrNotFound
		}
	}
	filled := 0
	for idx := range items {
		it := &items[idx]
		p := products[it.ProductID]
		if it.BackfillPrice(p) {
			filled++
		} else if it.Price != nil {
			rounded := it.Price.Round(2)
			it.Price = &rounded
		}
		it.Product = p
	}
	return filled, nil
}

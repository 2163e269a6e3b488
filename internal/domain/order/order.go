package order

import (
	"fmt"
	"strings"

	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// NotPaid is the payment summary of an order without payments
const NotPaid = "Не оплачен"

// Order is a customer order with its inline items and payments
type Order struct {
	shared.BaseEntity
	UserID           int64           `gorm:"not null;index"`
	User             *identity.User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;default:'new'"`
	DeliveryMethodID *int64          `gorm:"index"`
	DeliveryMethod   *DeliveryMethod `gorm:"foreignKey:DeliveryMethodID;constraint:OnDelete:SET NULL"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments         []Payment       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderFields are the editable header attributes of an order
type OrderFields struct {
	UserID           int64
	TotalPrice       decimal.Decimal
	Status           OrderStatus
	DeliveryMethodID *int64
}

// NewOrder creates an order. An empty status defaults to new.
func NewOrder(f OrderFields) (*Order, error) {
	if f.Status == "" {
		f.Status = OrderStatusNew
	}
	o := &Order{}
	if err := o.Apply(f); err != nil {
		return nil, err
	}
	return o, nil
}

// Apply overwrites the header attributes. CreatedAt is never touched.
func (o *Order) Apply(f OrderFields) error {
	switch {
	case f.UserID <= 0:
		return shared.NewValidationError("User is required")
	case f.TotalPrice.IsNegative():
		return shared.NewValidationError("Total price cannot be negative")
	case !f.Status.IsValid():
		return shared.NewValidationError(fmt.Sprintf("Unknown order status %q", f.Status))
	case f.DeliveryMethodID != nil && *f.DeliveryMethodID <= 0:
		return shared.NewValidationError("Invalid delivery method")
	}
	if o.UserID != f.UserID {
		o.User = nil
	}
	o.UserID = f.UserID
	o.TotalPrice = f.TotalPrice.Round(2)
	o.Status = f.Status
	if !sameID(o.DeliveryMethodID, f.DeliveryMethodID) {
		o.DeliveryMethod = nil
	}
	o.DeliveryMethodID = f.DeliveryMethodID
	return nil
}

// PaymentStatusSummary joins the status labels of the loaded payments in their
// current order, or returns NotPaid when there are none.
func (o *Order) PaymentStatusSummary() string {
	if len(o.Payments) == 0 {
		return NotPaid
	}
	labels := make([]string, len(o.Payments))
	for i, p := range o.Payments {
		labels[i] = p.Status.Label()
	}
	return strings.Join(labels, ", ")
}

// ItemsTotal sums the subtotals of items that carry a price
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	return total
}

func (o Order) String() string {
	username := ""
	if o.User != nil {
		username = o.User.Username
	}
	return fmt.Sprintf("Заказ #%d от %s", o.ID, username)
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

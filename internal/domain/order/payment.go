package order

import (
	"fmt"
	"time"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment is a payment attempt against an order
type Payment struct {
	shared.BaseEntity
	OrderID     int64           `gorm:"not null;index"`
	PaymentDate time.Time       `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Method      PaymentMethod   `gorm:"type:varchar(20);not null"`
	Status      PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment dated now. An empty status defaults to pending.
func NewPayment(orderID int64, amount decimal.Decimal, method PaymentMethod, status PaymentStatus, now time.Time) (*Payment, error) {
	p := &Payment{OrderID: orderID, PaymentDate: now}
	if status == "" {
		status = PaymentStatusPending
	}
	if err := p.Update(amount, method, status); err != nil {
		return nil, err
	}
	if orderID <= 0 {
		return nil, shared.NewValidationError("Order is required")
	}
	return p, nil
}

// Update changes the editable payment attributes. PaymentDate is fixed at creation.
func (p *Payment) Update(amount decimal.Decimal, method PaymentMethod, status PaymentStatus) error {
	switch {
	case amount.IsNegative():
		return shared.NewValidationError("Payment amount cannot be negative")
	case !method.IsValid():
		return shared.NewValidationError(fmt.Sprintf("Unknown payment method %q", method))
	case !status.IsValid():
		return shared.NewValidationError(fmt.Sprintf("Unknown payment status %q", status))
	}
	p.Amount = amount.Round(2)
	p.Method = method
	p.Status = status
	return nil
}

func (p Payment) String() string {
	return fmt.Sprintf("Платеж #%d для заказа #%d", p.ID, p.OrderID)
}

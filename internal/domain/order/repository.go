package order

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// OrderRepository persists orders. FindByID preloads user, delivery method,
// items with products and payments ordered by id.
type OrderRepository interface {
	shared.Repository[Order]
	// SaveItems replaces the item set of an order in one transaction: items
	// absent from the slice are deleted, the rest are created or updated.
	SaveItems(ctx context.Context, orderID int64, items []OrderItem) error
	// SaveGraph saves the order header, items and payments in one transaction
	SaveGraph(ctx context.Context, o *Order) error
}

// PaymentRepository persists payments
type PaymentRepository interface {
	shared.Repository[Payment]
}

// DeliveryMethodRepository persists delivery methods
type DeliveryMethodRepository interface {
	shared.Repository[DeliveryMethod]
}

package persistence

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/order"
	"github.com/shopadmin/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const joinOrderUser = "JOIN users ON users.id = orders.user_id"

var orderQuery = &changelistQuery{
	table: "orders",
	search: map[string]lookup{
		"user__username": {column: "users.username", join: joinOrderUser},
		"user__email":    {column: "users.email", join: joinOrderUser},
	},
	filters: map[string]lookup{
		"status":          {column: "orders.status"},
		"created_at":      {column: "orders.created_at", kind: lookupDate},
		"delivery_method": {column: "orders.delivery_method_id", kind: lookupID},
		"user":            {column: "orders.user_id", kind: lookupID},
	},
	sort:         OrderSortFields,
	defaultOrder: "orders.created_at DESC, orders.id DESC",
}

var paymentQuery = &changelistQuery{
	table:  "payments",
	search: map[string]lookup{},
	filters: map[string]lookup{
		"order":        {column: "payments.order_id", kind: lookupID},
		"status":       {column: "payments.status"},
		"method":       {column: "payments.method"},
		"payment_date": {column: "payments.payment_date", kind: lookupDate},
	},
	sort:         PaymentSortFields,
	defaultOrder: "payments.id ASC",
}

var deliveryMethodQuery = &changelistQuery{
	table: "delivery_methods",
	search: map[string]lookup{
		"name": {column: "delivery_methods.name"},
	},
	filters:      map[string]lookup{},
	sort:         DeliveryMethodSortFields,
	defaultOrder: "delivery_methods.name ASC, delivery_methods.id ASC",
}

// paymentsInInsertionOrder preloads payments the way the payment summary reads them
func paymentsInInsertionOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order("payments.id ASC")
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	gormRepository[order.Order]
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	r := &GormOrderRepository{newGormRepository[order.Order](db, orderQuery)}
	r.list = func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("User").Preload("Payments", paymentsInInsertionOrder)
	}
	r.detail = func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("User").
			Preload("DeliveryMethod").
			Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_items.id ASC") }).
			Preload("Items.Product").
			Preload("Payments", paymentsInInsertionOrder)
	}
	return r
}

// SaveItems replaces the item set of an order in one transaction
func (r *GormOrderRepository) SaveItems(ctx context.Context, orderID int64, items []order.OrderItem) error {
	return r.translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&order.Order{}).Where("id = ?", orderID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return shared.ErrNotFound
		}
		return replaceChildren(tx, orderID, items, itemRef)
	}))
}

// SaveGraph saves the order header with its items and payments in one transaction
func (r *GormOrderRepository) SaveGraph(ctx context.Context, o *order.Order) error {
	return r.translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(o).Error; err != nil {
			return err
		}
		if err := replaceChildren(tx, o.ID, o.Items, itemRef); err != nil {
			return err
		}
		return replaceChildren(tx, o.ID, o.Payments, paymentRef)
	}))
}

// childRef exposes the key columns of an order's inline rows
type childRef[C any] func(c *C) (id *int64, orderID *int64)

func itemRef(it *order.OrderItem) (*int64, *int64) { return &it.ID, &it.OrderID }
func paymentRef(p *order.Payment) (*int64, *int64) { return &p.ID, &p.OrderID }

// replaceChildren deletes the order's rows that are not in children and saves
// the rest. Existing ids must already belong to the order.
func replaceChildren[C any](tx *gorm.DB, orderID int64, children []C, ref childRef[C]) error {
	keep := make([]int64, 0, len(children))
	for i := range children {
		if id, _ := ref(&children[i]); *id != 0 {
			keep = append(keep, *id)
		}
	}

	if len(keep) > 0 {
		var owned int64
		if err := tx.Model(new(C)).Where("order_id = ? AND id IN ?", orderID, keep).Count(&owned).Error; err != nil {
			return err
		}
		if int(owned) != len(keep) {
			return shared.ErrNotFound
		}
		if err := tx.Where("order_id = ? AND id NOT IN ?", orderID, keep).Delete(new(C)).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", orderID).Delete(new(C)).Error; err != nil {
			return err
		}
	}

	for i := range children {
		_, oid := ref(&children[i])
		*oid = orderID
		if err := tx.Omit(clause.Associations).Save(&children[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	gormRepository[order.Payment]
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{newGormRepository[order.Payment](db, paymentQuery)}
}

// GormDeliveryMethodRepository implements DeliveryMethodRepository using GORM
type GormDeliveryMethodRepository struct {
	gormRepository[order.DeliveryMethod]
}

// NewGormDeliveryMethodRepository creates a new GormDeliveryMethodRepository
func NewGormDeliveryMethodRepository(db *gorm.DB) *GormDeliveryMethodRepository {
	return &GormDeliveryMethodRepository{newGormRepository[order.DeliveryMethod](db, deliveryMethodQuery)}
}

// Ensure interfaces are implemented
var (
	_ order.OrderRepository          = (*GormOrderRepository)(nil)
	_ order.PaymentRepository        = (*GormPaymentRepository)(nil)
	_ order.DeliveryMethodRepository = (*GormDeliveryMethodRepository)(nil)
)

package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/order"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Reference errors raised while validating an order's foreign keys
var (
	ErrUserNotFound           = shared.NewValidationError("User not found")
	ErrDeliveryMethodNotFound = shared.NewValidationError("Delivery method not found")
)

// OrderService handles orders and their inline items and payments
type OrderService struct {
	orderRepo    order.OrderRepository
	productRepo  catalog.ProductRepository
	userRepo     identity.UserRepository
	deliveryRepo order.DeliveryMethodRepository
	metrics      *telemetry.ShopMetrics
	logger       *zap.Logger
	now          func() time.Time
}

// NewOrderService creates a new OrderService. metrics may be nil.
func NewOrderService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	deliveryRepo order.DeliveryMethodRepository,
	metrics *telemetry.ShopMetrics,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		deliveryRepo: deliveryRepo,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Create creates an order together with its items and payments. Items
// without a price take their product's current price.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	o, err := order.NewOrder(order.OrderFields{
		UserID:           req.UserID,
		TotalPrice:       req.TotalPrice,
		Status:           order.OrderStatus(req.Status),
		DeliveryMethodID: req.DeliveryMethodID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, o.UserID, o.DeliveryMethodID); err != nil {
		return nil, err
	}

	items, err := buildItems(nil, req.Items)
	if err != nil {
		return nil, err
	}
	backfilled, err := s.prepareItems(ctx, items)
	if err != nil {
		return nil, err
	}
	payments, err := s.buildPayments(nil, req.Payments)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.Payments = payments

	if err := s.orderRepo.SaveGraph(ctx, o); err != nil {
		return nil, err
	}
	s.metrics.RecordPriceBackfills(ctx, o.ID, backfilled)
	s.logger.Info("Order created",
		zap.Int64("order_id", o.ID),
		zap.Int("items", len(items)),
		zap.Int("backfilled_prices", backfilled),
	)
	return s.Get(ctx, o.ID)
}

// Get retrieves an order with user, delivery method, items and payments
func (s *OrderService) Get(ctx context.Context, id int64) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves a page of orders. Each row carries its payment status.
func (s *OrderService) List(ctx context.Context, filter shared.Filter) ([]OrderResponse, int64, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderListResponses(orders), total, nil
}

// Update updates the order header and, when present, replaces the inlines
func (s *OrderService) Update(ctx context.Context, id int64, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := order.OrderFields{
		UserID:           o.UserID,
		TotalPrice:       o.TotalPrice,
		Status:           o.Status,
		DeliveryMethodID: o.DeliveryMethodID,
	}
	if req.UserID != nil {
		fields.UserID = *req.UserID
	}
	if req.TotalPrice != nil {
		fields.TotalPrice = *req.TotalPrice
	}
	if req.Status != nil {
		fields.Status = order.OrderStatus(*req.Status)
	}
	if req.DeliveryMethodID != nil {
		if *req.DeliveryMethodID == 0 {
			fields.DeliveryMethodID = nil
		} else {
			dm := *req.DeliveryMethodID
			fields.DeliveryMethodID = &dm
		}
	}

	var newUser int64
	if fields.UserID != o.UserID {
		newUser = fields.UserID
	}
	var newDelivery *int64
	if fields.DeliveryMethodID != nil && (o.DeliveryMethodID == nil || *o.DeliveryMethodID != *fields.DeliveryMethodID) {
		newDelivery = fields.DeliveryMethodID
	}
	if err := s.checkReferences(ctx, newUser, newDelivery); err != nil {
		return nil, err
	}
	if err := o.Apply(fields); err != nil {
		return nil, err
	}

	backfilled := 0
	if req.Items != nil {
		items, err := buildItems(o.Items, *req.Items)
		if err != nil {
			return nil, err
		}
		if backfilled, err = s.prepareItems(ctx, items); err != nil {
			return nil, err
		}
		o.Items = items
	}
	if req.Payments != nil {
		payments, err := s.buildPayments(o.Payments, *req.Payments)
		if err != nil {
			return nil, err
		}
		o.Payments = payments
	}

	if err := s.orderRepo.SaveGraph(ctx, o); err != nil {
		return nil, err
	}
	s.metrics.RecordPriceBackfills(ctx, o.ID, backfilled)
	return s.Get(ctx, o.ID)
}

// SaveItems is the inline save path for order items. Rows missing from items
// are deleted, new rows without a price take the product's current price and
// stored prices are kept. Every persisted item ends up with a price.
func (s *OrderService) SaveItems(ctx context.Context, orderID int64, inputs []OrderItemInput) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "OrderService", "SaveItems",
		attribute.Int64("order_id", orderID),
		attribute.Int("items", len(inputs)),
	)
	defer span.End()

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	items, err := buildItems(o.Items, inputs)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	backfilled, err := s.prepareItems(ctx, items)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.orderRepo.SaveItems(ctx, orderID, items); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("backfilled_prices", backfilled))
	s.metrics.RecordPriceBackfills(ctx, orderID, backfilled)
	s.logger.Info("Order items saved",
		zap.Int64("order_id", orderID),
		zap.Int("items", len(items)),
		zap.Int("backfilled_prices", backfilled),
	)
	return s.Get(ctx, orderID)
}

// Delete deletes an order with its items and payments
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.orderRepo.Delete(ctx, id)
}

// prepareItems loads the referenced products and backfills missing prices
func (s *OrderService) prepareItems(ctx context.Context, items []order.OrderItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for i := range items {
		if id := items[i].ProductID; id > 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	products := map[int64]*catalog.Product{}
	if len(ids) > 0 {
		var err error
		if products, err = s.productRepo.FindByIDs(ctx, ids); err != nil {
			return 0, fmt.Errorf("failed to load order item products: %w", err)
		}
	}
	return order.PrepareItems(items, products)
}

// buildItems merges the submitted rows into the stored ones. A row with an id
// must belong to the order and keeps its stored price.
func buildItems(existing []order.OrderItem, inputs []OrderItemInput) ([]order.OrderItem, error) {
	stored := make(map[int64]order.OrderItem, len(existing))
	for _, it := range existing {
		stored[it.ID] = it
	}
	items := make([]order.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if in.ID == 0 {
			items = append(items, order.OrderItem{ProductID: in.ProductID, Quantity: in.Quantity, Price: in.Price})
			continue
		}
		it, ok := stored[in.ID]
		if !ok {
			return nil, shared.NewValidationError(fmt.Sprintf("Order item %d does not belong to this order", in.ID))
		}
		if it.ProductID != in.ProductID {
			it.Product = nil
		}
		it.ProductID = in.ProductID
		it.Quantity = in.Quantity
		items = append(items, it)
	}
	return items, nil
}

// buildPayments merges the submitted payment rows; new rows are dated now
func (s *OrderService) buildPayments(existing []order.Payment, inputs []PaymentInput) ([]order.Payment, error) {
	stored := make(map[int64]order.Payment, len(existing))
	for _, p := range existing {
		stored[p.ID] = p
	}
	payments := make([]order.Payment, 0, len(inputs))
	for _, in := range inputs {
		var p order.Payment
		status := order.PaymentStatus(in.Status)
		if in.ID == 0 {
			p = order.Payment{PaymentDate: s.now().UTC()}
			if status == "" {
				status = order.PaymentStatusPending
			}
		} else {
			var ok bool
			if p, ok = stored[in.ID]; !ok {
				return nil, shared.NewValidationError(fmt.Sprintf("Payment %d does not belong to this order", in.ID))
			}
			if status == "" {
				status = p.Status
			}
		}
		if err := p.Update(in.Amount, order.PaymentMethod(in.Method), status); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// checkReferences verifies the user and delivery method exist; zero and nil skip the check
func (s *OrderService) checkReferences(ctx context.Context, userID int64, deliveryMethodID *int64) error {
	if userID > 0 {
		if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
	}
	if deliveryMethodID != nil {
		if _, err := s.deliveryRepo.FindByID(ctx, *deliveryMethodID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ErrDeliveryMethodNotFound
			}
			return err
		}
	}
	return nil
}

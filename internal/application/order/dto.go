package order

import (
	"time"

	"github.com/shopadmin/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one row of the order items inline. ID is zero for new
// rows. Price is only honoured on new rows; stored prices are read-only.
type OrderItemInput struct {
	ID        int64            `json:"id" binding:"min=0"`
	ProductID int64            `json:"product_id" binding:"min=0"`
	Quantity  int              `json:"quantity" binding:"min=1"`
	Price     *decimal.Decimal `json:"price"`
}

// PaymentInput is one row of the payments inline. The payment date is set on
// creation and never changes.
type PaymentInput struct {
	ID     int64           `json:"id" binding:"min=0"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" binding:"required,oneof=card cash transfer"`
	Status string          `json:"status" binding:"omitempty,oneof=pending completed failed"`
}

// SaveItemsRequest replaces the item set of an order
type SaveItemsRequest struct {
	Items []OrderItemInput `json:"items" binding:"dive"`
}

// CreateOrderRequest represents a request to create an order with its inlines
type CreateOrderRequest struct {
	UserID           int64            `json:"user_id" binding:"required,gt=0"`
	TotalPrice       decimal.Decimal  `json:"total_price"`
	Status           string           `json:"status" binding:"omitempty,oneof=new processing shipped delivered cancelled"`
	DeliveryMethodID *int64           `json:"delivery_method_id" binding:"omitempty,gt=0"`
	Items            []OrderItemInput `json:"items" binding:"dive"`
	Payments         []PaymentInput   `json:"payments" binding:"dive"`
}

// UpdateOrderRequest represents a request to update an order. A
// delivery_method_id of 0 clears the delivery method; absent inlines are
// left unchanged.
type UpdateOrderRequest struct {
	UserID           *int64            `json:"user_id" binding:"omitempty,gt=0"`
	TotalPrice       *decimal.Decimal  `json:"total_price"`
	Status           *string           `json:"status" binding:"omitempty,oneof=new processing shipped delivered cancelled"`
	DeliveryMethodID *int64            `json:"delivery_method_id" binding:"omitempty,min=0"`
	Items            *[]OrderItemInput `json:"items" binding:"omitempty,dive"`
	Payments         *[]PaymentInput   `json:"payments" binding:"omitempty,dive"`
}

// OrderItemResponse represents an order item in API responses
type OrderItemResponse struct {
	ID          int64            `json:"id"`
	OrderID     int64            `json:"order_id"`
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"product"`
	Quantity    int              `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	Display     string           `json:"display"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	MethodLabel string          `json:"method_label"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	Display     string          `json:"display"`
}

// GetID returns the payment ID
func (r PaymentResponse) GetID() int64 { return r.ID }

// OrderResponse represents an order in API responses. Items and payments are
// filled on detail reads only.
type OrderResponse struct {
	ID                 int64               `json:"id"`
	UserID             int64               `json:"user_id"`
	Username           string              `json:"user"`
	TotalPrice         decimal.Decimal     `json:"total_price"`
	ItemsTotal         decimal.Decimal     `json:"items_total"`
	Status             string              `json:"status"`
	StatusLabel        string              `json:"status_label"`
	DeliveryMethodID   *int64              `json:"delivery_method_id"`
	DeliveryMethodName string              `json:"delivery_method,omitempty"`
	PaymentStatus      string              `json:"payment_status"`
	Items              []OrderItemResponse `json:"items,omitempty"`
	Payments           []PaymentResponse   `json:"payments,omitempty"`
	Display            string              `json:"display"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// GetID returns the order ID
func (r OrderResponse) GetID() int64 { return r.ID }

// CreateDeliveryMethodRequest represents a request to create a delivery method
type CreateDeliveryMethodRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// UpdateDeliveryMethodRequest represents a request to update a delivery method
type UpdateDeliveryMethodRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

// DeliveryMethodResponse represents a delivery method in API responses
type DeliveryMethodResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Display     string          `json:"display"`
}

// GetID returns the delivery method ID
func (r DeliveryMethodResponse) GetID() int64 { return r.ID }

// CreatePaymentRequest represents a request to record a payment
type CreatePaymentRequest struct {
	OrderID int64           `json:"order_id" binding:"required,gt=0"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method" binding:"required,oneof=card cash transfer"`
	Status  string          `json:"status" binding:"omitempty,oneof=pending completed failed"`
}

// UpdatePaymentRequest represents a request to update a payment
type UpdatePaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Method *string          `json:"method" binding:"omitempty,oneof=card cash transfer"`
	Status *string          `json:"status" binding:"omitempty,oneof=pending completed failed"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID,
		UserID:           o.UserID,
		TotalPrice:       o.TotalPrice,
		ItemsTotal:       o.ItemsTotal(),
		Status:           o.Status.String(),
		StatusLabel:      o.Status.Label(),
		DeliveryMethodID: o.DeliveryMethodID,
		PaymentStatus:    o.PaymentStatusSummary(),
		Display:          o.String(),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if o.User != nil {
		resp.Username = o.User.Username
	}
	if o.DeliveryMethod != nil {
		resp.DeliveryMethodName = o.DeliveryMethod.Name
	}
	if len(o.Items) > 0 {
		resp.Items = make([]OrderItemResponse, len(o.Items))
		for i := range o.Items {
			resp.Items[i] = ToOrderItemResponse(&o.Items[i])
		}
	}
	if len(o.Payments) > 0 {
		resp.Payments = make([]PaymentResponse, len(o.Payments))
		for i := range o.Payments {
			resp.Payments[i] = ToPaymentResponse(&o.Payments[i])
		}
	}
	return resp
}

// ToOrderListResponses converts orders for the changelist, without inlines
func ToOrderListResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
		out[i].Items = nil
		out[i].Payments = nil
	}
	return out
}

// ToOrderItemResponse converts a domain OrderItem to OrderItemResponse
func ToOrderItemResponse(it *order.OrderItem) OrderItemResponse {
	resp := OrderItemResponse{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		Price:     it.Price,
		Subtotal:  it.Subtotal(),
		Display:   it.String(),
	}
	if it.Product != nil {
		resp.ProductName = it.Product.Name
	}
	return resp
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *order.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		OrderID:     p.OrderID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		Method:      p.Method.String(),
		MethodLabel: p.Method.Label(),
		Status:      p.Status.String(),
		StatusLabel: p.Status.Label(),
		Display:     p.String(),
	}
}

// ToDeliveryMethodResponse converts a domain DeliveryMethod to DeliveryMethodResponse
func ToDeliveryMethodResponse(d *order.DeliveryMethod) DeliveryMethodResponse {
	return DeliveryMethodResponse{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		Display:     d.String(),
	}
}

package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopadmin/backend/internal/domain/order"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ErrOrderNotFound is returned when a payment references a missing order
var ErrOrderNotFound = shared.NewValidationError("Order not found")

// PaymentService handles payments outside the order inline
type PaymentService struct {
	paymentRepo order.PaymentRepository
	orderRepo   order.OrderRepository
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo order.PaymentRepository, orderRepo order.OrderRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		now:         time.Now,
	}
}

// Create records a payment dated now
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, req.OrderID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	payment, err := order.NewPayment(req.OrderID, req.Amount, order.PaymentMethod(req.Method), order.PaymentStatus(req.Status), s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// Get retrieves a payment by ID
func (s *PaymentService) Get(ctx context.Context, id int64) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves a page of payments in insertion order
func (s *PaymentService) List(ctx context.Context, filter shared.Filter) ([]PaymentResponse, int64, error) {
	payments, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out, total, nil
}

// Update changes amount, method or status. The payment date is read-only.
func (s *PaymentService) Update(ctx context.Context, id int64, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amount, method, status := payment.Amount, payment.Method, payment.Status
	if req.Amount != nil {
		amount = *req.Amount
	}
	if req.Method != nil {
		method = order.PaymentMethod(*req.Method)
	}
	if req.Status != nil {
		status = order.PaymentStatus(*req.Status)
	}
	if err := payment.Update(amount, method, status); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// Delete deletes a payment
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	return s.paymentRepo.Delete(ctx, id)
}

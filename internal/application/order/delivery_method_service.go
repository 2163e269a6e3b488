package order

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/order"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// DeliveryMethodService handles delivery methods
type DeliveryMethodService struct {
	repo order.DeliveryMethodRepository
}

// NewDeliveryMethodService creates a new DeliveryMethodService
func NewDeliveryMethodService(repo order.DeliveryMethodRepository) *DeliveryMethodService {
	return &DeliveryMethodService{repo: repo}
}

// Create creates a delivery method
func (s *DeliveryMethodService) Create(ctx context.Context, req CreateDeliveryMethodRequest) (*DeliveryMethodResponse, error) {
	dm, err := order.NewDeliveryMethod(req.Name, req.Price, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, dm); err != nil {
		return nil, err
	}
	response := ToDeliveryMethodResponse(dm)
	return &response, nil
}

// Get retrieves a delivery method by ID
func (s *DeliveryMethodService) Get(ctx context.Context, id int64) (*DeliveryMethodResponse, error) {
	dm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryMethodResponse(dm)
	return &response, nil
}

// List retrieves a page of delivery methods
func (s *DeliveryMethodService) List(ctx context.Context, filter shared.Filter) ([]DeliveryMethodResponse, int64, error) {
	methods, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]DeliveryMethodResponse, len(methods))
	for i := range methods {
		out[i] = ToDeliveryMethodResponse(&methods[i])
	}
	return out, total, nil
}

// Update updates the fields present in the request
func (s *DeliveryMethodService) Update(ctx context.Context, id int64, req UpdateDeliveryMethodRequest) (*DeliveryMethodResponse, error) {
	dm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, price, description := dm.Name, dm.Price, dm.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Price != nil {
		price = *req.Price
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := dm.Update(name, price, description); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, dm); err != nil {
		return nil, err
	}
	response := ToDeliveryMethodResponse(dm)
	return &response, nil
}

// Delete deletes a delivery method; orders using it keep a null reference
func (s *DeliveryMethodService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

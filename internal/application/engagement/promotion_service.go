package engagement

import (
	"context"
	"time"

	"github.com/shopadmin/backend/internal/domain/engagement"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// PromotionService handles product promotions
type PromotionService struct {
	repo engagement.PromotionRepository
	now  func() time.Time
}

// NewPromotionService creates a new PromotionService
func NewPromotionService(repo engagement.PromotionRepository) *PromotionService {
	return &PromotionService{repo: repo, now: time.Now}
}

// Create creates a promotion
func (s *PromotionService) Create(ctx context.Context, req CreatePromotionRequest) (*PromotionResponse, error) {
	start, err := requiredDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := requiredDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	promotion, err := engagement.NewPromotion(engagement.PromotionFields{
		ProductID:   req.ProductID,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, promotion); err != nil {
		return nil, err
	}
	return s.Get(ctx, promotion.ID)
}

// Get retrieves a promotion with its product
func (s *PromotionService) Get(ctx context.Context, id int64) (*PromotionResponse, error) {
	promotion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPromotionResponse(promotion, s.now())
	return &response, nil
}

// List retrieves a page of promotions
func (s *PromotionService) List(ctx context.Context, filter shared.Filter) ([]PromotionResponse, int64, error) {
	promotions, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	today := s.now()
	out := make([]PromotionResponse, len(promotions))
	for i := range promotions {
		out[i] = ToPromotionResponse(&promotions[i], today)
	}
	return out, total, nil
}

// Update updates the fields present in the request
func (s *PromotionService) Update(ctx context.Context, id int64, req UpdatePromotionRequest) (*PromotionResponse, error) {
	promotion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := engagement.PromotionFields{
		ProductID:   promotion.ProductID,
		Description: promotion.Description,
		StartDate:   promotion.StartDate,
		EndDate:     promotion.EndDate,
	}
	if req.ProductID != nil {
		fields.ProductID = *req.ProductID
	}
	if req.Description != nil {
		fields.Description = *req.Description
	}
	if req.StartDate != nil {
		if fields.StartDate, err = requiredDate("start_date", *req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if fields.EndDate, err = requiredDate("end_date", *req.EndDate); err != nil {
			return nil, err
		}
	}
	if err := promotion.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, promotion); err != nil {
		return nil, err
	}
	return s.Get(ctx, promotion.ID)
}

// Delete deletes a promotion
func (s *PromotionService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func requiredDate(field, value string) (time.Time, error) {
	d, err := shared.ParseOptionalDate(field, &value)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return time.Time{}, shared.NewValidationError(field + " is required")
	}
	return *d, nil
}

package engagement

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/engagement"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ReviewService handles product reviews
type ReviewService struct {
	repo engagement.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo engagement.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// Create creates a review
func (s *ReviewService) Create(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	review, err := engagement.NewReview(engagement.ReviewFields{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, review); err != nil {
		return nil, err
	}
	return s.Get(ctx, review.ID)
}

// Get retrieves a review with its user and product
func (s *ReviewService) Get(ctx context.Context, id int64) (*ReviewResponse, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}

// List retrieves a page of reviews
func (s *ReviewService) List(ctx context.Context, filter shared.Filter) ([]ReviewResponse, int64, error) {
	reviews, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = ToReviewResponse(&reviews[i])
	}
	return out, total, nil
}

// Update updates the fields present in the request
func (s *ReviewService) Update(ctx context.Context, id int64, req UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := engagement.ReviewFields{
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Rating:    review.Rating,
		Comment:   review.Comment,
	}
	if req.UserID != nil {
		fields.UserID = *req.UserID
	}
	if req.ProductID != nil {
		fields.ProductID = *req.ProductID
	}
	if req.Rating != nil {
		fields.Rating = *req.Rating
	}
	if req.Comment != nil {
		fields.Comment = *req.Comment
	}
	if err := review.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, review); err != nil {
		return nil, err
	}
	return s.Get(ctx, review.ID)
}

// Delete deletes a review
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

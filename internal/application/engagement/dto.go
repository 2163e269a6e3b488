package engagement

import (
	"time"

	"github.com/shopadmin/backend/internal/domain/engagement"
)

// CreateReviewRequest represents a request to create a review
type CreateReviewRequest struct {
	UserID    int64  `json:"user_id" binding:"required,gt=0"`
	ProductID int64  `json:"product_id" binding:"required,gt=0"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest represents a request to update a review
type UpdateReviewRequest struct {
	UserID    *int64  `json:"user_id" binding:"omitempty,gt=0"`
	ProductID *int64  `json:"product_id" binding:"omitempty,gt=0"`
	Rating    *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment   *string `json:"comment"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"user"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ShortComment string    `json:"short_comment"`
	Display      string    `json:"display"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetID returns the review ID
func (r ReviewResponse) GetID() int64 { return r.ID }

// FavoriteRequest creates or updates a favorite
type FavoriteRequest struct {
	UserID    int64 `json:"user_id" binding:"required,gt=0"`
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// FavoriteResponse represents a favorite in API responses
type FavoriteResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"user"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product"`
	Display     string    `json:"display"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetID returns the favorite ID
func (r FavoriteResponse) GetID() int64 { return r.ID }

// CreatePromotionRequest represents a request to create a promotion
type CreatePromotionRequest struct {
	ProductID   int64  `json:"product_id" binding:"required,gt=0"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// UpdatePromotionRequest represents a request to update a promotion
type UpdatePromotionRequest struct {
	ProductID   *int64  `json:"product_id" binding:"omitempty,gt=0"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// PromotionResponse represents a promotion in API responses
type PromotionResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Active      bool   `json:"active"`
	Display     string `json:"display"`
}

// GetID returns the promotion ID
func (r PromotionResponse) GetID() int64 { return r.ID }

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *engagement.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		ProductID:    r.ProductID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		ShortComment: r.ShortComment(),
		Display:      r.String(),
		CreatedAt:    r.CreatedAt,
	}
	if r.User != nil {
		resp.Username = r.User.Username
	}
	if r.Product != nil {
		resp.ProductName = r.Product.Name
	}
	return resp
}

// ToFavoriteResponse converts a domain Favorite to FavoriteResponse
func ToFavoriteResponse(f *engagement.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		ProductID: f.ProductID,
		Display:   f.String(),
		CreatedAt: f.CreatedAt,
	}
	if f.User != nil {
		resp.Username = f.User.Username
	}
	if f.Product != nil {
		resp.ProductName = f.Product.Name
	}
	return resp
}

// ToPromotionResponse converts a domain Promotion to PromotionResponse
func ToPromotionResponse(p *engagement.Promotion, today time.Time) PromotionResponse {
	resp := PromotionResponse{
		ID:          p.ID,
		ProductID:   p.ProductID,
		Description: p.Description,
		StartDate:   p.StartDate.Format(time.DateOnly),
		EndDate:     p.EndDate.Format(time.DateOnly),
		Active:      p.IsActive(today),
		Display:     p.String(),
	}
	if p.Product != nil {
		resp.ProductName = p.Product.Name
	}
	return resp
}

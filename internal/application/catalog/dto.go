package catalog

import (
	"time"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ProductCount int64     `json:"product_count"`
	Display      string    `json:"display"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GetID returns the category ID
func (r CategoryResponse) GetID() int64 { return r.ID }

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	CategoryID  int64           `json:"category_id" binding:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"min=0"`
	Brand       string          `json:"brand" binding:"required,min=1,max=100"`
	ExpiryDate  *string         `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProductRequest represents a request to update a product.
// An empty expiry_date clears the date.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	CategoryID  *int64           `json:"category_id" binding:"omitempty,gt=0"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	Brand       *string          `json:"brand" binding:"omitempty,min=1,max=100"`
	ExpiryDate  *string          `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Brand        string          `json:"brand"`
	ExpiryDate   *string         `json:"expiry_date"`
	ExpiryStatus string          `json:"expiry_status"`
	Display      string          `json:"display"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// GetID returns the product ID
func (r ProductResponse) GetID() int64 { return r.ID }

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		ProductCount: c.ProductCount,
		Display:      c.String(),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}

// ToProductResponse converts a domain Product to ProductResponse, evaluating
// the expiry status against today
func ToProductResponse(p *catalog.Product, today time.Time) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		Price:        p.Price,
		Stock:        p.Stock,
		Brand:        p.Brand,
		ExpiryDate:   shared.FormatOptionalDate(p.ExpiryDate),
		ExpiryStatus: p.ExpiryStatus(today),
		Display:      p.String(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product, today time.Time) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i], today)
	}
	return out
}

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ErrCategoryNotFound is returned when a product references a missing category
var ErrCategoryNotFound = shared.NewValidationError("Category not found")

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	now          func() time.Time
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	expiry, err := shared.ParseOptionalDate("expiry_date", req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	category, err := s.category(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(catalog.ProductFields{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Stock:       req.Stock,
		Brand:       req.Brand,
		ExpiryDate:  expiry,
	})
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	product.Category = category

	response := ToProductResponse(product, s.now())
	return &response, nil
}

// Get retrieves a product by ID
func (s *ProductService) Get(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, s.now())
	return &response, nil
}

// List retrieves a page of products with filtering and search
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products, s.now()), total, nil
}

// Update updates the fields present in the request
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := catalog.ProductFields{
		Name:        product.Name,
		Description: product.Description,
		CategoryID:  product.CategoryID,
		Price:       product.Price,
		Stock:       product.Stock,
		Brand:       product.Brand,
		ExpiryDate:  product.ExpiryDate,
	}
	if req.Name != nil {
		fields.Name = *req.Name
	}
	if req.Description != nil {
		fields.Description = *req.Description
	}
	if req.Price != nil {
		fields.Price = *req.Price
	}
	if req.Stock != nil {
		fields.Stock = *req.Stock
	}
	if req.Brand != nil {
		fields.Brand = *req.Brand
	}
	if req.ExpiryDate != nil {
		if fields.ExpiryDate, err = shared.ParseOptionalDate("expiry_date", req.ExpiryDate); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		category, err := s.category(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		fields.CategoryID = category.ID
	}

	if err := product.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID)
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) category(ctx context.Context, id int64) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

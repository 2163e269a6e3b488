package persistence

import (
	"fmt"
	"strings"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField maps a sort field through a whitelist of ordering names to
// qualified columns. An empty field yields ""; an unknown field is a
// validation error.
func ValidateSortField(sortField string, allowedFields map[string]string) (string, error) {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return "", nil
	}
	if col, ok := allowedFields[trimmed]; ok {
		return col, nil
	}
	return "", shared.NewValidationError(fmt.Sprintf("Cannot order by %q", trimmed))
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]string{
	"id":            "categories.id",
	"name":          "categories.name",
	"product_count": "product_count",
	"created_at":    "categories.created_at",
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]string{
	"id":          "products.id",
	"name":        "products.name",
	"brand":       "products.brand",
	"price":       "products.price",
	"stock":       "products.stock",
	"category":    "products.category_id",
	"expiry_date": "products.expiry_date",
	"created_at":  "products.created_at",
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]string{
	"id":          "orders.id",
	"user":        "orders.user_id",
	"total_price": "orders.total_price",
	"status":      "orders.status",
	"created_at":  "orders.created_at",
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]string{
	"id":           "payments.id",
	"amount":       "payments.amount",
	"method":       "payments.method",
	"status":       "payments.status",
	"payment_date": "payments.payment_date",
}

// DeliveryMethodSortFields contains allowed sort fields for delivery methods
var DeliveryMethodSortFields = map[string]string{
	"id":    "delivery_methods.id",
	"name":  "delivery_methods.name",
	"price": "delivery_methods.price",
}

// ReviewSortFields contains allowed sort fields for reviews
var ReviewSortFields = map[string]string{
	"id":         "reviews.id",
	"product":    "reviews.product_id",
	"user":       "reviews.user_id",
	"rating":     "reviews.rating",
	"created_at": "reviews.created_at",
}

// FavoriteSortFields contains allowed sort fields for favorites
var FavoriteSortFields = map[string]string{
	"id":         "favorites.id",
	"user":       "favorites.user_id",
	"product":    "favorites.product_id",
	"created_at": "favorites.created_at",
}

// PromotionSortFields contains allowed sort fields for promotions
var PromotionSortFields = map[string]string{
	"id":         "promotions.id",
	"product":    "promotions.product_id",
	"start_date": "promotions.start_date",
	"end_date":   "promotions.end_date",
}

// PostSortFields contains allowed sort fields for posts
var PostSortFields = map[string]string{
	"id":      "posts.id",
	"title":   "posts.title",
	"slug":    "posts.slug",
	"author":  "posts.author_id",
	"publish": "posts.publish",
	"status":  "posts.status",
	"created": "posts.created_at",
	"updated": "posts.updated_at",
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]string{
	"id":            "users.id",
	"username":      "users.username",
	"email":         "users.email",
	"is_staff":      "users.is_staff",
	"is_active":     "users.is_active",
	"last_login_at": "users.last_login_at",
	"created_at":    "users.created_at",
}

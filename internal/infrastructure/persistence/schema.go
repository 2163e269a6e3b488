package persistence

import (
	"github.com/shopadmin/backend/internal/domain/blog"
	"github.com/shopadmin/backend/internal/domain/catalog"
	"github.com/shopadmin/backend/internal/domain/engagement"
	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/order"
	"gorm.io/gorm"
)

// ShopModels lists the persisted entities in foreign key order
func ShopModels() []any {
	return []any{
		&identity.User{},
		&catalog.Category{},
		&catalog.Product{},
		&order.DeliveryMethod{},
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
		&engagement.Review{},
		&engagement.Favorite{},
		&engagement.Promotion{},
		&blog.Post{},
	}
}

// AutoMigrate creates the schema from the entity mappings. Postgres
// deployments use the SQL migrations instead; this serves the sqlite
// development database and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(ShopModels()...)
}

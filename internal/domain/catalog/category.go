package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// CategoryNameMaxLength is the column width of categories.name
const CategoryNameMaxLength = 100

// Category groups products in the catalog
type Category struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null"`
	// ProductCount is filled by list queries only.
	ProductCount int64 `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category with the given name
func NewCategory(name string) (*Category, error) {
	c := &Category{}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > CategoryNameMaxLength {
		return shared.NewValidationError("Category name cannot exceed 100 characters")
	}
	c.Name = name
	return nil
}

func (c Category) String() string {
	return c.Name
}

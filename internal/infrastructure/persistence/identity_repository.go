package persistence

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/identity"
	"gorm.io/gorm"
)

var userQuery = &changelistQuery{
	table: "users",
	search: map[string]lookup{
		"username": {column: "users.username"},
		"email":    {column: "users.email"},
	},
	filters: map[string]lookup{
		"is_staff":  {column: "users.is_staff", kind: lookupBool},
		"is_active": {column: "users.is_active", kind: lookupBool},
	},
	sort:         UserSortFields,
	defaultOrder: "users.username ASC",
}

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	gormRepository[identity.User]
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	r := &GormUserRepository{newGormRepository[identity.User](db, userQuery)}
	r.conflict = identity.ErrUsernameTaken
	return r
}

// FindByUsername finds a user by exact username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ExistsByUsername reports whether a user with the username exists
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

package identity

import (
	"context"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// UserRepository persists users
type UserRepository interface {
	shared.Repository[User]
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

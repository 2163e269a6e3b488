package blog

import (
	"context"
	"time"

	"github.com/shopadmin/backend/internal/domain/shared"
)

// PostRepository persists posts
type PostRepository interface {
	shared.Repository[Post]
	// ListPublished returns every published post ordered by publish descending
	ListPublished(ctx context.Context) ([]Post, error)
	// FindPublished returns the published post with slug on the given date
	FindPublished(ctx context.Context, date time.Time, slug string) (*Post, error)
	// SlugTaken reports whether another post uses slug on date
	SlugTaken(ctx context.Context, slug string, date time.Time, excludeID int64) (bool, error)
}

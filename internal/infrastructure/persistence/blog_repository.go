package persistence

import (
	"context"
	"time"

	"github.com/shopadmin/backend/internal/domain/blog"
	"gorm.io/gorm"
)

var postQuery = &changelistQuery{
	table: "posts",
	search: map[string]lookup{
		"title": {column: "posts.title"},
		"body":  {column: "posts.body"},
		"slug":  {column: "posts.slug"},
	},
	filters: map[string]lookup{
		"status":  {column: "posts.status"},
		"created": {column: "posts.created_at", kind: lookupDate},
		"publish": {column: "posts.publish", kind: lookupDate},
		"author":  {column: "posts.author_id", kind: lookupID},
	},
	sort:         PostSortFields,
	defaultOrder: "posts.publish DESC, posts.id DESC",
}

// GormPostRepository implements PostRepository using GORM
type GormPostRepository struct {
	gormRepository[blog.Post]
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	r := &GormPostRepository{newGormRepository[blog.Post](db, postQuery)}
	withAuthor := func(tx *gorm.DB) *gorm.DB { return tx.Preload("Author") }
	r.list = withAuthor
	r.detail = withAuthor
	r.conflict = blog.ErrSlugTaken
	return r
}

// ListPublished returns every published post, newest publish first
func (r *GormPostRepository) ListPublished(ctx context.Context) ([]blog.Post, error) {
	var posts []blog.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("status = ?", blog.PostStatusPublished).
		Order("publish DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPublished finds the published post with slug on the given calendar date
func (r *GormPostRepository) FindPublished(ctx context.Context, date time.Time, slug string) (*blog.Post, error) {
	var post blog.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("status = ? AND slug = ? AND publish_date = ?", blog.PostStatusPublished, slug, date).
		Take(&post).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// SlugTaken reports whether a post other than excludeID uses slug on date
func (r *GormPostRepository) SlugTaken(ctx context.Context, slug string, date time.Time, excludeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&blog.Post{}).
		Where("slug = ? AND publish_date = ? AND id <> ?", slug, date, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ blog.PostRepository = (*GormPostRepository)(nil)

package blog

import (
	"context"
	"time"

	"github.com/shopadmin/backend/internal/domain/blog"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
	"github.com/shopadmin/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PublishedPostsKey is the cache key of the published post list
const PublishedPostsKey = "posts:published"

// DefaultCacheTTL bounds staleness when an invalidation is missed
const DefaultCacheTTL = 5 * time.Minute

// PostService handles blog posts for the admin and the public blog
type PostService struct {
	repo      blog.PostRepository
	cache     cache.Store[[]PostResponse]
	publisher shared.EventPublisher
	metrics   *telemetry.ShopMetrics
	logger    *zap.Logger
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewPostService creates a new PostService. metrics may be nil.
func NewPostService(
	repo blog.PostRepository,
	store cache.Store[[]PostResponse],
	publisher shared.EventPublisher,
	metrics *telemetry.ShopMetrics,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *PostService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &PostService{
		repo:      repo,
		cache:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// ListPublished returns every published post, newest publish first.
// The list is served from cache when possible; cache failures fall through
// to the database.
func (s *PostService) ListPublished(ctx context.Context) ([]PostResponse, error) {
	posts, hit, err := s.cache.Get(ctx, PublishedPostsKey)
	if err != nil {
		s.logger.Warn("Published posts cache read failed", zap.Error(err))
	}
	s.metrics.RecordBlogCacheLookup(ctx, hit)
	if hit {
		return posts, nil
	}

	found, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	posts = ToPostResponses(found)
	if err := s.cache.Set(ctx, PublishedPostsKey, posts, s.cacheTTL); err != nil {
		s.logger.Warn("Published posts cache write failed", zap.Error(err))
	}
	return posts, nil
}

// GetPublished returns the published post with slug whose publish date is the
// given calendar day. Dates that do not exist are not found.
func (s *PostService) GetPublished(ctx context.Context, year, month, day int, slug string) (*PostResponse, error) {
	date, ok := blog.PublishDateOf(year, month, day)
	if !ok {
		return nil, shared.ErrNotFound
	}
	post, err := s.repo.FindPublished(ctx, date, slug)
	if err != nil {
		return nil, err
	}
	response := ToPostResponse(post)
	return &response, nil
}

// Create creates a post
func (s *PostService) Create(ctx context.Context, req CreatePostRequest) (*PostResponse, error) {
	fields := blog.PostFields{
		Title:    req.Title,
		Slug:     req.Slug,
		AuthorID: req.AuthorID,
		Body:     req.Body,
		Status:   blog.PostStatus(req.Status),
	}
	if req.Publish != nil {
		fields.Publish = *req.Publish
	}
	post, err := blog.NewPost(fields, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, post); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}
	post.MarkChanged(blog.ActionSaved)
	s.publish(ctx, post)
	return s.Get(ctx, post.ID)
}

// Get retrieves a post by ID regardless of status
func (s *PostService) Get(ctx context.Context, id int64) (*PostResponse, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPostResponse(post)
	return &response, nil
}

// List retrieves a page of posts for the admin
func (s *PostService) List(ctx context.Context, filter shared.Filter) ([]PostResponse, int64, error) {
	posts, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToPostResponses(posts), total, nil
}

// Update updates the fields present in the request
func (s *PostService) Update(ctx context.Context, id int64, req UpdatePostRequest) (*PostResponse, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := blog.PostFields{
		Title:    post.Title,
		Slug:     post.Slug,
		AuthorID: post.AuthorID,
		Body:     post.Body,
		Publish:  post.Publish,
		Status:   post.Status,
	}
	if req.Title != nil {
		fields.Title = *req.Title
	}
	if req.Slug != nil {
		fields.Slug = *req.Slug
	}
	if req.AuthorID != nil {
		fields.AuthorID = *req.AuthorID
	}
	if req.Body != nil {
		fields.Body = *req.Body
	}
	if req.Publish != nil {
		fields.Publish = *req.Publish
	}
	if req.Status != nil {
		fields.Status = blog.PostStatus(*req.Status)
	}
	if err := post.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, post); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}
	post.MarkChanged(blog.ActionSaved)
	s.publish(ctx, post)
	return s.Get(ctx, post.ID)
}

// Delete deletes a post
func (s *PostService) Delete(ctx context.Context, id int64) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	post.MarkChanged(blog.ActionDeleted)
	s.publish(ctx, post)
	return nil
}

func (s *PostService) ensureSlugFree(ctx context.Context, post *blog.Post) error {
	taken, err := s.repo.SlugTaken(ctx, post.Slug, post.PublishDate, post.ID)
	if err != nil {
		return err
	}
	if taken {
		return blog.ErrSlugTaken
	}
	return nil
}

func (s *PostService) publish(ctx context.Context, post *blog.Post) {
	events := post.GetDomainEvents()
	post.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish post events", zap.Int64("post_id", post.ID), zap.Error(err))
	}
}

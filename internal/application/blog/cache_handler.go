package blog

import (
	"context"
	"fmt"

	"github.com/shopadmin/backend/internal/domain/blog"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// PublishedPostsCacheHandler drops the cached published post list whenever a
// post is saved or deleted
type PublishedPostsCacheHandler struct {
	cache  cache.Store[[]PostResponse]
	logger *zap.Logger
}

// NewPublishedPostsCacheHandler creates the handler
func NewPublishedPostsCacheHandler(store cache.Store[[]PostResponse], logger *zap.Logger) *PublishedPostsCacheHandler {
	return &PublishedPostsCacheHandler{cache: store, logger: logger}
}

// Handle invalidates the list cache
func (h *PublishedPostsCacheHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Delete(ctx, PublishedPostsKey); err != nil {
		return fmt.Errorf("failed to invalidate published posts cache: %w", err)
	}
	h.logger.Debug("Published posts cache invalidated",
		zap.Int64("post_id", event.AggregateID()),
		zap.String("event_id", event.EventID().String()),
	)
	return nil
}

// EventTypes returns the post change event
func (h *PublishedPostsCacheHandler) EventTypes() []string {
	return []string{blog.EventTypePostChanged}
}

var _ shared.EventHandler = (*PublishedPostsCacheHandler)(nil)

package blog

import "github.com/shopadmin/backend/internal/domain/shared"

// EventTypePostChanged is published after a post is saved or deleted
const EventTypePostChanged = "blog.post.changed"

// Post change actions
const (
	ActionSaved   = "saved"
	ActionDeleted = "deleted"
)

// PostChangedEvent carries enough of the post to invalidate read caches
type PostChangedEvent struct {
	shared.BaseDomainEvent
	Slug      string     `json:"slug"`
	Status    PostStatus `json:"status"`
	Action    string     `json:"action"`
	Published bool       `json:"published"`
}

// NewPostChangedEvent creates the event for p
func NewPostChangedEvent(p *Post, action string) *PostChangedEvent {
	return &PostChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostChanged, AggregateType, p.ID),
		Slug:            p.Slug,
		Status:          p.Status,
		Action:          action,
		Published:       p.IsPublished(),
	}
}

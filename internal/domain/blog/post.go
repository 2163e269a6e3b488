package blog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
)

// ErrSlugTaken is returned when another post uses the slug on the same publish date
var ErrSlugTaken = shared.NewDomainError("ALREADY_EXISTS", "Slug must be unique for the publish date")

// AggregateType is the aggregate name used on post events
const AggregateType = "Post"

// Post is a blog article. PublishDate mirrors the calendar date of Publish and
// together with Slug is unique.
type Post struct {
	shared.BaseAggregateRoot
	Title       string         `gorm:"type:varchar(250);not null"`
	Slug        string         `gorm:"type:varchar(250);not null;uniqueIndex:idx_posts_slug_publish_date"`
	AuthorID    int64          `gorm:"not null;index"`
	Author      *identity.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Body        string         `gorm:"type:text;not null"`
	Publish     time.Time      `gorm:"not null;index"`
	PublishDate time.Time      `gorm:"type:date;not null;uniqueIndex:idx_posts_slug_publish_date"`
	Status      PostStatus     `gorm:"type:varchar(10);not null;default:'draft'"`
}

// TableName returns the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// PostFields are the editable attributes of a post
type PostFields struct {
	Title    string
	Slug     string
	AuthorID int64
	Body     string
	Publish  time.Time
	Status   PostStatus
}

// NewPost creates a post. A zero Publish defaults to now, an empty Slug is
// derived from the title and an empty Status defaults to draft.
func NewPost(f PostFields, now time.Time) (*Post, error) {
	if f.Publish.IsZero() {
		f.Publish = now
	}
	if f.Status == "" {
		f.Status = PostStatusDraft
	}
	if strings.TrimSpace(f.Slug) == "" {
		f.Slug = Slugify(f.Title)
	}
	p := &Post{}
	if err := p.Apply(f); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply overwrites the post attributes and refreshes PublishDate
func (p *Post) Apply(f PostFields) error {
	title := strings.TrimSpace(f.Title)
	slug := strings.TrimSpace(f.Slug)
	switch {
	case title == "":
		return shared.NewValidationError("Title cannot be empty")
	case utf8.RuneCountInString(title) > 250:
		return shared.NewValidationError("Title cannot exceed 250 characters")
	case !ValidSlug(slug):
		return shared.NewValidationError("Slug may contain only letters, digits, hyphens and underscores")
	case f.AuthorID <= 0:
		return shared.NewValidationError("Author is required")
	case f.Publish.IsZero():
		return shared.NewValidationError("Publish time is required")
	case !f.Status.IsValid():
		return shared.NewValidationError(fmt.Sprintf("Unknown post status %q", f.Status))
	}
	if p.AuthorID != f.AuthorID {
		p.Author = nil
	}
	p.Title = title
	p.Slug = slug
	p.AuthorID = f.AuthorID
	p.Body = f.Body
	p.Publish = f.Publish.UTC()
	p.PublishDate = shared.DateOf(p.Publish)
	p.Status = f.Status
	return nil
}

// IsPublished reports whether the post is visible on the public blog
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// MarkChanged records a PostChanged event for the persisted post
func (p *Post) MarkChanged(action string) {
	p.AddDomainEvent(NewPostChangedEvent(p, action))
}

// URLPath returns the public path of the post
func (p *Post) URLPath() string {
	return fmt.Sprintf("/api/v1/blog/posts/%d/%d/%d/%s",
		p.PublishDate.Year(), int(p.PublishDate.Month()), p.PublishDate.Day(), p.Slug)
}

func (p Post) String() string {
	return p.Title
}

// PublishDateOf builds the calendar date from URL components; ok is false for
// dates that do not exist, such as month 13 or February 30.
func PublishDateOf(year, month, day int) (time.Time, bool) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

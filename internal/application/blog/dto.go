package blog

import (
	"time"

	"github.com/shopadmin/backend/internal/domain/blog"
)

// CreatePostRequest represents a request to create a post. An empty slug is
// derived from the title; a missing publish time means now.
type CreatePostRequest struct {
	Title    string     `json:"title" binding:"required,min=1,max=250"`
	Slug     string     `json:"slug" binding:"omitempty,max=250,slug"`
	AuthorID int64      `json:"author_id" binding:"required,gt=0"`
	Body     string     `json:"body"`
	Publish  *time.Time `json:"publish"`
	Status   string     `json:"status" binding:"omitempty,oneof=draft published"`
}

// UpdatePostRequest represents a request to update a post
type UpdatePostRequest struct {
	Title    *string    `json:"title" binding:"omitempty,min=1,max=250"`
	Slug     *string    `json:"slug" binding:"omitempty,min=1,max=250,slug"`
	AuthorID *int64     `json:"author_id" binding:"omitempty,gt=0"`
	Body     *string    `json:"body"`
	Publish  *time.Time `json:"publish"`
	Status   *string    `json:"status" binding:"omitempty,oneof=draft published"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author"`
	Body        string    `json:"body"`
	Publish     time.Time `json:"publish"`
	PublishDate string    `json:"publish_date"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	URL         string    `json:"url"`
	Display     string    `json:"display"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// GetID returns the post ID
func (r PostResponse) GetID() int64 { return r.ID }

// ToPostResponse converts a domain Post to PostResponse
func ToPostResponse(p *blog.Post) PostResponse {
	resp := PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		AuthorID:    p.AuthorID,
		Body:        p.Body,
		Publish:     p.Publish,
		PublishDate: p.PublishDate.Format(time.DateOnly),
		Status:      p.Status.String(),
		StatusLabel: p.Status.Label(),
		URL:         p.URLPath(),
		Display:     p.String(),
		Created:     p.CreatedAt,
		Updated:     p.UpdatedAt,
	}
	if p.Author != nil {
		resp.AuthorName = p.Author.Username
	}
	return resp
}

// ToPostResponses converts a slice of posts
func ToPostResponses(posts []blog.Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i := range posts {
		out[i] = ToPostResponse(&posts[i])
	}
	return out
}

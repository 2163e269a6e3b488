package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	blogapp "github.com/shopadmin/backend/internal/application/blog"
)

// PublishedPostReader is the public read side of the blog
type PublishedPostReader interface {
	ListPublished(ctx context.Context) ([]blogapp.PostResponse, error)
	GetPublished(ctx context.Context, year, month, day int, slug string) (*blogapp.PostResponse, error)
}

// BlogHandler serves published posts to anonymous readers
type BlogHandler struct {
	BaseHandler
	posts PublishedPostReader
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(posts PublishedPostReader) *BlogHandler {
	return &BlogHandler{posts: posts}
}

// List godoc
// @ID           blogListPosts
// @Summary      List published posts
// @Description  Newest publish date first. Drafts are never listed.
// @Tags         blog
// @Produce      json
// @Success      200 {object} APIResponse[[]blogapp.PostResponse]
// @Router       /blog/posts [get]
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.posts.ListPublished(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, posts)
}

// Detail godoc
// @ID           blogPostDetail
// @Summary      Get a published post
// @Description  A post is addressed by its publish date and slug
// @Tags         blog
// @Produce      json
// @Param        year  path int    true "Publish year"  example(2024)
// @Param        month path int    true "Publish month" example(3)
// @Param        day   path int    true "Publish day"   example(15)
// @Param        slug  path string true "Post slug"     example(hello-world)
// @Success      200 {object} APIResponse[blogapp.PostResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /blog/posts/{year}/{month}/{day}/{slug} [get]
func (h *BlogHandler) Detail(c *gin.Context) {
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	day, errD := strconv.Atoi(c.Param("day"))
	if errY != nil || errM != nil || errD != nil {
		h.NotFound(c, "Post not found")
		return
	}

	post, err := h.posts.GetPublished(c.Request.Context(), year, month, day, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

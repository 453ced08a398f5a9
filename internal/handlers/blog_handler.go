package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/rmittal-realty/api/internal/errors"
	"github.com/rmittal-realty/api/internal/models"
	"github.com/rmittal-realty/api/internal/services"
)

// BlogHandler handles blog post requests, both the admin CRUD surface and
// the public listing modes.
type BlogHandler struct {
	service services.BlogService
}

// NewBlogHandler creates a new BlogHandler instance.
func NewBlogHandler(service services.BlogService) *BlogHandler {
	return &BlogHandler{
		service: service,
	}
}

// CreateBlogRequest is the JSON body of a blog post create.
// Slug and read time are derived server-side and cannot be supplied.
type CreateBlogRequest struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	FeaturedImage   string   `json:"featuredImage"`
	Author          string   `json:"author"`
	Category        string   `json:"category"`
	Status          string   `json:"status"`
	MetaDescription string   `json:"metaDescription"`
	Tags            []string `json:"tags"`
	Featured        bool     `json:"featured"`
}

// UpdateBlogRequest is the JSON body of a blog post merge-update.
type UpdateBlogRequest struct {
	ID                int64      `json:"id" binding:"required"`
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
	Title             *string    `json:"title"`
	Excerpt           *string    `json:"excerpt"`
	Content           *string    `json:"content"`
	FeaturedImage     *string    `json:"featuredImage"`
	Author            *string    `json:"author"`
	Category          *string    `json:"category"`
	Status            *string    `json:"status"`
	MetaDescription   *string    `json:"metaDescription"`
	Tags              []string   `json:"tags"`
	Featured          *bool      `json:"featured"`
}

// BlogListResponse is the blog listing envelope.
type BlogListResponse struct {
	Success bool              `json:"success"`
	Posts   []models.BlogPost `json:"posts"`
}

// BlogPostResponse wraps a single post.
type BlogPostResponse struct {
	Success bool             `json:"success"`
	Post    *models.BlogPost `json:"post"`
}

// List handles GET /api/v1/admin/blog: every post, drafts included.
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch blog posts", err)
		return
	}

	c.JSON(http.StatusOK, BlogListResponse{
		Success: true,
		Posts:   posts,
	})
}

// PublicList handles GET /api/v1/blog with its three public modes:
// ?slug=<s> returns a single published-or-not post by slug,
// ?featured=true narrows to featured published posts,
// anything else (including ?public=true) lists published posts.
func (h *BlogHandler) PublicList(c *gin.Context) {
	if slug := c.Query("slug"); slug != "" {
		post, err := h.service.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				apierrors.NotFound(c, "Blog post not found")
				return
			}
			apierrors.InternalServerError(c, "Failed to fetch blog post", err)
			return
		}
		c.JSON(http.StatusOK, BlogPostResponse{
			Success: true,
			Post:    post,
		})
		return
	}

	featuredOnly := c.Query("featured") == "true"
	posts, err := h.service.ListPublished(c.Request.Context(), featuredOnly)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch blog posts", err)
		return
	}

	c.JSON(http.StatusOK, BlogListResponse{
		Success: true,
		Posts:   posts,
	})
}

// Create handles POST /api/v1/admin/blog.
func (h *BlogHandler) Create(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	post, err := h.service.Create(c.Request.Context(), services.BlogInput{
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		FeaturedImage:   req.FeaturedImage,
		Author:          req.Author,
		Category:        req.Category,
		Status:          req.Status,
		MetaDescription: req.MetaDescription,
		Tags:            req.Tags,
		Featured:        req.Featured,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingRequired) {
			apierrors.BadRequest(c, "Missing required fields", err.Error())
			return
		}
		apierrors.InternalServerError(c, "Failed to create blog post", err)
		return
	}

	c.JSON(http.StatusCreated, BlogPostResponse{
		Success: true,
		Post:    post,
	})
}

// Update handles PUT /api/v1/admin/blog.
func (h *BlogHandler) Update(c *gin.Context) {
	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: id is required", err.Error())
		return
	}

	post, err := h.service.Update(c.Request.Context(), services.BlogUpdateInput{
		ID:                req.ID,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
		Title:             req.Title,
		Excerpt:           req.Excerpt,
		Content:           req.Content,
		FeaturedImage:     req.FeaturedImage,
		Author:            req.Author,
		Category:          req.Category,
		Status:            req.Status,
		MetaDescription:   req.MetaDescription,
		Tags:              req.Tags,
		Featured:          req.Featured,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRequired):
			apierrors.BadRequest(c, "Missing required fields", err.Error())
		case errors.Is(err, services.ErrNotFound):
			apierrors.NotFound(c, "Blog post not found")
		case errors.Is(err, services.ErrConflict):
			apierrors.Conflict(c, "Blog post was modified by another request")
		default:
			apierrors.InternalServerError(c, "Failed to update blog post", err)
		}
		return
	}

	c.JSON(http.StatusOK, BlogPostResponse{
		Success: true,
		Post:    post,
	})
}

// Delete handles DELETE /api/v1/admin/blog?id=N.
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, "Blog post not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete blog post", err)
		return
	}

	c.JSON(http.StatusOK, DeleteConfirmation{
		Success: true,
		ID:      deleted.ID,
		Title:   deleted.Title,
	})
}

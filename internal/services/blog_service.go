package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rmittal-realty/api/internal/images"
	"github.com/rmittal-realty/api/internal/logger"
	"github.com/rmittal-realty/api/internal/models"
	"github.com/rmittal-realty/api/internal/repository"
)

// slugProbeLimit bounds the number of suffixes tried when disambiguating
// a colliding slug.
const slugProbeLimit = 50

// BlogInput carries the client-supplied fields of a blog post create.
// Slug and read time are always derived server-side.
type BlogInput struct {
	Title           string
	Excerpt         string
	Content         string
	FeaturedImage   string
	Author          string
	Category        string
	Status          string
	MetaDescription string
	Tags            []string
	Featured        bool
}

// BlogUpdateInput carries a merge-update: nil fields retain the record's
// previous values.
type BlogUpdateInput struct {
	ID                int64
	ExpectedUpdatedAt *time.Time
	Title             *string
	Excerpt           *string
	Content           *string
	FeaturedImage     *string
	Author            *string
	Category          *string
	Status            *string
	MetaDescription   *string
	Tags              []string
	Featured          *bool
}

// BlogService defines the interface for blog post business logic.
type BlogService interface {
	// ListAll returns every post, newest first (admin listing).
	ListAll(ctx context.Context) ([]models.BlogPost, error)

	// ListPublished returns published posts, optionally only featured ones.
	ListPublished(ctx context.Context, featuredOnly bool) ([]models.BlogPost, error)

	// GetBySlug returns a single post by slug. Returns ErrNotFound when absent.
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)

	// Create derives slug, read time, excerpt/meta fallbacks and the
	// featured image, then persists. Returns ErrMissingRequired when
	// title or content is blank.
	Create(ctx context.Context, in BlogInput) (*models.BlogPost, error)

	// Update merges supplied fields; slug is re-derived only when the
	// title changed, read time only when content changed, and the
	// featured image only on a new upload or title change.
	Update(ctx context.Context, in BlogUpdateInput) (*models.BlogPost, error)

	// Delete removes a post irreversibly, returning the removed post's
	// id and title. Returns ErrNotFound for an unknown id.
	Delete(ctx context.Context, id int64) (*models.BlogPost, error)
}

type blogService struct {
	repo repository.BlogRepository
	log  *logger.Logger
}

// NewBlogService creates a new instance of BlogService.
func NewBlogService(repo repository.BlogRepository, log *logger.Logger) BlogService {
	return &blogService{
		repo: repo,
		log:  log,
	}
}

func (s *blogService) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list blog posts", err, nil)
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

func (s *blogService) ListPublished(ctx context.Context, featuredOnly bool) ([]models.BlogPost, error) {
	posts, err := s.repo.ListPublished(ctx, featuredOnly)
	if err != nil {
		s.log.Error("Failed to list published posts", err, map[string]interface{}{
			"featured_only": featuredOnly,
		})
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	return posts, nil
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to fetch post by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, fmt.Errorf("failed to fetch post by slug: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *blogService) Create(ctx context.Context, in BlogInput) (*models.BlogPost, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if missing := requiredBlogFields(title, content); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	post := &models.BlogPost{
		Title:           title,
		Content:         content,
		Excerpt:         strings.TrimSpace(in.Excerpt),
		Author:          in.Author,
		Category:        in.Category,
		Status:          in.Status,
		MetaDescription: strings.TrimSpace(in.MetaDescription),
		Tags:            in.Tags,
		Featured:        in.Featured,
		ReadTime:        ReadTime(content),
	}
	if post.Author == "" {
		post.Author = models.DefaultAuthor
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if post.Excerpt == "" {
		post.Excerpt = ExcerptFallback(content)
	}
	if post.MetaDescription == "" {
		post.MetaDescription = MetaDescriptionFallback(content)
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	// Uploaded image takes precedence over the generated placeholder
	post.FeaturedImage = s.featuredImage(in.FeaturedImage, title, post.Category)

	slug, err := s.uniqueSlug(ctx, Slugify(title), 0)
	if err != nil {
		return nil, err
	}
	post.Slug = slug

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.Error("Failed to create blog post", err, map[string]interface{}{
			"title": title,
		})
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}

	s.log.Info("Blog post created", map[string]interface{}{
		"post_id": post.ID,
		"slug":    post.Slug,
	})
	return post, nil
}

func (s *blogService) Update(ctx context.Context, in BlogUpdateInput) (*models.BlogPost, error) {
	existing, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		s.log.Error("Failed to fetch post for update", err, map[string]interface{}{
			"post_id": in.ID,
		})
		return nil, fmt.Errorf("failed to fetch blog post: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	titleChanged := false
	if in.Title != nil {
		newTitle := strings.TrimSpace(*in.Title)
		titleChanged = newTitle != existing.Title
		existing.Title = newTitle
	}
	contentChanged := false
	if in.Content != nil {
		newContent := strings.TrimSpace(*in.Content)
		contentChanged = newContent != existing.Content
		existing.Content = newContent
	}
	if missing := requiredBlogFields(existing.Title, existing.Content); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	if in.Excerpt != nil {
		existing.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.Author != nil {
		existing.Author = *in.Author
	}
	if in.Category != nil {
		existing.Category = *in.Category
	}
	if in.Status != nil {
		existing.Status = *in.Status
	}
	if in.MetaDescription != nil {
		existing.MetaDescription = strings.TrimSpace(*in.MetaDescription)
	}
	if in.Tags != nil {
		existing.Tags = in.Tags
	}
	if in.Featured != nil {
		existing.Featured = *in.Featured
	}

	// Slug is only regenerated when the title changed
	if titleChanged {
		slug, err := s.uniqueSlug(ctx, Slugify(existing.Title), existing.ID)
		if err != nil {
			return nil, err
		}
		existing.Slug = slug
	}

	// Read time is only re-derived when the content changed
	if contentChanged {
		existing.ReadTime = ReadTime(existing.Content)
	}

	// Featured image priority: new upload, then title-change regeneration
	if in.FeaturedImage != nil && *in.FeaturedImage != "" {
		existing.FeaturedImage = s.featuredImage(*in.FeaturedImage, existing.Title, existing.Category)
	} else if titleChanged {
		existing.FeaturedImage = images.PlaceholderURL(existing.Title, existing.Category)
	}

	ok, err := s.repo.Update(ctx, existing, in.ExpectedUpdatedAt)
	if err != nil {
		s.log.Error("Failed to update blog post", err, map[string]interface{}{
			"post_id": in.ID,
		})
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}
	if !ok {
		s.log.Warn("Blog post update precondition failed", map[string]interface{}{
			"post_id": in.ID,
		})
		return nil, ErrConflict
	}

	s.log.Info("Blog post updated", map[string]interface{}{
		"post_id": existing.ID,
		"slug":    existing.Slug,
	})
	return existing, nil
}

func (s *blogService) Delete(ctx context.Context, id int64) (*models.BlogPost, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete blog post", err, map[string]interface{}{
			"post_id": id,
		})
		return nil, fmt.Errorf("failed to delete blog post: %w", err)
	}
	if deleted == nil {
		return nil, ErrNotFound
	}

	s.log.Info("Blog post deleted", map[string]interface{}{
		"post_id": deleted.ID,
		"title":   deleted.Title,
	})
	return deleted, nil
}

// featuredImage resolves the stored featured-image reference: a valid
// uploaded data URI wins, anything else falls back to the deterministic
// placeholder keyed by title and category.
func (s *blogService) featuredImage(upload, title, category string) string {
	if upload != "" {
		if images.IsDataURI(upload) {
			if validated, err := images.ValidateDataURI(upload); err == nil {
				return validated
			}
			s.log.Warn("Rejected featured image payload", map[string]interface{}{
				"title": title,
			})
		} else {
			// Previously stored reference echoed back
			return upload
		}
	}
	return images.PlaceholderURL(title, category)
}

// uniqueSlug disambiguates colliding slugs with -2, -3, ... suffixes.
func (s *blogService) uniqueSlug(ctx context.Context, base string, excludeID int64) (string, error) {
	slug := base
	for i := 2; i <= slugProbeLimit; i++ {
		exists, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			s.log.Error("Failed to check slug uniqueness", err, map[string]interface{}{
				"slug": slug,
			})
			return "", fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("could not find a unique slug for %q", base)
}

func requiredBlogFields(title, content string) []string {
	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if content == "" {
		missing = append(missing, "content")
	}
	return missing
}

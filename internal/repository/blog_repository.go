package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rmittal-realty/api/internal/database"
	"github.com/rmittal-realty/api/internal/models"
)

const blogColumns = `
	id,
	title,
	slug,
	excerpt,
	content,
	featured_image,
	author,
	category,
	status,
	featured,
	tags,
	meta_description,
	read_time,
	created_at,
	updated_at
`

// BlogRepository defines the interface for blog post data access operations.
type BlogRepository interface {
	// List returns all posts ordered by created_at descending.
	List(ctx context.Context) ([]models.BlogPost, error)

	// ListPublished returns published posts, optionally narrowed to
	// featured ones, ordered by created_at descending.
	ListPublished(ctx context.Context, featuredOnly bool) ([]models.BlogPost, error)

	// FindByID finds a post by id. Returns nil, nil if absent.
	FindByID(ctx context.Context, id int64) (*models.BlogPost, error)

	// FindBySlug finds a post by its slug. Returns nil, nil if absent.
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)

	// SlugExists reports whether any post other than excludeID already
	// holds the given slug (case-insensitive). Pass excludeID 0 on create.
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)

	// Create inserts a post and fills in its store-assigned id and timestamps.
	Create(ctx context.Context, p *models.BlogPost) error

	// Update persists the mutable fields of p. When expectedUpdatedAt is
	// non-nil the row is only written if its updated_at still matches;
	// returns false when no row was written (absent or stale).
	Update(ctx context.Context, p *models.BlogPost, expectedUpdatedAt *time.Time) (bool, error)

	// Delete removes the post irreversibly. Returns nil, nil if absent;
	// otherwise the removed post's id and title.
	Delete(ctx context.Context, id int64) (*models.BlogPost, error)
}

type blogRepository struct {
	db *database.Database
}

// NewBlogRepository creates a new instance of BlogRepository.
func NewBlogRepository(db *database.Database) BlogRepository {
	return &blogRepository{
		db: db,
	}
}

func (r *blogRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	return scanBlogPosts(rows)
}

func (r *blogRepository) ListPublished(ctx context.Context, featuredOnly bool) ([]models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE status = $1`
	args := []interface{}{models.PostStatusPublished}
	if featuredOnly {
		query += ` AND featured = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query published blog posts: %w", err)
	}
	defer rows.Close()

	return scanBlogPosts(rows)
}

func (r *blogRepository) FindByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE id = $1`

	var p models.BlogPost
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(blogFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query blog post %d: %w", id, err)
	}

	return &p, nil
}

func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE slug = $1`

	var p models.BlogPost
	err := r.db.Pool.QueryRow(ctx, query, slug).Scan(blogFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query blog post by slug %q: %w", slug, err)
	}

	return &p, nil
}

func (r *blogRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM blog_posts WHERE LOWER(slug) = LOWER($1) AND id <> $2)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug %q: %w", slug, err)
	}
	return exists, nil
}

func (r *blogRepository) Create(ctx context.Context, p *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (
			title, slug, excerpt, content, featured_image, author, category,
			status, featured, tags, meta_description, read_time,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		p.Title,
		p.Slug,
		p.Excerpt,
		p.Content,
		p.FeaturedImage,
		p.Author,
		p.Category,
		p.Status,
		p.Featured,
		p.Tags,
		p.MetaDescription,
		p.ReadTime,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert blog post: %w", err)
	}

	return nil
}

func (r *blogRepository) Update(ctx context.Context, p *models.BlogPost, expectedUpdatedAt *time.Time) (bool, error) {
	query := `
		UPDATE blog_posts SET
			title = $1,
			slug = $2,
			excerpt = $3,
			content = $4,
			featured_image = $5,
			author = $6,
			category = $7,
			status = $8,
			featured = $9,
			tags = $10,
			meta_description = $11,
			read_time = $12,
			updated_at = NOW()
		WHERE id = $13
		  AND ($14::timestamptz IS NULL OR updated_at = $14)
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		p.Title,
		p.Slug,
		p.Excerpt,
		p.Content,
		p.FeaturedImage,
		p.Author,
		p.Category,
		p.Status,
		p.Featured,
		p.Tags,
		p.MetaDescription,
		p.ReadTime,
		p.ID,
		expectedUpdatedAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update blog post %d: %w", p.ID, err)
	}

	return true, nil
}

func (r *blogRepository) Delete(ctx context.Context, id int64) (*models.BlogPost, error) {
	query := `DELETE FROM blog_posts WHERE id = $1 RETURNING id, title`

	var p models.BlogPost
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete blog post %d: %w", id, err)
	}

	return &p, nil
}

// blogFields returns scan destinations matching blogColumns order.
func blogFields(p *models.BlogPost) []interface{} {
	return []interface{}{
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Excerpt,
		&p.Content,
		&p.FeaturedImage,
		&p.Author,
		&p.Category,
		&p.Status,
		&p.Featured,
		&p.Tags,
		&p.MetaDescription,
		&p.ReadTime,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

func scanBlogPosts(rows pgx.Rows) ([]models.BlogPost, error) {
	var results []models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		if err := rows.Scan(blogFields(&p)...); err != nil {
			return nil, fmt.Errorf("failed to scan blog post row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog post rows: %w", err)
	}

	if results == nil {
		results = []models.BlogPost{}
	}
	return results, nil
}

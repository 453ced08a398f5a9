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

// propertyColumns is the column list shared by every property select.
const propertyColumns = `
	id,
	title,
	location,
	full_address,
	type,
	status,
	description,
	bhk,
	baths,
	sqft,
	area,
	image_1,
	image_2,
	image_3,
	created_at,
	updated_at
`

// PropertyRepository defines the interface for property data access operations.
type PropertyRepository interface {
	// List returns all properties ordered by created_at descending.
	// Returns an empty slice if none exist (not an error).
	List(ctx context.Context) ([]models.Property, error)

	// ListPage returns one page of properties ordered by created_at
	// descending, using a half-open [offset, offset+limit) row range.
	ListPage(ctx context.Context, offset, limit int) ([]models.Property, error)

	// FindByID finds a property by id.
	// Returns nil, nil if no property is found (not an error).
	FindByID(ctx context.Context, id int64) (*models.Property, error)

	// Create inserts a property and fills in its store-assigned id and
	// timestamps.
	Create(ctx context.Context, p *models.Property) error

	// Update persists the mutable fields of p. When expectedUpdatedAt is
	// non-nil the row is only written if its updated_at still matches;
	// returns false when no row was written (absent or stale).
	Update(ctx context.Context, p *models.Property, expectedUpdatedAt *time.Time) (bool, error)

	// Delete removes the property row irreversibly.
	// Returns nil, nil if no matching row exists; otherwise returns the
	// deleted record's id and title for confirmation.
	Delete(ctx context.Context, id int64) (*models.Property, error)
}

// propertyRepository is the concrete implementation of PropertyRepository.
type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

func (r *propertyRepository) List(ctx context.Context) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

func (r *propertyRepository) ListPage(ctx context.Context, offset, limit int) ([]models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := r.db.Pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query property page (offset=%d, limit=%d): %w", offset, limit, err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

func (r *propertyRepository) FindByID(ctx context.Context, id int64) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	var p models.Property
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(propertyFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %d: %w", id, err)
	}

	return &p, nil
}

func (r *propertyRepository) Create(ctx context.Context, p *models.Property) error {
	query := `
		INSERT INTO properties (
			title, location, full_address, type, status, description,
			bhk, baths, sqft, area, image_1, image_2, image_3,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		p.Title,
		p.Location,
		p.FullAddress,
		p.Type,
		p.Status,
		p.Description,
		p.BHK,
		p.Baths,
		p.Sqft,
		p.Area,
		p.Image1,
		p.Image2,
		p.Image3,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}

	return nil
}

func (r *propertyRepository) Update(ctx context.Context, p *models.Property, expectedUpdatedAt *time.Time) (bool, error) {
	query := `
		UPDATE properties SET
			title = $1,
			location = $2,
			full_address = $3,
			type = $4,
			status = $5,
			description = $6,
			bhk = $7,
			baths = $8,
			sqft = $9,
			area = $10,
			image_1 = $11,
			image_2 = $12,
			image_3 = $13,
			updated_at = NOW()
		WHERE id = $14
		  AND ($15::timestamptz IS NULL OR updated_at = $15)
		RETURNING updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		p.Title,
		p.Location,
		p.FullAddress,
		p.Type,
		p.Status,
		p.Description,
		p.BHK,
		p.Baths,
		p.Sqft,
		p.Area,
		p.Image1,
		p.Image2,
		p.Image3,
		p.ID,
		expectedUpdatedAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update property %d: %w", p.ID, err)
	}

	return true, nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) (*models.Property, error) {
	query := `DELETE FROM properties WHERE id = $1 RETURNING id, title`

	var p models.Property
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete property %d: %w", id, err)
	}

	return &p, nil
}

// propertyFields returns scan destinations matching propertyColumns order.
func propertyFields(p *models.Property) []interface{} {
	return []interface{}{
		&p.ID,
		&p.Title,
		&p.Location,
		&p.FullAddress,
		&p.Type,
		&p.Status,
		&p.Description,
		&p.BHK,
		&p.Baths,
		&p.Sqft,
		&p.Area,
		&p.Image1,
		&p.Image2,
		&p.Image3,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

func scanProperties(rows pgx.Rows) ([]models.Property, error) {
	var results []models.Property
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(propertyFields(&p)...); err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	if results == nil {
		results = []models.Property{}
	}
	return results, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rmittal-realty/api/internal/database"
	"github.com/rmittal-realty/api/internal/models"
)

const consultationColumns = `
	id,
	name,
	first_name,
	last_name,
	email,
	phone,
	preferred_date,
	preferred_time,
	service_type,
	message,
	status,
	created_at,
	updated_at
`

// ConsultationRepository defines the interface for consultation request
// data access operations.
type ConsultationRepository interface {
	// List returns all consultation requests, newest first.
	List(ctx context.Context) ([]models.Consultation, error)

	// FindByID finds a consultation by id. Returns nil, nil if absent.
	FindByID(ctx context.Context, id int64) (*models.Consultation, error)

	// Create inserts a consultation and fills in its store-assigned id
	// and timestamps.
	Create(ctx context.Context, c *models.Consultation) error

	// UpdateStatus sets the status of the consultation.
	// Returns false when no matching row exists.
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)

	// Delete removes the consultation irreversibly. Returns nil, nil if
	// absent; otherwise the removed record's id and name.
	Delete(ctx context.Context, id int64) (*models.Consultation, error)
}

type consultationRepository struct {
	db *database.Database
}

// NewConsultationRepository creates a new instance of ConsultationRepository.
func NewConsultationRepository(db *database.Database) ConsultationRepository {
	return &consultationRepository{
		db: db,
	}
}

func (r *consultationRepository) List(ctx context.Context) ([]models.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query consultations: %w", err)
	}
	defer rows.Close()

	var results []models.Consultation
	for rows.Next() {
		var c models.Consultation
		if err := rows.Scan(consultationFields(&c)...); err != nil {
			return nil, fmt.Errorf("failed to scan consultation row: %w", err)
		}
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultation rows: %w", err)
	}

	if results == nil {
		results = []models.Consultation{}
	}
	return results, nil
}

func (r *consultationRepository) FindByID(ctx context.Context, id int64) (*models.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations WHERE id = $1`

	var c models.Consultation
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(consultationFields(&c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query consultation %d: %w", id, err)
	}

	return &c, nil
}

func (r *consultationRepository) Create(ctx context.Context, c *models.Consultation) error {
	query := `
		INSERT INTO consultations (
			name, first_name, last_name, email, phone,
			preferred_date, preferred_time, service_type, message, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		c.Name,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.PreferredDate,
		c.PreferredTime,
		c.ServiceType,
		c.Message,
		c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert consultation: %w", err)
	}

	return nil
}

func (r *consultationRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	query := `UPDATE consultations SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update consultation %d status: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *consultationRepository) Delete(ctx context.Context, id int64) (*models.Consultation, error) {
	query := `DELETE FROM consultations WHERE id = $1 RETURNING id, name`

	var c models.Consultation
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete consultation %d: %w", id, err)
	}

	return &c, nil
}

// consultationFields returns scan destinations matching consultationColumns order.
func consultationFields(c *models.Consultation) []interface{} {
	return []interface{}{
		&c.ID,
		&c.Name,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.PreferredDate,
		&c.PreferredTime,
		&c.ServiceType,
		&c.Message,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

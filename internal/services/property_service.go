package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rmittal-realty/api/internal/images"
	"github.com/rmittal-realty/api/internal/logger"
	"github.com/rmittal-realty/api/internal/models"
	"github.com/rmittal-realty/api/internal/repository"
)

// Public listing pagination bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// Service-level errors shared across the CRUD services.
var (
	ErrMissingRequired = errors.New("missing required fields")
	ErrNotFound        = errors.New("record not found")
	ErrConflict        = errors.New("record was modified by another request")
)

// PropertyInput carries the client-supplied fields of a property write.
// Image slots are nil when not supplied; a supplied slot carries either a
// base64 data URI (new upload) or a stored reference being echoed back.
type PropertyInput struct {
	Title       string
	Location    string
	FullAddress string
	Type        string
	Status      string
	Description string
	Area        string
	BHK         int
	Baths       int
	Sqft        int
	Images      [3]*string
}

// PropertyUpdateInput carries a merge-update: nil fields retain the
// record's previous values. ExpectedUpdatedAt, when set, is an
// optimistic-concurrency precondition.
type PropertyUpdateInput struct {
	ID                int64
	ExpectedUpdatedAt *time.Time
	Title             *string
	Location          *string
	FullAddress       *string
	Type              *string
	Status            *string
	Description       *string
	Area              *string
	BHK               *int
	Baths             *int
	Sqft              *int
	Images            [3]*string
}

// PropertyPage is one page of the public property listing.
type PropertyPage struct {
	Properties []models.Property
	Page       int
	Limit      int
	Count      int
}

// PropertyService defines the interface for property business logic.
type PropertyService interface {
	// ListAll returns every property, newest first (admin listing).
	ListAll(ctx context.Context) ([]models.Property, error)

	// ListPublic returns one page of properties for the public site.
	// Page and limit fall back to their defaults when non-positive;
	// limit is capped at MaxLimit.
	ListPublic(ctx context.Context, page, limit int) (*PropertyPage, error)

	// Create validates, normalizes and persists a new property.
	// Returns ErrMissingRequired when title, location or description is
	// blank after trimming.
	Create(ctx context.Context, in PropertyInput) (*models.Property, error)

	// Update merges the supplied fields over the existing record.
	// Returns ErrNotFound for an unknown id and ErrConflict when the
	// optimistic-concurrency precondition fails.
	Update(ctx context.Context, in PropertyUpdateInput) (*models.Property, error)

	// Delete removes a property irreversibly, returning the deleted
	// record's id and title. Returns ErrNotFound for an unknown id.
	Delete(ctx context.Context, id int64) (*models.Property, error)
}

type propertyService struct {
	repo repository.PropertyRepository
	log  *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(repo repository.PropertyRepository, log *logger.Logger) PropertyService {
	return &propertyService{
		repo: repo,
		log:  log,
	}
}

func (s *propertyService) ListAll(ctx context.Context) ([]models.Property, error) {
	properties, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list properties", err, nil)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (s *propertyService) ListPublic(ctx context.Context, page, limit int) (*PropertyPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := (page - 1) * limit
	properties, err := s.repo.ListPage(ctx, offset, limit)
	if err != nil {
		s.log.Error("Failed to list property page", err, map[string]interface{}{
			"page":  page,
			"limit": limit,
		})
		return nil, fmt.Errorf("failed to list property page: %w", err)
	}

	return &PropertyPage{
		Properties: properties,
		Page:       page,
		Limit:      limit,
		Count:      len(properties),
	}, nil
}

func (s *propertyService) Create(ctx context.Context, in PropertyInput) (*models.Property, error) {
	if missing := requiredPropertyFields(in.Title, in.Location, in.Description); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	p := &models.Property{
		Title:       strings.TrimSpace(in.Title),
		Location:    strings.TrimSpace(in.Location),
		Type:        in.Type,
		Status:      in.Status,
		Description: strings.TrimSpace(in.Description),
		BHK:         in.BHK,
		Baths:       in.Baths,
		Sqft:        in.Sqft,
	}
	if in.FullAddress != "" {
		p.FullAddress = &in.FullAddress
	}
	if in.Area != "" {
		p.Area = &in.Area
	}
	p.Normalize()

	slots := [3]**string{&p.Image1, &p.Image2, &p.Image3}
	supplied := false
	for i, img := range in.Images {
		if img == nil || *img == "" {
			continue
		}
		if ref := s.acceptImage(*img); ref != nil {
			*slots[i] = ref
			supplied = true
		}
	}
	// No usable upload at all: generate the deterministic placeholder
	if !supplied {
		placeholder := images.PlaceholderURL(p.Title, p.Type)
		p.Image1 = &placeholder
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("Failed to create property", err, map[string]interface{}{
			"title": p.Title,
		})
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.log.Info("Property created", map[string]interface{}{
		"property_id": p.ID,
		"title":       p.Title,
	})
	return p, nil
}

func (s *propertyService) Update(ctx context.Context, in PropertyUpdateInput) (*models.Property, error) {
	existing, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		s.log.Error("Failed to fetch property for update", err, map[string]interface{}{
			"property_id": in.ID,
		})
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	// Merge supplied fields over the existing record
	if in.Title != nil {
		existing.Title = strings.TrimSpace(*in.Title)
	}
	if in.Location != nil {
		existing.Location = strings.TrimSpace(*in.Location)
	}
	if in.FullAddress != nil {
		existing.FullAddress = in.FullAddress
	}
	if in.Type != nil {
		existing.Type = *in.Type
	}
	if in.Status != nil {
		existing.Status = *in.Status
	}
	if in.Description != nil {
		existing.Description = strings.TrimSpace(*in.Description)
	}
	if in.Area != nil {
		existing.Area = in.Area
	}
	if in.BHK != nil {
		existing.BHK = *in.BHK
	}
	if in.Baths != nil {
		existing.Baths = *in.Baths
	}
	if in.Sqft != nil {
		existing.Sqft = *in.Sqft
	}

	if missing := requiredPropertyFields(existing.Title, existing.Location, existing.Description); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	existing.Normalize()

	// Partial image replace: omitted slots retain their stored values,
	// invalid payloads leave the slot unchanged
	slots := [3]**string{&existing.Image1, &existing.Image2, &existing.Image3}
	for i, img := range in.Images {
		if img == nil || *img == "" {
			continue
		}
		if ref := s.acceptImage(*img); ref != nil {
			*slots[i] = ref
		}
	}

	ok, err := s.repo.Update(ctx, existing, in.ExpectedUpdatedAt)
	if err != nil {
		s.log.Error("Failed to update property", err, map[string]interface{}{
			"property_id": in.ID,
		})
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	if !ok {
		s.log.Warn("Property update precondition failed", map[string]interface{}{
			"property_id": in.ID,
		})
		return nil, ErrConflict
	}

	s.log.Info("Property updated", map[string]interface{}{
		"property_id": existing.ID,
	})
	return existing, nil
}

func (s *propertyService) Delete(ctx context.Context, id int64) (*models.Property, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete property", err, map[string]interface{}{
			"property_id": id,
		})
		return nil, fmt.Errorf("failed to delete property: %w", err)
	}
	if deleted == nil {
		return nil, ErrNotFound
	}

	s.log.Info("Property deleted", map[string]interface{}{
		"property_id": deleted.ID,
		"title":       deleted.Title,
	})
	return deleted, nil
}

// acceptImage validates an image reference for storage. Data URIs are
// sniffed; invalid uploads are dropped (slot falls back to null/unchanged).
// Non-data-URI references are assumed to be previously stored URLs.
func (s *propertyService) acceptImage(ref string) *string {
	if images.IsDataURI(ref) {
		validated, err := images.ValidateDataURI(ref)
		if err != nil {
			s.log.Warn("Rejected image payload", map[string]interface{}{
				"error": err.Error(),
			})
			return nil
		}
		return &validated
	}
	return &ref
}

func requiredPropertyFields(title, location, description string) []string {
	var missing []string
	if strings.TrimSpace(title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, "description")
	}
	return missing
}

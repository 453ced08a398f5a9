package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rmittal-realty/api/internal/logger"
	"github.com/rmittal-realty/api/internal/models"
	"github.com/rmittal-realty/api/internal/repository"
)

// Consultation-specific errors.
var (
	ErrInvalidStatus     = errors.New("invalid consultation status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ConsultationInput carries a public consultation-request submission.
type ConsultationInput struct {
	Name          string
	Email         string
	Phone         string
	PreferredDate string
	PreferredTime string
	ServiceType   string
	Message       string
}

// ConsultationService defines the interface for consultation business logic.
type ConsultationService interface {
	// List returns all consultation requests, newest first (admin).
	List(ctx context.Context) ([]models.Consultation, error)

	// Submit validates and persists a public consultation request.
	// The name is split into first/last components and the status always
	// starts at pending. Returns ErrMissingRequired when any required
	// field is blank.
	Submit(ctx context.Context, in ConsultationInput) (*models.Consultation, error)

	// UpdateStatus advances a consultation's status. Only single forward
	// steps (pending -> confirmed -> completed) are accepted; backward or
	// skipping transitions return ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Consultation, error)

	// Delete removes a consultation irreversibly, returning the removed
	// record's id and name. Returns ErrNotFound for an unknown id.
	Delete(ctx context.Context, id int64) (*models.Consultation, error)
}

type consultationService struct {
	repo repository.ConsultationRepository
	log  *logger.Logger
}

// NewConsultationService creates a new instance of ConsultationService.
func NewConsultationService(repo repository.ConsultationRepository, log *logger.Logger) ConsultationService {
	return &consultationService{
		repo: repo,
		log:  log,
	}
}

func (s *consultationService) List(ctx context.Context) ([]models.Consultation, error) {
	consultations, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list consultations", err, nil)
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return consultations, nil
}

func (s *consultationService) Submit(ctx context.Context, in ConsultationInput) (*models.Consultation, error) {
	required := map[string]string{
		"name":          in.Name,
		"email":         in.Email,
		"phone":         in.Phone,
		"preferredDate": in.PreferredDate,
		"preferredTime": in.PreferredTime,
		"serviceType":   in.ServiceType,
	}
	var missing []string
	for _, field := range []string{"name", "email", "phone", "preferredDate", "preferredTime", "serviceType"} {
		if strings.TrimSpace(required[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	c := &models.Consultation{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		PreferredDate: strings.TrimSpace(in.PreferredDate),
		PreferredTime: strings.TrimSpace(in.PreferredTime),
		ServiceType:   strings.TrimSpace(in.ServiceType),
		Status:        models.ConsultationPending,
	}
	if msg := strings.TrimSpace(in.Message); msg != "" {
		c.Message = &msg
	}
	c.SplitName()

	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Error("Failed to create consultation", err, map[string]interface{}{
			"email": c.Email,
		})
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}

	s.log.Info("Consultation submitted", map[string]interface{}{
		"consultation_id": c.ID,
		"service_type":    c.ServiceType,
	})
	return c, nil
}

func (s *consultationService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Consultation, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to fetch consultation", err, map[string]interface{}{
			"consultation_id": id,
		})
		return nil, fmt.Errorf("failed to fetch consultation: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if !models.CanTransition(existing.Status, status) {
		s.log.Warn("Rejected consultation status transition", map[string]interface{}{
			"consultation_id": id,
			"from":            existing.Status,
			"to":              status,
		})
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, status)
	}

	ok, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.log.Error("Failed to update consultation status", err, map[string]interface{}{
			"consultation_id": id,
		})
		return nil, fmt.Errorf("failed to update consultation status: %w", err)
	}
	if !ok {
		// Deleted between fetch and update
		return nil, ErrNotFound
	}

	existing.Status = status
	s.log.Info("Consultation status updated", map[string]interface{}{
		"consultation_id": id,
		"status":          status,
	})
	return existing, nil
}

func (s *consultationService) Delete(ctx context.Context, id int64) (*models.Consultation, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete consultation", err, map[string]interface{}{
			"consultation_id": id,
		})
		return nil, fmt.Errorf("failed to delete consultation: %w", err)
	}
	if deleted == nil {
		return nil, ErrNotFound
	}

	s.log.Info("Consultation deleted", map[string]interface{}{
		"consultation_id": deleted.ID,
	})
	return deleted, nil
}

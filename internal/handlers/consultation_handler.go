package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/rmittal-realty/api/internal/errors"
	"github.com/rmittal-realty/api/internal/models"
	"github.com/rmittal-realty/api/internal/services"
)

// ConsultationHandler handles consultation requests: the public submission
// entry point and the admin management surface.
type ConsultationHandler struct {
	service services.ConsultationService
}

// NewConsultationHandler creates a new ConsultationHandler instance.
func NewConsultationHandler(service services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{
		service: service,
	}
}

// SubmitConsultationRequest is the public submission body. It binds from
// JSON or form-url-encoded payloads, matching both site form variants.
type SubmitConsultationRequest struct {
	Name          string `json:"name" form:"name" binding:"required"`
	Email         string `json:"email" form:"email" binding:"required,email"`
	Phone         string `json:"phone" form:"phone" binding:"required"`
	PreferredDate string `json:"preferredDate" form:"preferredDate" binding:"required"`
	PreferredTime string `json:"preferredTime" form:"preferredTime" binding:"required"`
	ServiceType   string `json:"serviceType" form:"serviceType" binding:"required"`
	Message       string `json:"message" form:"message"`
}

// UpdateConsultationRequest is the admin status-update body.
type UpdateConsultationRequest struct {
	ID     int64  `json:"id" binding:"required"`
	Status string `json:"status" binding:"required,oneof=pending confirmed completed"`
}

// ConsultationListResponse is the admin consultation listing envelope.
type ConsultationListResponse struct {
	Success       bool                  `json:"success"`
	Consultations []models.Consultation `json:"consultations"`
}

// ConsultationResponse wraps a single consultation record.
type ConsultationResponse struct {
	Success      bool                 `json:"success"`
	Consultation *models.Consultation `json:"consultation"`
}

// ConsultationDeleteConfirmation echoes the removed record.
type ConsultationDeleteConfirmation struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Name    string `json:"name"`
}

// List handles GET /api/v1/admin/consultations.
func (h *ConsultationHandler) List(c *gin.Context) {
	consultations, err := h.service.List(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch consultations", err)
		return
	}

	c.JSON(http.StatusOK, ConsultationListResponse{
		Success:       true,
		Consultations: consultations,
	})
}

// Submit handles POST /api/v1/consultations, the unauthenticated public
// entry point.
func (h *ConsultationHandler) Submit(c *gin.Context) {
	var req SubmitConsultationRequest
	if err := c.ShouldBind(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	consultation, err := h.service.Submit(c.Request.Context(), services.ConsultationInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		ServiceType:   req.ServiceType,
		Message:       req.Message,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingRequired) {
			apierrors.BadRequest(c, "Missing required fields", err.Error())
			return
		}
		apierrors.InternalServerError(c, "Failed to submit consultation", err)
		return
	}

	c.JSON(http.StatusCreated, ConsultationResponse{
		Success:      true,
		Consultation: consultation,
	})
}

// UpdateStatus handles PUT /api/v1/admin/consultations.
func (h *ConsultationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	consultation, err := h.service.UpdateStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrInvalidTransition):
			apierrors.BadRequest(c, "Invalid status transition", err.Error())
		case errors.Is(err, services.ErrNotFound):
			apierrors.NotFound(c, "Consultation not found")
		default:
			apierrors.InternalServerError(c, "Failed to update consultation", err)
		}
		return
	}

	c.JSON(http.StatusOK, ConsultationResponse{
		Success:      true,
		Consultation: consultation,
	})
}

// Delete handles DELETE /api/v1/admin/consultations?id=N.
func (h *ConsultationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, "Consultation not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete consultation", err)
		return
	}

	c.JSON(http.StatusOK, ConsultationDeleteConfirmation{
		Success: true,
		ID:      deleted.ID,
		Name:    deleted.Name,
	})
}

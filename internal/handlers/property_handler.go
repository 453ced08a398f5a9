package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/rmittal-realty/api/internal/errors"
	"github.com/rmittal-realty/api/internal/models"
	"github.com/rmittal-realty/api/internal/services"
)

// PropertyHandler handles admin property CRUD requests.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service: service,
	}
}

// CreatePropertyRequest is the JSON body of a property create.
type CreatePropertyRequest struct {
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	FullAddress string  `json:"fullAddress"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	Area        string  `json:"area"`
	BHK         int     `json:"bhk"`
	Baths       int     `json:"baths"`
	Sqft        int     `json:"sqft"`
	Image1      *string `json:"image1"`
	Image2      *string `json:"image2"`
	Image3      *string `json:"image3"`
}

// UpdatePropertyRequest is the JSON body of a property merge-update.
// Nil fields retain the record's previous values.
type UpdatePropertyRequest struct {
	ID                int64      `json:"id" binding:"required"`
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
	Title             *string    `json:"title"`
	Location          *string    `json:"location"`
	FullAddress       *string    `json:"fullAddress"`
	Type              *string    `json:"type"`
	Status            *string    `json:"status"`
	Description       *string    `json:"description"`
	Area              *string    `json:"area"`
	BHK               *int       `json:"bhk"`
	Baths             *int       `json:"baths"`
	Sqft              *int       `json:"sqft"`
	Image1            *string    `json:"image1"`
	Image2            *string    `json:"image2"`
	Image3            *string    `json:"image3"`
}

// PropertyListResponse is the admin property listing envelope.
type PropertyListResponse struct {
	Success    bool              `json:"success"`
	Properties []models.Property `json:"properties"`
}

// PropertyResponse wraps a single property record.
type PropertyResponse struct {
	Success  bool             `json:"success"`
	Property *models.Property `json:"property"`
}

// DeleteConfirmation echoes the removed record for the admin UI.
type DeleteConfirmation struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Title   string `json:"title"`
}

// List handles GET /api/v1/admin/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch properties", err)
		return
	}

	c.JSON(http.StatusOK, PropertyListResponse{
		Success:    true,
		Properties: properties,
	})
}

// Create handles POST /api/v1/admin/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	property, err := h.service.Create(c.Request.Context(), services.PropertyInput{
		Title:       req.Title,
		Location:    req.Location,
		FullAddress: req.FullAddress,
		Type:        req.Type,
		Status:      req.Status,
		Description: req.Description,
		Area:        req.Area,
		BHK:         req.BHK,
		Baths:       req.Baths,
		Sqft:        req.Sqft,
		Images:      [3]*string{req.Image1, req.Image2, req.Image3},
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingRequired) {
			apierrors.BadRequest(c, "Missing required fields", err.Error())
			return
		}
		apierrors.InternalServerError(c, "Failed to create property", err)
		return
	}

	c.JSON(http.StatusCreated, PropertyResponse{
		Success:  true,
		Property: property,
	})
}

// Update handles PUT /api/v1/admin/properties.
func (h *PropertyHandler) Update(c *gin.Context) {
	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: id is required", err.Error())
		return
	}

	property, err := h.service.Update(c.Request.Context(), services.PropertyUpdateInput{
		ID:                req.ID,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
		Title:             req.Title,
		Location:          req.Location,
		FullAddress:       req.FullAddress,
		Type:              req.Type,
		Status:            req.Status,
		Description:       req.Description,
		Area:              req.Area,
		BHK:               req.BHK,
		Baths:             req.Baths,
		Sqft:              req.Sqft,
		Images:            [3]*string{req.Image1, req.Image2, req.Image3},
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRequired):
			apierrors.BadRequest(c, "Missing required fields", err.Error())
		case errors.Is(err, services.ErrNotFound):
			apierrors.NotFound(c, "Property not found")
		case errors.Is(err, services.ErrConflict):
			apierrors.Conflict(c, "Property was modified by another request")
		default:
			apierrors.InternalServerError(c, "Failed to update property", err)
		}
		return
	}

	c.JSON(http.StatusOK, PropertyResponse{
		Success:  true,
		Property: property,
	})
}

// Delete handles DELETE /api/v1/admin/properties?id=N.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			apierrors.NotFound(c, "Property not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete property", err)
		return
	}

	c.JSON(http.StatusOK, DeleteConfirmation{
		Success: true,
		ID:      deleted.ID,
		Title:   deleted.Title,
	})
}

// parseIDParam reads the id query parameter as an integer, writing a 400
// response and returning false when it is absent or unparseable.
func parseIDParam(c *gin.Context) (int64, bool) {
	raw := c.Query("id")
	if raw == "" {
		apierrors.BadRequest(c, "id is required", "")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "id must be an integer", err.Error())
		return 0, false
	}
	return id, true
}

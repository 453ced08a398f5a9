package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/rmittal-realty/api/internal/errors"
	"github.com/rmittal-realty/api/internal/models"
	"github.com/rmittal-realty/api/internal/services"
)

// PublicPropertyHandler serves the unauthenticated paged property listing
// consumed by the site frontend.
type PublicPropertyHandler struct {
	service services.PropertyService
}

// NewPublicPropertyHandler creates a new PublicPropertyHandler instance.
func NewPublicPropertyHandler(service services.PropertyService) *PublicPropertyHandler {
	return &PublicPropertyHandler{
		service: service,
	}
}

// PublicPropertyPageResponse is the public paged listing envelope. Count is
// the number of records in this page, not a global total.
type PublicPropertyPageResponse struct {
	Success    bool              `json:"success"`
	Properties []models.Property `json:"properties"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Count      int               `json:"count"`
}

// List handles GET /api/v1/public/properties?page=N&limit=M. Absent or
// unparseable paging params fall back to the service defaults.
func (h *PublicPropertyHandler) List(c *gin.Context) {
	page := parsePositiveQuery(c, "page")
	limit := parsePositiveQuery(c, "limit")

	result, err := h.service.ListPublic(c.Request.Context(), page, limit)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to fetch properties", err)
		return
	}

	c.JSON(http.StatusOK, PublicPropertyPageResponse{
		Success:    true,
		Properties: result.Properties,
		Page:       result.Page,
		Limit:      result.Limit,
		Count:      result.Count,
	})
}

// parsePositiveQuery returns the named query parameter as a positive
// integer, or 0 when it is absent or malformed so the service applies its
// default.
func parsePositiveQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0
	}
	return v
}

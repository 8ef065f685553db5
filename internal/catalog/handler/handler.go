package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotation_backend/internal/catalog/service"
	"quotation_backend/internal/catalog/transport"
	"quotation_backend/platform/httpkit"
	"quotation_backend/platform/validator"
)

// Handler handles HTTP requests for the service catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid service ID"
	msgInvalidSubID     = "invalid sub-service ID"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListPublic retrieves the active catalog for the customer wizard.
// GET /api/v1/services
func (h *Handler) ListPublic(c *gin.Context) {
	result, err := h.svc.ListPublicCatalog(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"services": result})
}

// List retrieves services with filters and pagination (admin only).
// GET /api/v1/admin/services
func (h *Handler) List(c *gin.Context) {
	var req transport.ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ListWithFilters(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get retrieves a service with its sub-services.
// GET /api/v1/admin/services/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.GetService(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create creates a new service.
// POST /api/v1/admin/services
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateService(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Update updates an existing service.
// PUT /api/v1/admin/services/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateService(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a service.
// DELETE /api/v1/admin/services/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.DeleteService(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ToggleStatus flips a service between active and inactive.
// PATCH /api/v1/admin/services/:id/toggle-status
func (h *Handler) ToggleStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.ToggleServiceStatus(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateSubService creates a priced option under a service.
// POST /api/v1/admin/services/:id/sub-services
func (h *Handler) CreateSubService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.CreateSubServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateSubService(c.Request.Context(), serviceID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateSubService updates a priced option.
// PUT /api/v1/admin/sub-services/:id
func (h *Handler) UpdateSubService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSubID, nil)
		return
	}

	var req transport.UpdateSubServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateSubService(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteSubService removes a priced option.
// DELETE /api/v1/admin/sub-services/:id
func (h *Handler) DeleteSubService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSubID, nil)
		return
	}

	err = h.svc.DeleteSubService(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "deleted"})
}

// ToggleSubServiceStatus flips a sub-service between active and inactive.
// PATCH /api/v1/admin/sub-services/:id/toggle-status
func (h *Handler) ToggleSubServiceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSubID, nil)
		return
	}

	result, err := h.svc.ToggleSubServiceStatus(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

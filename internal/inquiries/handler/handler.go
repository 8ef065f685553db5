// Package handler exposes inquiry management over HTTP for the admin dashboard.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotation_backend/internal/inquiries/service"
	"quotation_backend/internal/inquiries/transport"
	"quotation_backend/platform/httpkit"
	"quotation_backend/platform/validator"
)

// Handler handles HTTP requests for inquiry management.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid inquiry ID"
)

// New creates a new inquiries handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves inquiries with filters and pagination.
// GET /api/v1/admin/inquiries
func (h *Handler) List(c *gin.Context) {
	var req transport.ListInquiriesRequest
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

// Stats retrieves the dashboard counters.
// GET /api/v1/admin/inquiries/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get retrieves one inquiry with its service lines.
// GET /api/v1/admin/inquiries/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStatus moves an inquiry through the workflow.
// PATCH /api/v1/admin/inquiries/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DocumentURL issues a presigned download link for the inquiry's document.
// GET /api/v1/admin/inquiries/:id/document
func (h *Handler) DocumentURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.DocumentURL(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

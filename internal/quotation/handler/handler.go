// Package handler exposes the quotation wizard over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotation_backend/internal/quotation/service"
	"quotation_backend/internal/quotation/transport"
	"quotation_backend/platform/httpkit"
	"quotation_backend/platform/validator"
)

// Handler handles HTTP requests for the customer quotation wizard.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session ID"
)

// New creates a new quotation handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return uuid.Nil, false
	}
	return id, true
}

// CreateSession starts a new quotation session.
// POST /api/v1/quotation/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	result, err := h.svc.CreateSession(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetState returns the current session state with live pricing.
// GET /api/v1/quotation/sessions/:id
func (h *Handler) GetState(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetState(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdatePersonalInfo applies a partial personal info update.
// PUT /api/v1/quotation/sessions/:id/personal-info
func (h *Handler) UpdatePersonalInfo(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.PersonalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.UpdatePersonalInfo(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ToggleService selects or deselects a sub-service.
// POST /api/v1/quotation/sessions/:id/services/toggle
func (h *Handler) ToggleService(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.ToggleServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ToggleService(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetQuantity updates the quantity of a selected per-unit option.
// PUT /api/v1/quotation/sessions/:id/services/quantity
func (h *Handler) SetQuantity(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SetQuantity(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateOptions applies the urgent and document toggles.
// PUT /api/v1/quotation/sessions/:id/options
func (h *Handler) UpdateOptions(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.OptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.UpdateOptions(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateDocumentUploadURL issues a presigned upload URL for a customer document.
// POST /api/v1/quotation/sessions/:id/document/upload-url
func (h *Handler) CreateDocumentUploadURL(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateDocumentUploadURL(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RecordDocument stores the uploaded document reference on the session.
// POST /api/v1/quotation/sessions/:id/document
func (h *Handler) RecordDocument(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.RecordDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.RecordDocument(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Next advances the wizard one step.
// POST /api/v1/quotation/sessions/:id/next
func (h *Handler) Next(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.Next(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Back steps the wizard backwards.
// POST /api/v1/quotation/sessions/:id/back
func (h *Handler) Back(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.Back(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Submit finalizes the quotation.
// POST /api/v1/quotation/sessions/:id/submit
func (h *Handler) Submit(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), id, req.Kind)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

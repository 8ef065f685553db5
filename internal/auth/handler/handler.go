// Package handler exposes admin authentication over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quotation_backend/internal/auth/service"
	"quotation_backend/internal/auth/transport"
	"quotation_backend/platform/httpkit"
	"quotation_backend/platform/validator"
)

// Handler handles HTTP requests for admin authentication.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RequestOTP emails a login code. The response is identical whether or not
// the email belongs to an admin.
// POST /api/v1/auth/otp/request
func (h *Handler) RequestOTP(c *gin.Context) {
	var req transport.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.RequestOTP(c.Request.Context(), req.Email); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "sent"})
}

// VerifyOTP exchanges a login code for a session token.
// POST /api/v1/auth/otp/verify
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req transport.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Session returns the signed-in admin's profile.
// GET /api/v1/admin/auth/session
func (h *Handler) Session(c *gin.Context) {
	adminID, ok := c.Value(httpkit.ContextAdminIDKey).(uuid.UUID)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing token", nil)
		return
	}

	result, err := h.svc.Session(c.Request.Context(), adminID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SignOut revokes the current session.
// POST /api/v1/admin/auth/signout
func (h *Handler) SignOut(c *gin.Context) {
	sid, _ := c.Value(httpkit.ContextSessionIDKey).(string)
	sessionID, err := uuid.Parse(sid)
	if err != nil {
		httpkit.Error(c, http.StatusUnauthorized, "invalid token", nil)
		return
	}

	if err := h.svc.SignOut(c.Request.Context(), sessionID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "signed_out"})
}

// Package transport defines request and response DTOs for admin authentication.
package transport

import "github.com/google/uuid"

// RequestOTPRequest asks for a login code to be emailed.
type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest exchanges an emailed code for a session token.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// AdminResponse is the signed-in admin's profile.
type AdminResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// SessionResponse is returned on successful sign-in.
type SessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt string        `json:"expiresAt"`
	Admin     AdminResponse `json:"admin"`
}

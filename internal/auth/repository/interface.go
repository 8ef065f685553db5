// Package repository provides PostgreSQL persistence for admin authentication.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AdminUser is a dashboard operator allowed to sign in.
type AdminUser struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// Admin user statuses.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// Session is a server-side admin session row. The token itself is never
// stored, only its hash.
type Session struct {
	ID        uuid.UUID
	AdminID   uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// CreateOTPParams holds a new login code. Only the hash is persisted.
type CreateOTPParams struct {
	AdminID   uuid.UUID
	CodeHash  string
	ExpiresAt time.Time
}

// Repository is the persistence boundary for admin authentication.
type Repository interface {
	GetAdminByEmail(ctx context.Context, email string) (AdminUser, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (AdminUser, error)

	CreateOTP(ctx context.Context, params CreateOTPParams) (uuid.UUID, error)
	// ConsumeOTP marks a matching unconsumed, unexpired code as used.
	// Returns a not found error when no such code exists.
	ConsumeOTP(ctx context.Context, adminID uuid.UUID, codeHash string) error
	DeleteExpiredOTPs(ctx context.Context) (int64, error)

	CreateSession(ctx context.Context, session Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (Session, error)
	RevokeSession(ctx context.Context, id uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quotation_backend/platform/apperr"
)

const (
	adminNotFoundMessage   = "admin user not found"
	otpNotFoundMessage     = "login code not found"
	sessionNotFoundMessage = "session not found"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetAdminByEmail retrieves an active admin user by email (case-insensitive).
func (r *Repo) GetAdminByEmail(ctx context.Context, email string) (AdminUser, error) {
	query := `
		SELECT id, email, name, status, created_at, updated_at
		FROM admin_users
		WHERE LOWER(email) = LOWER($1) AND status = 'active'`

	return scanAdminRow(r.pool.QueryRow(ctx, query, email))
}

// GetAdminByID retrieves an active admin user by ID.
func (r *Repo) GetAdminByID(ctx context.Context, id uuid.UUID) (AdminUser, error) {
	query := `
		SELECT id, email, name, status, created_at, updated_at
		FROM admin_users
		WHERE id = $1 AND status = 'active'`

	return scanAdminRow(r.pool.QueryRow(ctx, query, id))
}

// CreateOTP persists a hashed login code.
func (r *Repo) CreateOTP(ctx context.Context, params CreateOTPParams) (uuid.UUID, error) {
	query := `
		INSERT INTO admin_otp_tokens (admin_id, code_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query, params.AdminID, params.CodeHash, params.ExpiresAt).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create otp token: %w", err)
	}
	return id, nil
}

// ConsumeOTP marks a matching unconsumed, unexpired code as used. Codes are
// strictly single-use.
func (r *Repo) ConsumeOTP(ctx context.Context, adminID uuid.UUID, codeHash string) error {
	query := `
		UPDATE admin_otp_tokens
		SET consumed_at = NOW()
		WHERE admin_id = $1 AND code_hash = $2
		  AND consumed_at IS NULL AND expires_at > NOW()`

	tag, err := r.pool.Exec(ctx, query, adminID, codeHash)
	if err != nil {
		return fmt.Errorf("consume otp token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(otpNotFoundMessage)
	}
	return nil
}

// DeleteExpiredOTPs removes codes past their expiry, consumed or not.
func (r *Repo) DeleteExpiredOTPs(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admin_otp_tokens WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired otp tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreateSession persists a server-side session row.
func (r *Repo) CreateSession(ctx context.Context, session Session) error {
	query := `
		INSERT INTO admin_sessions (id, admin_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, session.ID, session.AdminID, session.TokenHash, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("create admin session: %w", err)
	}
	return nil
}

// GetSessionByTokenHash retrieves a session row by its token hash.
func (r *Repo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (Session, error) {
	query := `
		SELECT id, admin_id, token_hash, expires_at, revoked_at
		FROM admin_sessions
		WHERE token_hash = $1`

	var session Session
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&session.ID, &session.AdminID, &session.TokenHash, &session.ExpiresAt, &session.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, apperr.NotFound(sessionNotFoundMessage)
		}
		return Session{}, fmt.Errorf("get admin session: %w", err)
	}

	return session, nil
}

// RevokeSession marks a session as revoked. Revoking twice is a no-op.
func (r *Repo) RevokeSession(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE admin_sessions
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("revoke admin session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry.
func (r *Repo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired admin sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdminRow(row rowScanner) (AdminUser, error) {
	var admin AdminUser
	var createdAt, updatedAt time.Time

	err := row.Scan(&admin.ID, &admin.Email, &admin.Name, &admin.Status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AdminUser{}, apperr.NotFound(adminNotFoundMessage)
		}
		return AdminUser{}, fmt.Errorf("scan admin user: %w", err)
	}

	admin.CreatedAt = createdAt.Format(time.RFC3339)
	admin.UpdatedAt = updatedAt.Format(time.RFC3339)

	return admin, nil
}

// Package service implements passwordless admin authentication: a six digit
// code is emailed on request and exchanged for a server-side session backed
// by a signed token.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"quotation_backend/internal/auth/repository"
	"quotation_backend/internal/auth/transport"
	"quotation_backend/internal/events"
	"quotation_backend/internal/scheduler"
	"quotation_backend/platform/apperr"
	"quotation_backend/platform/config"
	"quotation_backend/platform/httpkit"
	"quotation_backend/platform/logger"
)

const tokenType = "admin_session"

const msgInvalidCode = "invalid or expired code"

// Service orchestrates admin authentication.
type Service struct {
	repo repository.Repository
	cfg  config.SessionConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.SessionConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

var (
	_ httpkit.SessionChecker = (*Service)(nil)
	_ scheduler.OTPPurger    = (*Service)(nil)
)

// RequestOTP issues a login code for the given email. Unknown emails succeed
// silently so the endpoint cannot be used to enumerate admin accounts.
func (s *Service) RequestOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("otp_request", email, false, "unknown email")
			return nil
		}
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("generate otp code: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.cfg.GetOTPTTL())
	if _, err := s.repo.CreateOTP(ctx, repository.CreateOTPParams{
		AdminID:   admin.ID,
		CodeHash:  hashToken(code),
		ExpiresAt: expiresAt,
	}); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.AdminOTPRequested{
		BaseEvent:     events.NewBaseEvent(),
		AdminID:       admin.ID,
		Email:         admin.Email,
		Code:          code,
		ExpiryMinutes: int(s.cfg.GetOTPTTL().Minutes()),
	})

	s.log.AuthEvent("otp_request", email, true, "")
	return nil
}

// VerifyOTP exchanges a login code for a session token. Codes are single-use;
// a second verify with the same code fails.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (transport.SessionResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("otp_verify", email, false, "unknown email")
			return transport.SessionResponse{}, apperr.Unauthorized(msgInvalidCode)
		}
		return transport.SessionResponse{}, err
	}

	if err := s.repo.ConsumeOTP(ctx, admin.ID, hashToken(code)); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("otp_verify", email, false, "code mismatch")
			return transport.SessionResponse{}, apperr.Unauthorized(msgInvalidCode)
		}
		return transport.SessionResponse{}, err
	}

	sessionID := uuid.New()
	expiresAt := time.Now().UTC().Add(s.cfg.GetSessionTTL())

	token, err := s.signSessionToken(admin, sessionID, expiresAt)
	if err != nil {
		return transport.SessionResponse{}, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.repo.CreateSession(ctx, repository.Session{
		ID:        sessionID,
		AdminID:   admin.ID,
		TokenHash: hashToken(token),
		ExpiresAt: expiresAt,
	}); err != nil {
		return transport.SessionResponse{}, err
	}

	s.log.AuthEvent("sign_in", email, true, "")

	return transport.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		Admin: transport.AdminResponse{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
		},
	}, nil
}

// Session returns the signed-in admin's profile.
func (s *Service) Session(ctx context.Context, adminID uuid.UUID) (transport.AdminResponse, error) {
	admin, err := s.repo.GetAdminByID(ctx, adminID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.AdminResponse{}, apperr.Unauthorized("session no longer valid")
		}
		return transport.AdminResponse{}, err
	}

	return transport.AdminResponse{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
	}, nil
}

// SignOut revokes the server-side session; the token stops working even
// though it has not expired.
func (s *Service) SignOut(ctx context.Context, sessionID uuid.UUID) error {
	return s.repo.RevokeSession(ctx, sessionID)
}

// CheckSession verifies that a token still maps to a live server-side
// session. Implements httpkit.SessionChecker.
func (s *Service) CheckSession(rawToken string) error {
	session, err := s.repo.GetSessionByTokenHash(context.Background(), hashToken(rawToken))
	if err != nil {
		return err
	}
	if session.RevokedAt != nil {
		return apperr.Unauthorized("session revoked")
	}
	if time.Now().After(session.ExpiresAt) {
		return apperr.Unauthorized("session expired")
	}
	return nil
}

// DeleteExpiredOTPs purges expired login codes and sessions. Implements
// scheduler.OTPPurger for the periodic cleanup task.
func (s *Service) DeleteExpiredOTPs(ctx context.Context) (int64, error) {
	otps, err := s.repo.DeleteExpiredOTPs(ctx)
	if err != nil {
		return 0, err
	}
	sessions, err := s.repo.DeleteExpiredSessions(ctx)
	if err != nil {
		return otps, err
	}
	return otps + sessions, nil
}

func (s *Service) signSessionToken(admin repository.AdminUser, sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"type":  tokenType,
		"sub":   admin.ID.String(),
		"sid":   sessionID.String(),
		"email": admin.Email,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetSessionSecret()))
}

// generateOTPCode returns a uniformly random six digit code.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

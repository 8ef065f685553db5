// Package auth provides the admin authentication bounded context module:
// passwordless OTP sign-in and server-side session management.
package auth

import (
	apphttp "quotation_backend/internal/http"

	"quotation_backend/internal/auth/handler"
	"quotation_backend/internal/auth/repository"
	"quotation_backend/internal/auth/service"
	"quotation_backend/internal/events"
	"quotation_backend/platform/config"
	"quotation_backend/platform/logger"
	"quotation_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg config.SessionConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer. It doubles as the router's session
// checker and the worker's token purger.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
// The public OTP endpoints carry the stricter auth rate limit.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	otp := ctx.V1.Group("/auth/otp")
	if ctx.AuthRateLimiter != nil {
		otp.Use(ctx.AuthRateLimiter.RateLimit())
	}
	otp.POST("/request", m.handler.RequestOTP)
	otp.POST("/verify", m.handler.VerifyOTP)

	session := ctx.Admin.Group("/auth")
	session.GET("/session", m.handler.Session)
	session.POST("/signout", m.handler.SignOut)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

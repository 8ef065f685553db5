// Package inquiries provides the inquiry management bounded context module.
// It stores submitted quotation requests and exposes the admin workflow
// around them.
package inquiries

import (
	apphttp "quotation_backend/internal/http"

	"quotation_backend/internal/adapters/storage"
	"quotation_backend/internal/events"
	"quotation_backend/internal/inquiries/handler"
	"quotation_backend/internal/inquiries/repository"
	"quotation_backend/internal/inquiries/service"
	"quotation_backend/platform/logger"
	"quotation_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the inquiries bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the inquiries module. Storage may be nil
// when object storage is disabled.
func NewModule(pool *pgxpool.Pool, bus events.Bus, store storage.Service, bucket string, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, store, bucket, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "inquiries"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts inquiry routes on the provided router context.
// All routes require admin authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Admin.Group("/inquiries")
	group.GET("", m.handler.List)
	group.GET("/stats", m.handler.Stats)
	group.GET("/:id", m.handler.Get)
	group.PATCH("/:id/status", m.handler.UpdateStatus)
	group.GET("/:id/document", m.handler.DocumentURL)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

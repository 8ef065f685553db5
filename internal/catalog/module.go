// Package catalog provides the service catalog bounded context module.
// It manages the services and priced sub-services customers can request
// quotations for.
package catalog

import (
	apphttp "quotation_backend/internal/http"

	"quotation_backend/internal/catalog/handler"
	"quotation_backend/internal/catalog/repository"
	"quotation_backend/internal/catalog/service"
	"quotation_backend/platform/logger"
	"quotation_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public read-only catalog for the quotation wizard
	ctx.V1.GET("/services", m.handler.ListPublic)

	// Admin-only CRUD endpoints
	adminGroup := ctx.Admin.Group("/services")
	adminGroup.GET("", m.handler.List)
	adminGroup.POST("", m.handler.Create)
	adminGroup.GET("/:id", m.handler.Get)
	adminGroup.PUT("/:id", m.handler.Update)
	adminGroup.DELETE("/:id", m.handler.Delete)
	adminGroup.PATCH("/:id/toggle-status", m.handler.ToggleStatus)
	adminGroup.POST("/:id/sub-services", m.handler.CreateSubService)

	subGroup := ctx.Admin.Group("/sub-services")
	subGroup.PUT("/:id", m.handler.UpdateSubService)
	subGroup.DELETE("/:id", m.handler.DeleteSubService)
	subGroup.PATCH("/:id/toggle-status", m.handler.ToggleSubServiceStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package quotation provides the customer-facing quotation wizard module.
// State lives server-side in Redis; every endpoint answers with the full
// session state so the frontend stays a thin renderer.
package quotation

import (
	apphttp "quotation_backend/internal/http"

	"quotation_backend/internal/quotation/handler"
	"quotation_backend/internal/quotation/service"
	"quotation_backend/internal/quotation/store"
	"quotation_backend/platform/validator"
)

// Module is the quotation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	store   store.Store
}

// NewModule creates and initializes the quotation module.
func NewModule(deps service.Deps, val *validator.Validator) *Module {
	svc := service.NewService(deps)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		store:   deps.Sessions,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotation"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public wizard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	sessions := ctx.V1.Group("/quotation/sessions")
	sessions.POST("", m.handler.CreateSession)
	sessions.GET("/:id", m.handler.GetState)
	sessions.PUT("/:id/personal-info", m.handler.UpdatePersonalInfo)
	sessions.POST("/:id/services/toggle", m.handler.ToggleService)
	sessions.PUT("/:id/services/quantity", m.handler.SetQuantity)
	sessions.PUT("/:id/options", m.handler.UpdateOptions)
	sessions.POST("/:id/document/upload-url", m.handler.CreateDocumentUploadURL)
	sessions.POST("/:id/document", m.handler.RecordDocument)
	sessions.POST("/:id/next", m.handler.Next)
	sessions.POST("/:id/back", m.handler.Back)
	sessions.POST("/:id/submit", m.handler.Submit)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package service implements the quotation wizard: a server-side form state
// machine whose every mutation is validated, persisted, and answered with the
// full session state.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quotation_backend/internal/email"
	"quotation_backend/internal/proposal"
	"quotation_backend/internal/quotation/domain"
	"quotation_backend/internal/quotation/store"
	"quotation_backend/internal/quotation/transport"
	"quotation_backend/internal/scheduler"
	"quotation_backend/platform/apperr"
	"quotation_backend/platform/config"
	"quotation_backend/platform/logger"
)

type Service struct {
	sessions  store.Store
	catalog   CatalogReader
	inquiries InquiryWriter
	sender    email.Sender
	generator proposal.Generator
	resets    scheduler.SessionResetScheduler
	storage   DocumentStorage
	bucket    string
	emailCfg  config.EmailConfig
	log       *logger.Logger
}

// Deps bundles the collaborators the wizard needs. Storage and Resets may be
// nil; the matching features degrade instead of failing.
type Deps struct {
	Sessions  store.Store
	Catalog   CatalogReader
	Inquiries InquiryWriter
	Sender    email.Sender
	Generator proposal.Generator
	Resets    scheduler.SessionResetScheduler
	Storage   DocumentStorage
	Bucket    string
	Email     config.EmailConfig
	Logger    *logger.Logger
}

func NewService(deps Deps) *Service {
	return &Service{
		sessions:  deps.Sessions,
		catalog:   deps.Catalog,
		inquiries: deps.Inquiries,
		sender:    deps.Sender,
		generator: deps.Generator,
		resets:    deps.Resets,
		storage:   deps.Storage,
		bucket:    deps.Bucket,
		emailCfg:  deps.Email,
		log:       deps.Logger,
	}
}

// CreateSession starts a fresh wizard session.
func (s *Service) CreateSession(ctx context.Context) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Create(ctx)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	return s.buildState(ctx, session)
}

// GetState returns the current wizard state with live pricing.
func (s *Service) GetState(ctx context.Context, sessionID uuid.UUID) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	return s.buildState(ctx, session)
}

// ensureMutable rejects commands once a submission is in flight or the
// confirmation screen is up. A confirmed session stays inert until the
// scheduled reset clears it.
func ensureMutable(session domain.FormSession) error {
	if session.ShowConfirmation {
		return apperr.Conflict("quotation already submitted")
	}
	if session.Submitting {
		return apperr.Conflict("a submission is already in progress")
	}
	return nil
}

// UpdatePersonalInfo applies a partial personal info update. Editing a field
// clears its validation error so the customer is not nagged while typing.
func (s *Service) UpdatePersonalInfo(ctx context.Context, sessionID uuid.UUID, req transport.PersonalInfoRequest) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if err := ensureMutable(session); err != nil {
		return transport.SessionStateResponse{}, err
	}

	if req.Name != nil {
		session.Data.Name = *req.Name
		delete(session.FormErrors, domain.ErrKeyName)
	}
	if req.Email != nil {
		session.Data.Email = *req.Email
		delete(session.FormErrors, domain.ErrKeyEmail)
	}
	if req.Phone != nil {
		session.Data.Phone = *req.Phone
		delete(session.FormErrors, domain.ErrKeyPhone)
	}
	if req.Country != nil {
		session.Data.Country = *req.Country
		delete(session.FormErrors, domain.ErrKeyCountry)
	}
	if req.Message != nil {
		session.Data.Message = *req.Message
	}

	return s.saveAndBuild(ctx, session)
}

// ToggleService selects a sub-service, or removes it when already selected.
// Newly selected per-unit options start at the catalog minimum quantity.
func (s *Service) ToggleService(ctx context.Context, sessionID uuid.UUID, req transport.ToggleServiceRequest) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if err := ensureMutable(session); err != nil {
		return transport.SessionStateResponse{}, err
	}

	if idx := session.Data.FindSelection(req.ServiceID, req.SubServiceID); idx >= 0 {
		session.Data.SelectedServices = append(
			session.Data.SelectedServices[:idx],
			session.Data.SelectedServices[idx+1:]...,
		)
		return s.saveAndBuild(ctx, session)
	}

	item, ok, err := s.catalog.Lookup(ctx, req.ServiceID, req.SubServiceID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if !ok {
		return transport.SessionStateResponse{}, apperr.NotFound("service option not found or inactive")
	}

	selection := domain.ServiceSelection{
		ServiceID:    req.ServiceID,
		SubServiceID: req.SubServiceID,
	}
	if !item.FlatRate() {
		quantity := item.EffectiveQuantity(1)
		selection.Quantity = &quantity
	}
	session.Data.SelectedServices = append(session.Data.SelectedServices, selection)

	return s.saveAndBuild(ctx, session)
}

// SetQuantity changes the quantity of a selected per-unit option. Requests
// below the catalog minimum are raised to it.
func (s *Service) SetQuantity(ctx context.Context, sessionID uuid.UUID, req transport.SetQuantityRequest) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if err := ensureMutable(session); err != nil {
		return transport.SessionStateResponse{}, err
	}

	idx := session.Data.FindSelection(req.ServiceID, req.SubServiceID)
	if idx < 0 {
		return transport.SessionStateResponse{}, apperr.Validation("service is not selected")
	}

	item, ok, err := s.catalog.Lookup(ctx, req.ServiceID, req.SubServiceID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if !ok {
		return transport.SessionStateResponse{}, apperr.NotFound("service option not found or inactive")
	}
	if item.FlatRate() {
		return transport.SessionStateResponse{}, apperr.Validation("this option has a flat rate and no quantity")
	}

	quantity := item.EffectiveQuantity(req.Quantity)
	session.Data.SelectedServices[idx].Quantity = &quantity

	return s.saveAndBuild(ctx, session)
}

// UpdateOptions applies the urgent and document toggles. Turning the document
// toggle off discards any uploaded document reference.
func (s *Service) UpdateOptions(ctx context.Context, sessionID uuid.UUID, req transport.OptionsRequest) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if err := ensureMutable(session); err != nil {
		return transport.SessionStateResponse{}, err
	}

	if req.Urgent != nil {
		session.Data.Urgent = *req.Urgent
	}
	if req.HasDocument != nil {
		session.Data.HasDocument = *req.HasDocument
		if !*req.HasDocument {
			session.Data.DocumentKey = ""
			session.Data.DocumentName = ""
			delete(session.FormErrors, domain.ErrKeyDocument)
		}
	}

	return s.saveAndBuild(ctx, session)
}

// CreateDocumentUploadURL returns a presigned upload URL scoped to the session.
func (s *Service) CreateDocumentUploadURL(ctx context.Context, sessionID uuid.UUID, req transport.UploadURLRequest) (transport.UploadURLResponse, error) {
	if s.storage == nil {
		return transport.UploadURLResponse{}, apperr.Validation("document uploads are not available")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.UploadURLResponse{}, err
	}

	presigned, err := s.storage.GenerateUploadURL(ctx, s.bucket, session.ID.String(), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.UploadURLResponse{}, err
	}

	return transport.UploadURLResponse{
		URL:       presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// RecordDocument stores the uploaded document reference on the session.
func (s *Service) RecordDocument(ctx context.Context, sessionID uuid.UUID, req transport.RecordDocumentRequest) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if err := ensureMutable(session); err != nil {
		return transport.SessionStateResponse{}, err
	}

	session.Data.HasDocument = true
	session.Data.DocumentKey = req.FileKey
	session.Data.DocumentName = req.FileName
	delete(session.FormErrors, domain.ErrKeyDocument)

	return s.saveAndBuild(ctx, session)
}

// Next advances the wizard. Leaving the personal info step runs full
// validation; on the review step it raises the final options overlay instead
// of advancing.
func (s *Service) Next(ctx context.Context, sessionID uuid.UUID) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if err := ensureMutable(session); err != nil {
		return transport.SessionStateResponse{}, err
	}

	switch session.CurrentStep {
	case domain.StepPersonalInfo:
		if errs := domain.ValidatePersonalInfo(session.Data); len(errs) > 0 {
			session.FormErrors = errs
			if err := s.sessions.Save(ctx, session); err != nil {
				return transport.SessionStateResponse{}, err
			}
			return transport.SessionStateResponse{}, apperr.Validation("please fix the highlighted fields").WithDetails(errs)
		}
		session.FormErrors = map[string]string{}
		session.CurrentStep = domain.StepServices

	case domain.StepServices:
		if len(session.Data.SelectedServices) == 0 {
			return transport.SessionStateResponse{}, apperr.Validation("Please select at least one service")
		}
		session.CurrentStep = domain.StepReview

	case domain.StepReview:
		session.ShowFinalOptions = true
	}

	return s.saveAndBuild(ctx, session)
}

// Back steps the wizard backwards. The final options overlay closes before
// any step change.
func (s *Service) Back(ctx context.Context, sessionID uuid.UUID) (transport.SessionStateResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}
	if err := ensureMutable(session); err != nil {
		return transport.SessionStateResponse{}, err
	}

	switch {
	case session.ShowFinalOptions:
		session.ShowFinalOptions = false
	case session.CurrentStep > domain.StepPersonalInfo:
		session.CurrentStep--
	}

	return s.saveAndBuild(ctx, session)
}

func (s *Service) saveAndBuild(ctx context.Context, session domain.FormSession) (transport.SessionStateResponse, error) {
	if err := s.sessions.Save(ctx, session); err != nil {
		return transport.SessionStateResponse{}, err
	}
	return s.buildState(ctx, session)
}

// buildState resolves live catalog pricing and renders the full wizard state.
func (s *Service) buildState(ctx context.Context, session domain.FormSession) (transport.SessionStateResponse, error) {
	catalog, err := s.catalog.Resolve(ctx, session.Data.SelectedServices)
	if err != nil {
		return transport.SessionStateResponse{}, err
	}

	lines := make([]transport.PricingLineResponse, 0, len(session.Data.SelectedServices))
	for _, sel := range session.Data.SelectedServices {
		line := transport.PricingLineResponse{
			ServiceID:      sel.ServiceID,
			SubServiceID:   sel.SubServiceID,
			Quantity:       sel.Quantity,
			LineTotalCents: domain.LineTotalCents(sel, catalog),
		}
		if item, ok := catalog[sel.SubServiceID]; ok {
			line.ServiceName = item.ServiceName
			line.SubServiceName = item.SubServiceName
			line.Unit = item.Unit
			line.UnitPriceCents = item.PriceCents
		}
		lines = append(lines, line)
	}

	pricing := transport.PricingSummaryResponse{
		Lines:           lines,
		GrandTotalCents: domain.GrandTotalCents(session.Data.SelectedServices, catalog, session.Data.Urgent),
	}
	if session.Data.Urgent {
		pricing.UrgencyFeeCents = domain.UrgencyFeeCents
	}

	return transport.SessionStateResponse{
		ID:               session.ID,
		Data:             session.Data,
		CurrentStep:      session.CurrentStep,
		ShowFinalOptions: session.ShowFinalOptions,
		Submitting:       session.Submitting,
		ShowConfirmation: session.ShowConfirmation,
		FormErrors:       session.FormErrors,
		Pricing:          pricing,
		CreatedAt:        session.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        session.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

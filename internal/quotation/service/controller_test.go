package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"quotation_backend/internal/email"
	"quotation_backend/internal/proposal"
	"quotation_backend/internal/quotation/domain"
	"quotation_backend/internal/quotation/store"
	"quotation_backend/internal/quotation/transport"
	"quotation_backend/platform/apperr"
	"quotation_backend/platform/logger"
)

type fakeCatalog struct {
	items map[uuid.UUID]domain.CatalogItem
	pairs map[uuid.UUID]uuid.UUID
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		items: map[uuid.UUID]domain.CatalogItem{},
		pairs: map[uuid.UUID]uuid.UUID{},
	}
}

func (f *fakeCatalog) add(serviceID, subServiceID uuid.UUID, item domain.CatalogItem) {
	f.items[subServiceID] = item
	f.pairs[subServiceID] = serviceID
}

func (f *fakeCatalog) Lookup(ctx context.Context, serviceID, subServiceID uuid.UUID) (domain.CatalogItem, bool, error) {
	item, ok := f.items[subServiceID]
	if !ok || f.pairs[subServiceID] != serviceID {
		return domain.CatalogItem{}, false, nil
	}
	return item, true, nil
}

func (f *fakeCatalog) Resolve(ctx context.Context, selections []domain.ServiceSelection) (domain.Catalog, error) {
	catalog := domain.Catalog{}
	for _, sel := range selections {
		if item, ok := f.items[sel.SubServiceID]; ok && f.pairs[sel.SubServiceID] == sel.ServiceID {
			catalog[sel.SubServiceID] = item
		}
	}
	return catalog, nil
}

type fakeInquiries struct {
	created   []CreateInquiryParams
	lines     []InquiryLineParams
	proposals map[uuid.UUID]string
	createErr error
	lineErr   error
	nextID    uuid.UUID
}

func newFakeInquiries() *fakeInquiries {
	return &fakeInquiries{proposals: map[uuid.UUID]string{}, nextID: uuid.New()}
}

func (f *fakeInquiries) CreateInquiry(ctx context.Context, params CreateInquiryParams) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, params)
	return f.nextID, nil
}

func (f *fakeInquiries) AddInquiryLine(ctx context.Context, params InquiryLineParams) error {
	if f.lineErr != nil {
		return f.lineErr
	}
	f.lines = append(f.lines, params)
	return nil
}

func (f *fakeInquiries) StoreProposal(ctx context.Context, inquiryID uuid.UUID, proposalHTML string, totalCents int64) error {
	f.proposals[inquiryID] = proposalHTML
	return nil
}

type fakeSender struct {
	customer    []email.QuoteEmailData
	admin       []email.QuoteEmailData
	customerErr error
	adminErr    error
}

func (f *fakeSender) SendCustomerQuoteEmail(ctx context.Context, toEmail string, data email.QuoteEmailData) error {
	if f.customerErr != nil {
		return f.customerErr
	}
	f.customer = append(f.customer, data)
	return nil
}

func (f *fakeSender) SendAdminQuoteEmail(ctx context.Context, toEmail string, data email.QuoteEmailData) error {
	if f.adminErr != nil {
		return f.adminErr
	}
	f.admin = append(f.admin, data)
	return nil
}

func (f *fakeSender) SendAdminOTPEmail(ctx context.Context, toEmail, code string, expiryMinutes int) error {
	return nil
}

func (f *fakeSender) SendStatusUpdateEmail(ctx context.Context, toEmail, customerName, inquiryRef, newStatus string) error {
	return nil
}

type fakeGenerator struct {
	html string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, req proposal.Request) (proposal.Result, error) {
	if f.err != nil {
		return proposal.Result{}, f.err
	}
	return proposal.Result{ProposalHTML: f.html, TotalCents: req.TotalCents}, nil
}

type fakeResets struct {
	sessionIDs []string
	delays     []time.Duration
}

func (f *fakeResets) ScheduleSessionReset(ctx context.Context, sessionID string, delay time.Duration) error {
	f.sessionIDs = append(f.sessionIDs, sessionID)
	f.delays = append(f.delays, delay)
	return nil
}

type fakeEmailConfig struct {
	adminAddr string
	fromName  string
}

func (f fakeEmailConfig) GetEmailEnabled() bool         { return true }
func (f fakeEmailConfig) GetEmailTransport() string     { return "brevo" }
func (f fakeEmailConfig) GetBrevoAPIKey() string        { return "" }
func (f fakeEmailConfig) GetSMTPHost() string           { return "" }
func (f fakeEmailConfig) GetSMTPPort() int              { return 0 }
func (f fakeEmailConfig) GetSMTPUsername() string       { return "" }
func (f fakeEmailConfig) GetSMTPPassword() string       { return "" }
func (f fakeEmailConfig) GetEmailFromName() string      { return f.fromName }
func (f fakeEmailConfig) GetEmailFromAddress() string   { return "noreply@example.com" }
func (f fakeEmailConfig) GetAdminNotifyAddress() string { return f.adminAddr }

type testEnv struct {
	svc       *Service
	store     store.Store
	catalog   *fakeCatalog
	inquiries *fakeInquiries
	sender    *fakeSender
	generator *fakeGenerator
	resets    *fakeResets
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	env := &testEnv{
		store:     store.NewRedisStore(client, 24*time.Hour),
		catalog:   newFakeCatalog(),
		inquiries: newFakeInquiries(),
		sender:    &fakeSender{},
		generator: &fakeGenerator{html: "<h1>Proposal</h1>"},
		resets:    &fakeResets{},
	}

	env.svc = NewService(Deps{
		Sessions:  env.store,
		Catalog:   env.catalog,
		Inquiries: env.inquiries,
		Sender:    env.sender,
		Generator: env.generator,
		Resets:    env.resets,
		Email:     fakeEmailConfig{adminAddr: "admin@example.com", fromName: "Acme Digital"},
		Logger:    logger.New("development"),
	})
	return env
}

func ptr[T any](v T) *T { return &v }

func (e *testEnv) newSession(t *testing.T) domain.FormSession {
	t.Helper()
	session, err := e.store.Create(context.Background())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func (e *testEnv) save(t *testing.T, session domain.FormSession) {
	t.Helper()
	if err := e.store.Save(context.Background(), session); err != nil {
		t.Fatalf("save session: %v", err)
	}
}

func (e *testEnv) reload(t *testing.T, id uuid.UUID) domain.FormSession {
	t.Helper()
	session, err := e.store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	return session
}

func TestCreateSessionStartsAtPersonalInfo(t *testing.T) {
	env := newTestEnv(t)

	state, err := env.svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if state.CurrentStep != domain.StepPersonalInfo {
		t.Errorf("CurrentStep = %d, want %d", state.CurrentStep, domain.StepPersonalInfo)
	}
	if len(state.Data.SelectedServices) != 0 {
		t.Errorf("expected no selections, got %d", len(state.Data.SelectedServices))
	}
	if state.Pricing.GrandTotalCents != 0 {
		t.Errorf("GrandTotalCents = %d, want 0", state.Pricing.GrandTotalCents)
	}
}

func TestUpdatePersonalInfoClearsFieldError(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)
	session.FormErrors = map[string]string{
		domain.ErrKeyEmail: "Email is required",
		domain.ErrKeyName:  "Name is required",
	}
	env.save(t, session)

	state, err := env.svc.UpdatePersonalInfo(context.Background(), session.ID, transport.PersonalInfoRequest{
		Email: ptr("jane@example.com"),
	})
	if err != nil {
		t.Fatalf("UpdatePersonalInfo: %v", err)
	}

	if state.Data.Email != "jane@example.com" {
		t.Errorf("Email = %q", state.Data.Email)
	}
	if _, ok := state.FormErrors[domain.ErrKeyEmail]; ok {
		t.Error("email error should be cleared after edit")
	}
	if _, ok := state.FormErrors[domain.ErrKeyName]; !ok {
		t.Error("untouched name error should remain")
	}
}

func TestToggleServiceAddsWithMinimumQuantity(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{
		ServiceName:    "Translation",
		SubServiceName: "Certified",
		PriceCents:     5000,
		Unit:           ptr("page"),
		MinimumUnits:   ptr(int64(3)),
	})
	session := env.newSession(t)

	state, err := env.svc.ToggleService(context.Background(), session.ID, transport.ToggleServiceRequest{
		ServiceID:    serviceID,
		SubServiceID: subID,
	})
	if err != nil {
		t.Fatalf("ToggleService: %v", err)
	}

	if len(state.Data.SelectedServices) != 1 {
		t.Fatalf("selections = %d, want 1", len(state.Data.SelectedServices))
	}
	sel := state.Data.SelectedServices[0]
	if sel.Quantity == nil || *sel.Quantity != 3 {
		t.Errorf("Quantity = %v, want 3 (catalog minimum)", sel.Quantity)
	}
	if state.Pricing.GrandTotalCents != 15000 {
		t.Errorf("GrandTotalCents = %d, want 15000", state.Pricing.GrandTotalCents)
	}
}

func TestToggleServiceTwiceRemovesSelection(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{ServiceName: "Design", SubServiceName: "Logo", PriceCents: 20000})
	session := env.newSession(t)

	req := transport.ToggleServiceRequest{ServiceID: serviceID, SubServiceID: subID}
	if _, err := env.svc.ToggleService(context.Background(), session.ID, req); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	state, err := env.svc.ToggleService(context.Background(), session.ID, req)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	if len(state.Data.SelectedServices) != 0 {
		t.Errorf("selections = %d, want 0 after toggle off", len(state.Data.SelectedServices))
	}
}

func TestToggleServiceFlatRateHasNoQuantity(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{ServiceName: "Design", SubServiceName: "Logo", PriceCents: 20000})
	session := env.newSession(t)

	state, err := env.svc.ToggleService(context.Background(), session.ID, transport.ToggleServiceRequest{
		ServiceID:    serviceID,
		SubServiceID: subID,
	})
	if err != nil {
		t.Fatalf("ToggleService: %v", err)
	}

	if state.Data.SelectedServices[0].Quantity != nil {
		t.Error("flat-rate selection should have nil quantity")
	}
}

func TestToggleServiceUnknownOption(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)

	_, err := env.svc.ToggleService(context.Background(), session.ID, transport.ToggleServiceRequest{
		ServiceID:    uuid.New(),
		SubServiceID: uuid.New(),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestSetQuantityClampsToMinimum(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{
		ServiceName:    "Translation",
		SubServiceName: "Standard",
		PriceCents:     2500,
		Unit:           ptr("page"),
		MinimumUnits:   ptr(int64(5)),
	})
	session := env.newSession(t)
	if _, err := env.svc.ToggleService(context.Background(), session.ID, transport.ToggleServiceRequest{ServiceID: serviceID, SubServiceID: subID}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	state, err := env.svc.SetQuantity(context.Background(), session.ID, transport.SetQuantityRequest{
		ServiceID:    serviceID,
		SubServiceID: subID,
		Quantity:     2,
	})
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	if q := state.Data.SelectedServices[0].Quantity; q == nil || *q != 5 {
		t.Errorf("Quantity = %v, want 5 (raised to minimum)", q)
	}
}

func TestSetQuantityOnFlatRateFails(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{ServiceName: "Design", SubServiceName: "Logo", PriceCents: 20000})
	session := env.newSession(t)
	if _, err := env.svc.ToggleService(context.Background(), session.ID, transport.ToggleServiceRequest{ServiceID: serviceID, SubServiceID: subID}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	_, err := env.svc.SetQuantity(context.Background(), session.ID, transport.SetQuantityRequest{
		ServiceID:    serviceID,
		SubServiceID: subID,
		Quantity:     4,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestSetQuantityOnUnselectedServiceFails(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)

	_, err := env.svc.SetQuantity(context.Background(), session.ID, transport.SetQuantityRequest{
		ServiceID:    uuid.New(),
		SubServiceID: uuid.New(),
		Quantity:     2,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestUpdateOptionsUrgentAddsSurcharge(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{ServiceName: "Design", SubServiceName: "Logo", PriceCents: 20000})
	session := env.newSession(t)
	if _, err := env.svc.ToggleService(context.Background(), session.ID, transport.ToggleServiceRequest{ServiceID: serviceID, SubServiceID: subID}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	state, err := env.svc.UpdateOptions(context.Background(), session.ID, transport.OptionsRequest{Urgent: ptr(true)})
	if err != nil {
		t.Fatalf("UpdateOptions: %v", err)
	}

	if state.Pricing.UrgencyFeeCents != domain.UrgencyFeeCents {
		t.Errorf("UrgencyFeeCents = %d, want %d", state.Pricing.UrgencyFeeCents, domain.UrgencyFeeCents)
	}
	if state.Pricing.GrandTotalCents != 22500 {
		t.Errorf("GrandTotalCents = %d, want 22500", state.Pricing.GrandTotalCents)
	}
}

func TestUpdateOptionsDocumentOffClearsUpload(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)
	session.Data.HasDocument = true
	session.Data.DocumentKey = "abc/contract.pdf"
	session.Data.DocumentName = "contract.pdf"
	session.FormErrors = map[string]string{domain.ErrKeyDocument: "Please upload your document or turn off the document upload option"}
	env.save(t, session)

	state, err := env.svc.UpdateOptions(context.Background(), session.ID, transport.OptionsRequest{HasDocument: ptr(false)})
	if err != nil {
		t.Fatalf("UpdateOptions: %v", err)
	}

	if state.Data.HasDocument || state.Data.DocumentKey != "" || state.Data.DocumentName != "" {
		t.Errorf("document fields should be cleared, got %+v", state.Data)
	}
	if _, ok := state.FormErrors[domain.ErrKeyDocument]; ok {
		t.Error("document error should be cleared")
	}
}

func TestRecordDocumentSetsReference(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)

	state, err := env.svc.RecordDocument(context.Background(), session.ID, transport.RecordDocumentRequest{
		FileKey:  session.ID.String() + "/brief_ab12cd34.pdf",
		FileName: "brief.pdf",
	})
	if err != nil {
		t.Fatalf("RecordDocument: %v", err)
	}

	if !state.Data.HasDocument {
		t.Error("HasDocument should be true")
	}
	if state.Data.DocumentName != "brief.pdf" {
		t.Errorf("DocumentName = %q", state.Data.DocumentName)
	}
}

func TestNextValidatesPersonalInfo(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)

	_, err := env.svc.Next(context.Background(), session.ID)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}

	reloaded := env.reload(t, session.ID)
	if reloaded.CurrentStep != domain.StepPersonalInfo {
		t.Errorf("CurrentStep = %d, should not advance", reloaded.CurrentStep)
	}
	if reloaded.FormErrors[domain.ErrKeyName] != "Name is required" {
		t.Errorf("name error = %q", reloaded.FormErrors[domain.ErrKeyName])
	}
	if reloaded.FormErrors[domain.ErrKeyCountry] != "Please select your country" {
		t.Errorf("country error = %q", reloaded.FormErrors[domain.ErrKeyCountry])
	}
}

func validPersonalInfo(session *domain.FormSession) {
	session.Data.Name = "Jane Doe"
	session.Data.Email = "jane@example.com"
	session.Data.Phone = "+12125550123"
	session.Data.Country = "United States"
}

func TestNextAdvancesThroughSteps(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{ServiceName: "Design", SubServiceName: "Logo", PriceCents: 20000})
	session := env.newSession(t)
	validPersonalInfo(&session)
	env.save(t, session)

	state, err := env.svc.Next(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Next from personal info: %v", err)
	}
	if state.CurrentStep != domain.StepServices {
		t.Fatalf("CurrentStep = %d, want %d", state.CurrentStep, domain.StepServices)
	}

	// No services yet, cannot advance.
	if _, err := env.svc.Next(context.Background(), session.ID); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation without selections", err)
	}

	if _, err := env.svc.ToggleService(context.Background(), session.ID, transport.ToggleServiceRequest{ServiceID: serviceID, SubServiceID: subID}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	state, err = env.svc.Next(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Next from services: %v", err)
	}
	if state.CurrentStep != domain.StepReview {
		t.Fatalf("CurrentStep = %d, want %d", state.CurrentStep, domain.StepReview)
	}

	state, err = env.svc.Next(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Next from review: %v", err)
	}
	if !state.ShowFinalOptions {
		t.Error("ShowFinalOptions should be raised on the review step")
	}
	if state.CurrentStep != domain.StepReview {
		t.Errorf("CurrentStep = %d, review is the last step", state.CurrentStep)
	}
}

func TestBackClosesFinalOptionsBeforeStepping(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)
	session.CurrentStep = domain.StepReview
	session.ShowFinalOptions = true
	env.save(t, session)

	state, err := env.svc.Back(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if state.ShowFinalOptions {
		t.Error("final options overlay should close first")
	}
	if state.CurrentStep != domain.StepReview {
		t.Errorf("CurrentStep = %d, should not change while closing overlay", state.CurrentStep)
	}

	state, err = env.svc.Back(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if state.CurrentStep != domain.StepServices {
		t.Errorf("CurrentStep = %d, want %d", state.CurrentStep, domain.StepServices)
	}
}

func TestBackAtFirstStepStays(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)

	state, err := env.svc.Back(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Back: %v", err)
	}
	if state.CurrentStep != domain.StepPersonalInfo {
		t.Errorf("CurrentStep = %d, want %d", state.CurrentStep, domain.StepPersonalInfo)
	}
}

func TestGetStateUnknownSessionIsGone(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.GetState(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindGone) {
		t.Fatalf("err = %v, want gone", err)
	}
}

func TestStateKeepsRemovedCatalogEntryAtZero(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{ServiceName: "Design", SubServiceName: "Logo", PriceCents: 20000})
	session := env.newSession(t)
	if _, err := env.svc.ToggleService(context.Background(), session.ID, transport.ToggleServiceRequest{ServiceID: serviceID, SubServiceID: subID}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// Admin removes the option mid-session.
	delete(env.catalog.items, subID)

	state, err := env.svc.GetState(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(state.Pricing.Lines) != 1 {
		t.Fatalf("lines = %d, want the stale selection kept", len(state.Pricing.Lines))
	}
	if state.Pricing.Lines[0].LineTotalCents != 0 {
		t.Errorf("LineTotalCents = %d, want 0 for removed entry", state.Pricing.Lines[0].LineTotalCents)
	}
	if state.Pricing.GrandTotalCents != 0 {
		t.Errorf("GrandTotalCents = %d, want 0", state.Pricing.GrandTotalCents)
	}
}

func TestConfirmedSessionIsInert(t *testing.T) {
	env := newTestEnv(t)
	serviceID, subID := uuid.New(), uuid.New()
	env.catalog.add(serviceID, subID, domain.CatalogItem{ServiceName: "Design", SubServiceName: "Logo", PriceCents: 20000})

	session := env.newSession(t)
	validPersonalInfo(&session)
	session.CurrentStep = domain.StepReview
	session.ShowConfirmation = true
	env.save(t, session)

	ctx := context.Background()
	commands := map[string]func() error{
		"UpdatePersonalInfo": func() error {
			_, err := env.svc.UpdatePersonalInfo(ctx, session.ID, transport.PersonalInfoRequest{Name: ptr("Mallory")})
			return err
		},
		"ToggleService": func() error {
			_, err := env.svc.ToggleService(ctx, session.ID, transport.ToggleServiceRequest{ServiceID: serviceID, SubServiceID: subID})
			return err
		},
		"SetQuantity": func() error {
			_, err := env.svc.SetQuantity(ctx, session.ID, transport.SetQuantityRequest{ServiceID: serviceID, SubServiceID: subID, Quantity: 5})
			return err
		},
		"UpdateOptions": func() error {
			_, err := env.svc.UpdateOptions(ctx, session.ID, transport.OptionsRequest{Urgent: ptr(true)})
			return err
		},
		"RecordDocument": func() error {
			_, err := env.svc.RecordDocument(ctx, session.ID, transport.RecordDocumentRequest{FileKey: "k", FileName: "f.pdf"})
			return err
		},
		"Next": func() error {
			_, err := env.svc.Next(ctx, session.ID)
			return err
		},
		"Back": func() error {
			_, err := env.svc.Back(ctx, session.ID)
			return err
		},
	}

	for name, run := range commands {
		if err := run(); !apperr.Is(err, apperr.KindConflict) {
			t.Errorf("%s error = %v, want conflict", name, err)
		}
	}

	reloaded, err := env.store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	if reloaded.Data.Name != "Jane Doe" {
		t.Errorf("Name = %q, confirmed session was mutated", reloaded.Data.Name)
	}
	if reloaded.Data.Urgent {
		t.Error("Urgent toggled on a confirmed session")
	}
	if len(reloaded.Data.SelectedServices) != 0 {
		t.Errorf("selections = %d, confirmed session was mutated", len(reloaded.Data.SelectedServices))
	}
	if reloaded.CurrentStep != domain.StepReview || !reloaded.ShowConfirmation {
		t.Errorf("step = %d confirmation = %v, confirmed session must stay put", reloaded.CurrentStep, reloaded.ShowConfirmation)
	}
}

func TestInFlightSubmissionBlocksCommands(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)
	validPersonalInfo(&session)
	session.Submitting = true
	env.save(t, session)

	ctx := context.Background()
	if _, err := env.svc.UpdateOptions(ctx, session.ID, transport.OptionsRequest{Urgent: ptr(true)}); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("UpdateOptions error = %v, want conflict", err)
	}
	if _, err := env.svc.Back(ctx, session.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("Back error = %v, want conflict", err)
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"quotation_backend/internal/quotation/domain"
	"quotation_backend/platform/apperr"
)

// submitReadySession builds a session on the review step with one per-unit
// and one flat-rate selection worth $250 before surcharges.
func submitReadySession(t *testing.T, env *testEnv) domain.FormSession {
	t.Helper()

	translationID, certifiedID := uuid.New(), uuid.New()
	designID, logoID := uuid.New(), uuid.New()
	env.catalog.add(translationID, certifiedID, domain.CatalogItem{
		ServiceName:    "Translation",
		SubServiceName: "Certified",
		PriceCents:     2500,
		Unit:           ptr("page"),
		MinimumUnits:   ptr(int64(1)),
	})
	env.catalog.add(designID, logoID, domain.CatalogItem{
		ServiceName:    "Design",
		SubServiceName: "Logo",
		PriceCents:     20000,
	})

	session := env.newSession(t)
	validPersonalInfo(&session)
	quantity := int64(2)
	session.Data.SelectedServices = []domain.ServiceSelection{
		{ServiceID: translationID, SubServiceID: certifiedID, Quantity: &quantity},
		{ServiceID: designID, SubServiceID: logoID},
	}
	session.CurrentStep = domain.StepReview
	session.ShowFinalOptions = true
	env.save(t, session)
	return session
}

func TestSubmitTailoredPersistsInquiry(t *testing.T) {
	env := newTestEnv(t)
	session := submitReadySession(t, env)

	resp, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(env.inquiries.created) != 1 {
		t.Fatalf("inquiries created = %d, want 1", len(env.inquiries.created))
	}
	created := env.inquiries.created[0]
	if created.ProposalType != "tailored" {
		t.Errorf("ProposalType = %q", created.ProposalType)
	}
	if created.TotalAmountCents != 25000 {
		t.Errorf("TotalAmountCents = %d, want 25000", created.TotalAmountCents)
	}
	if len(env.inquiries.lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(env.inquiries.lines))
	}

	if resp.Status != "submitted" {
		t.Errorf("Status = %q", resp.Status)
	}
	if !strings.HasPrefix(resp.InquiryRef, "INQ-") || len(resp.InquiryRef) != 12 {
		t.Errorf("InquiryRef = %q", resp.InquiryRef)
	}
	if resp.ProposalHTML != "" {
		t.Errorf("tailored submission should not carry a proposal, got %q", resp.ProposalHTML)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", resp.Warnings)
	}

	if len(env.sender.customer) != 1 || len(env.sender.admin) != 1 {
		t.Errorf("emails sent customer=%d admin=%d, want 1 each", len(env.sender.customer), len(env.sender.admin))
	}

	reloaded := env.reload(t, session.ID)
	if !reloaded.ShowConfirmation {
		t.Error("ShowConfirmation should be set")
	}
	if reloaded.Submitting {
		t.Error("Submitting should be cleared")
	}
	if reloaded.ShowFinalOptions {
		t.Error("final options overlay should close on submit")
	}

	if len(env.resets.delays) != 1 || env.resets.delays[0] != 10*time.Second {
		t.Errorf("reset delays = %v, want one 10s reset", env.resets.delays)
	}
}

func TestSubmitUrgentAddsSurchargeToTotal(t *testing.T) {
	env := newTestEnv(t)
	session := submitReadySession(t, env)
	session.Data.Urgent = true
	env.save(t, session)

	_, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if got := env.inquiries.created[0].TotalAmountCents; got != 27500 {
		t.Errorf("TotalAmountCents = %d, want 27500 with urgency fee", got)
	}
}

func TestSubmitInstantGeneratesProposal(t *testing.T) {
	env := newTestEnv(t)
	env.generator.html = "<h1>Business Proposal</h1>"
	session := submitReadySession(t, env)

	resp, err := env.svc.Submit(context.Background(), session.ID, "instant")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if resp.ProposalHTML != "<h1>Business Proposal</h1>" {
		t.Errorf("ProposalHTML = %q", resp.ProposalHTML)
	}
	if env.inquiries.created[0].ProposalType != "instant" {
		t.Errorf("ProposalType = %q", env.inquiries.created[0].ProposalType)
	}
	if stored := env.inquiries.proposals[env.inquiries.nextID]; stored != "<h1>Business Proposal</h1>" {
		t.Errorf("stored proposal = %q", stored)
	}
	if len(env.sender.customer) != 1 {
		t.Fatalf("customer emails = %d, want 1", len(env.sender.customer))
	}
	if string(env.sender.customer[0].ProposalHTML) != "<h1>Business Proposal</h1>" {
		t.Error("customer email should carry the generated proposal")
	}
}

func TestSubmitInstantDegradesWhenGeneratorFails(t *testing.T) {
	env := newTestEnv(t)
	env.generator.err = errors.New("model overloaded")
	session := submitReadySession(t, env)

	resp, err := env.svc.Submit(context.Background(), session.ID, "instant")
	if err != nil {
		t.Fatalf("Submit should succeed despite generator failure: %v", err)
	}

	if resp.ProposalHTML != "" {
		t.Errorf("ProposalHTML = %q, want empty", resp.ProposalHTML)
	}
	if len(resp.Warnings) == 0 {
		t.Fatal("expected a proposal warning")
	}
	if len(env.inquiries.created) != 1 {
		t.Errorf("inquiry should still be created")
	}
	if len(env.sender.customer) != 1 {
		t.Errorf("confirmation email should still be sent")
	}
}

func TestSubmitEmailFailureIsWarningOnly(t *testing.T) {
	env := newTestEnv(t)
	env.sender.customerErr = errors.New("brevo 503")
	session := submitReadySession(t, env)

	resp, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if err != nil {
		t.Fatalf("Submit should succeed despite email failure: %v", err)
	}
	if len(resp.Warnings) == 0 {
		t.Fatal("expected an email warning")
	}

	reloaded := env.reload(t, session.ID)
	if !reloaded.ShowConfirmation {
		t.Error("confirmation should still be shown")
	}
}

func TestSubmitLineFailureContinues(t *testing.T) {
	env := newTestEnv(t)
	env.inquiries.lineErr = errors.New("insert failed")
	session := submitReadySession(t, env)

	resp, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if err != nil {
		t.Fatalf("Submit should succeed despite line failures: %v", err)
	}
	if len(resp.Warnings) != 2 {
		t.Errorf("warnings = %v, want one per failed line", resp.Warnings)
	}
	if len(env.inquiries.created) != 1 {
		t.Error("inquiry should still be created")
	}
}

func TestSubmitValidationFailurePersistsErrors(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)

	_, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}

	if len(env.inquiries.created) != 0 {
		t.Error("no inquiry should be created on validation failure")
	}
	reloaded := env.reload(t, session.ID)
	if len(reloaded.FormErrors) == 0 {
		t.Error("form errors should be persisted")
	}
	if reloaded.Submitting {
		t.Error("Submitting should not be left set")
	}
}

func TestSubmitWithoutSelectionsFails(t *testing.T) {
	env := newTestEnv(t)
	session := env.newSession(t)
	validPersonalInfo(&session)
	env.save(t, session)

	_, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestSubmitWhileSubmittingConflicts(t *testing.T) {
	env := newTestEnv(t)
	session := submitReadySession(t, env)
	session.Submitting = true
	env.save(t, session)

	_, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if len(env.inquiries.created) != 0 {
		t.Error("no inquiry should be created while another submission runs")
	}
}

func TestSubmitAfterConfirmationConflicts(t *testing.T) {
	env := newTestEnv(t)
	session := submitReadySession(t, env)
	session.ShowConfirmation = true
	env.save(t, session)

	_, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestSubmitClearsFlagWhenInquiryFails(t *testing.T) {
	env := newTestEnv(t)
	env.inquiries.createErr = errors.New("db down")
	session := submitReadySession(t, env)

	_, err := env.svc.Submit(context.Background(), session.ID, "tailored")
	if err == nil {
		t.Fatal("Submit should fail when the inquiry cannot be persisted")
	}

	reloaded := env.reload(t, session.ID)
	if reloaded.Submitting {
		t.Error("Submitting flag should be cleared after a failed submission")
	}
	if reloaded.ShowConfirmation {
		t.Error("confirmation must not be shown on failure")
	}
}

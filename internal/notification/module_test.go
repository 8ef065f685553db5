package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"quotation_backend/internal/email"
	"quotation_backend/internal/events"
	platformevents "quotation_backend/platform/events"
	"quotation_backend/platform/logger"
)

type recordedOTP struct {
	to            string
	code          string
	expiryMinutes int
}

type recordedStatus struct {
	to         string
	name       string
	inquiryRef string
	newStatus  string
}

type fakeSender struct {
	otps     []recordedOTP
	statuses []recordedStatus
	err      error
}

func (f *fakeSender) SendCustomerQuoteEmail(ctx context.Context, toEmail string, data email.QuoteEmailData) error {
	return nil
}

func (f *fakeSender) SendAdminQuoteEmail(ctx context.Context, toEmail string, data email.QuoteEmailData) error {
	return nil
}

func (f *fakeSender) SendAdminOTPEmail(ctx context.Context, toEmail, code string, expiryMinutes int) error {
	if f.err != nil {
		return f.err
	}
	f.otps = append(f.otps, recordedOTP{to: toEmail, code: code, expiryMinutes: expiryMinutes})
	return nil
}

func (f *fakeSender) SendStatusUpdateEmail(ctx context.Context, toEmail, customerName, inquiryRef, newStatus string) error {
	if f.err != nil {
		return f.err
	}
	f.statuses = append(f.statuses, recordedStatus{to: toEmail, name: customerName, inquiryRef: inquiryRef, newStatus: newStatus})
	return nil
}

func newTestBus(t *testing.T) (events.Bus, *fakeSender) {
	t.Helper()
	bus := platformevents.NewInMemoryBus(logger.New("development"))
	sender := &fakeSender{}
	NewModule(bus, sender, logger.New("development"))
	return bus, sender
}

func TestOTPRequestedSendsLoginCode(t *testing.T) {
	bus, sender := newTestBus(t)

	err := bus.PublishSync(context.Background(), events.AdminOTPRequested{
		BaseEvent:     events.NewBaseEvent(),
		AdminID:       uuid.New(),
		Email:         "admin@example.com",
		Code:          "482913",
		ExpiryMinutes: 10,
	})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if len(sender.otps) != 1 {
		t.Fatalf("otp emails = %d, want 1", len(sender.otps))
	}
	got := sender.otps[0]
	if got.to != "admin@example.com" || got.code != "482913" || got.expiryMinutes != 10 {
		t.Errorf("otp email = %+v", got)
	}
}

func TestStatusChangedNotifiesCustomer(t *testing.T) {
	bus, sender := newTestBus(t)

	err := bus.PublishSync(context.Background(), events.InquiryStatusChanged{
		BaseEvent:     events.NewBaseEvent(),
		InquiryID:     uuid.New(),
		InquiryRef:    "INQ-1A2B3C4D",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		OldStatus:     "pending",
		NewStatus:     "in_progress",
	})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if len(sender.statuses) != 1 {
		t.Fatalf("status emails = %d, want 1", len(sender.statuses))
	}
	got := sender.statuses[0]
	if got.to != "jane@example.com" || got.inquiryRef != "INQ-1A2B3C4D" || got.newStatus != "in_progress" {
		t.Errorf("status email = %+v", got)
	}
}

func TestSenderFailureSurfacesFromHandlers(t *testing.T) {
	bus, sender := newTestBus(t)
	sender.err = errors.New("brevo 503")

	err := bus.PublishSync(context.Background(), events.InquiryStatusChanged{
		BaseEvent:     events.NewBaseEvent(),
		InquiryID:     uuid.New(),
		InquiryRef:    "INQ-1A2B3C4D",
		CustomerEmail: "jane@example.com",
		NewStatus:     "completed",
	})
	if err == nil {
		t.Fatal("expected handler error to propagate through PublishSync")
	}
}

func TestInquiryCreatedIsLoggedOnly(t *testing.T) {
	bus, sender := newTestBus(t)

	err := bus.PublishSync(context.Background(), events.InquiryCreated{
		BaseEvent:    events.NewBaseEvent(),
		InquiryID:    uuid.New(),
		CustomerName: "Jane Doe",
		ProposalType: "instant",
		TotalCents:   25000,
	})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if len(sender.otps) != 0 || len(sender.statuses) != 0 {
		t.Error("inquiry created must not send email")
	}
}

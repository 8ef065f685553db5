// Package notification delivers email in response to domain events. It has
// no HTTP surface; it only subscribes to the event bus.
package notification

import (
	"context"

	"quotation_backend/internal/email"
	"quotation_backend/internal/events"
	"quotation_backend/platform/logger"
)

// Module wires event subscriptions to the email sender.
type Module struct {
	sender email.Sender
	log    *logger.Logger
}

// NewModule creates the notification module and registers its subscriptions
// on the bus.
func NewModule(bus events.Bus, sender email.Sender, log *logger.Logger) *Module {
	m := &Module{sender: sender, log: log}

	bus.Subscribe(events.AdminOTPRequested{}.EventName(), events.HandlerFunc(m.handleOTPRequested))
	bus.Subscribe(events.InquiryStatusChanged{}.EventName(), events.HandlerFunc(m.handleStatusChanged))
	bus.Subscribe(events.InquiryCreated{}.EventName(), events.HandlerFunc(m.handleInquiryCreated))

	return m
}

func (m *Module) handleOTPRequested(ctx context.Context, event events.Event) error {
	e, ok := event.(events.AdminOTPRequested)
	if !ok {
		return nil
	}

	if err := m.sender.SendAdminOTPEmail(ctx, e.Email, e.Code, e.ExpiryMinutes); err != nil {
		m.log.Error("send otp email", "email", e.Email, "error", err)
		return err
	}
	return nil
}

func (m *Module) handleStatusChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(events.InquiryStatusChanged)
	if !ok {
		return nil
	}

	if err := m.sender.SendStatusUpdateEmail(ctx, e.CustomerEmail, e.CustomerName, e.InquiryRef, e.NewStatus); err != nil {
		m.log.Error("send status update email",
			"inquiry_id", e.InquiryID,
			"new_status", e.NewStatus,
			"error", err,
		)
		return err
	}
	return nil
}

func (m *Module) handleInquiryCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.InquiryCreated)
	if !ok {
		return nil
	}

	m.log.Info("inquiry received",
		"inquiry_id", e.InquiryID,
		"proposal_type", e.ProposalType,
		"total_cents", e.TotalCents,
	)
	return nil
}

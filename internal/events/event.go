// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"quotation_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Inquiry Domain Events
// =============================================================================

// InquiryCreated is published when a customer submits the quotation form
// and the inquiry has been persisted.
type InquiryCreated struct {
	BaseEvent
	InquiryID     uuid.UUID `json:"inquiryId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	ProposalType  string    `json:"proposalType"`
	TotalCents    int64     `json:"totalCents"`
}

func (e InquiryCreated) EventName() string { return "inquiries.inquiry.created" }

// InquiryStatusChanged is published when an admin changes an inquiry's status.
type InquiryStatusChanged struct {
	BaseEvent
	InquiryID     uuid.UUID `json:"inquiryId"`
	InquiryRef    string    `json:"inquiryRef"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
}

func (e InquiryStatusChanged) EventName() string { return "inquiries.inquiry.status_changed" }

// =============================================================================
// Auth Domain Events
// =============================================================================

// AdminOTPRequested is published when an admin requests a login code.
// The code is sent to the admin by the notification module.
type AdminOTPRequested struct {
	BaseEvent
	AdminID       uuid.UUID `json:"adminId"`
	Email         string    `json:"email"`
	Code          string    `json:"code"`
	ExpiryMinutes int       `json:"expiryMinutes"`
}

func (e AdminOTPRequested) EventName() string { return "auth.admin.otp_requested" }

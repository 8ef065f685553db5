// Package repository provides PostgreSQL persistence for customer inquiries.
package repository

import (
	"context"

	"github.com/google/uuid"
)

// Inquiry statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Proposal types.
const (
	ProposalTypeInstant  = "instant"
	ProposalTypeTailored = "tailored"
)

// Inquiry is a submitted quotation request.
type Inquiry struct {
	ID               uuid.UUID
	Name             string
	Email            string
	Phone            string
	Country          string
	Message          *string
	Urgent           bool
	HasDocument      bool
	DocumentKey      *string
	DocumentName     *string
	ProposalType     string
	ProposalHTML     *string
	TotalAmountCents int64
	Status           string
	CreatedAt        string
	UpdatedAt        string
}

// InquiryLine is one selected service on an inquiry. Names are resolved
// against the live catalog at read time.
type InquiryLine struct {
	ID              uuid.UUID
	InquiryID       uuid.UUID
	ServiceID       uuid.UUID
	SubServiceID    uuid.UUID
	ServiceName     string
	SubServiceName  string
	Quantity        int64
	UnitPriceCents  int64
	TotalPriceCents int64
}

// CreateParams holds the fields for a new inquiry.
type CreateParams struct {
	Name             string
	Email            string
	Phone            string
	Country          string
	Message          *string
	Urgent           bool
	HasDocument      bool
	DocumentKey      *string
	DocumentName     *string
	ProposalType     string
	TotalAmountCents int64
}

// LineParams holds the fields for one inquiry service line.
type LineParams struct {
	InquiryID       uuid.UUID
	ServiceID       uuid.UUID
	SubServiceID    uuid.UUID
	Quantity        int64
	UnitPriceCents  int64
	TotalPriceCents int64
}

// ListParams holds filters, pagination, and sorting for inquiry lists.
type ListParams struct {
	Search    string
	Status    *string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// Stats aggregates the dashboard counters.
type Stats struct {
	Total             int64
	Pending           int64
	InProgress        int64
	Completed         int64
	Cancelled         int64
	TotalRevenueCents int64
}

// InquiryReader provides read access to inquiries.
type InquiryReader interface {
	Get(ctx context.Context, id uuid.UUID) (Inquiry, error)
	GetLines(ctx context.Context, inquiryID uuid.UUID) ([]InquiryLine, error)
	ListWithFilters(ctx context.Context, params ListParams) ([]Inquiry, int, error)
	GetStats(ctx context.Context) (Stats, error)
}

// InquiryWriter provides write access to inquiries.
type InquiryWriter interface {
	Create(ctx context.Context, params CreateParams) (uuid.UUID, error)
	AddLine(ctx context.Context, params LineParams) error
	StoreProposal(ctx context.Context, inquiryID uuid.UUID, proposalHTML string, totalCents int64) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Inquiry, error)
}

// Repository combines read and write access.
type Repository interface {
	InquiryReader
	InquiryWriter
}

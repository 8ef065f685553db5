package service

import (
	"context"

	"github.com/google/uuid"

	"quotation_backend/internal/adapters/storage"
	"quotation_backend/internal/quotation/domain"
)

// CatalogReader resolves live pricing for selected sub-services.
// Implemented by the catalog module through an adapter.
type CatalogReader interface {
	// Lookup returns the pricing info for an active sub-service.
	// ok is false when the pair does not exist or is inactive.
	Lookup(ctx context.Context, serviceID, subServiceID uuid.UUID) (item domain.CatalogItem, ok bool, err error)

	// Resolve builds a pricing catalog covering the given selections.
	// Selections that no longer resolve are simply absent from the result.
	Resolve(ctx context.Context, selections []domain.ServiceSelection) (domain.Catalog, error)
}

// CreateInquiryParams is the persisted inquiry record.
type CreateInquiryParams struct {
	Name             string
	Email            string
	Phone            string
	Country          string
	Message          string
	Urgent           bool
	HasDocument      bool
	DocumentKey      string
	DocumentName     string
	ProposalType     string
	TotalAmountCents int64
}

// InquiryLineParams is one persisted service line of an inquiry.
type InquiryLineParams struct {
	InquiryID       uuid.UUID
	ServiceID       uuid.UUID
	SubServiceID    uuid.UUID
	Quantity        int64
	UnitPriceCents  int64
	TotalPriceCents int64
}

// InquiryWriter persists submitted inquiries.
// Implemented by the inquiries module through an adapter.
type InquiryWriter interface {
	CreateInquiry(ctx context.Context, params CreateInquiryParams) (uuid.UUID, error)
	AddInquiryLine(ctx context.Context, params InquiryLineParams) error
	StoreProposal(ctx context.Context, inquiryID uuid.UUID, proposalHTML string, totalCents int64) error
}

// DocumentStorage is the subset of object storage the wizard needs.
type DocumentStorage interface {
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*storage.PresignedURL, error)
}

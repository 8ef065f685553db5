// Package inquirystore adapts the inquiries repository to the writer the
// quotation wizard uses at submission time.
package inquirystore

import (
	"context"

	"github.com/google/uuid"

	"quotation_backend/internal/events"
	inquiryrepo "quotation_backend/internal/inquiries/repository"
	quotationsvc "quotation_backend/internal/quotation/service"
)

// Adapter persists submitted inquiries and announces them on the event bus.
type Adapter struct {
	repo inquiryrepo.InquiryWriter
	bus  events.Bus
}

func New(repo inquiryrepo.InquiryWriter, bus events.Bus) *Adapter {
	return &Adapter{repo: repo, bus: bus}
}

var _ quotationsvc.InquiryWriter = (*Adapter)(nil)

func (a *Adapter) CreateInquiry(ctx context.Context, params quotationsvc.CreateInquiryParams) (uuid.UUID, error) {
	id, err := a.repo.Create(ctx, inquiryrepo.CreateParams{
		Name:             params.Name,
		Email:            params.Email,
		Phone:            params.Phone,
		Country:          params.Country,
		Message:          optional(params.Message),
		Urgent:           params.Urgent,
		HasDocument:      params.HasDocument,
		DocumentKey:      optional(params.DocumentKey),
		DocumentName:     optional(params.DocumentName),
		ProposalType:     params.ProposalType,
		TotalAmountCents: params.TotalAmountCents,
	})
	if err != nil {
		return uuid.Nil, err
	}

	a.bus.Publish(ctx, events.InquiryCreated{
		BaseEvent:     events.NewBaseEvent(),
		InquiryID:     id,
		CustomerName:  params.Name,
		CustomerEmail: params.Email,
		ProposalType:  params.ProposalType,
		TotalCents:    params.TotalAmountCents,
	})

	return id, nil
}

func (a *Adapter) AddInquiryLine(ctx context.Context, params quotationsvc.InquiryLineParams) error {
	return a.repo.AddLine(ctx, inquiryrepo.LineParams{
		InquiryID:       params.InquiryID,
		ServiceID:       params.ServiceID,
		SubServiceID:    params.SubServiceID,
		Quantity:        params.Quantity,
		UnitPriceCents:  params.UnitPriceCents,
		TotalPriceCents: params.TotalPriceCents,
	})
}

func (a *Adapter) StoreProposal(ctx context.Context, inquiryID uuid.UUID, proposalHTML string, totalCents int64) error {
	return a.repo.StoreProposal(ctx, inquiryID, proposalHTML, totalCents)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// Package transport defines request and response DTOs for the quotation wizard.
package transport

import (
	"github.com/google/uuid"

	"quotation_backend/internal/quotation/domain"
)

// PersonalInfoRequest is a partial update; only non-nil fields are applied.
type PersonalInfoRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Country *string `json:"country"`
	Message *string `json:"message"`
}

type ToggleServiceRequest struct {
	ServiceID    uuid.UUID `json:"serviceId" validate:"required"`
	SubServiceID uuid.UUID `json:"subServiceId" validate:"required"`
}

type SetQuantityRequest struct {
	ServiceID    uuid.UUID `json:"serviceId" validate:"required"`
	SubServiceID uuid.UUID `json:"subServiceId" validate:"required"`
	Quantity     int64     `json:"quantity" validate:"required,min=1"`
}

// OptionsRequest updates the final toggles; only non-nil fields are applied.
type OptionsRequest struct {
	Urgent      *bool `json:"urgent"`
	HasDocument *bool `json:"hasDocument"`
}

type UploadURLRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type RecordDocumentRequest struct {
	FileKey  string `json:"fileKey" validate:"required"`
	FileName string `json:"fileName" validate:"required"`
}

type SubmitRequest struct {
	Kind string `json:"kind" validate:"required,oneof=inquiry tailored instant"`
}

// PricingLineResponse is one selected service with its resolved price.
// Name and price fields are empty when the catalog entry has been removed;
// such lines contribute zero to the total.
type PricingLineResponse struct {
	ServiceID      uuid.UUID `json:"serviceId"`
	SubServiceID   uuid.UUID `json:"subServiceId"`
	ServiceName    string    `json:"serviceName"`
	SubServiceName string    `json:"subServiceName"`
	Quantity       *int64    `json:"quantity,omitempty"`
	Unit           *string   `json:"unit,omitempty"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	LineTotalCents int64     `json:"lineTotalCents"`
}

type PricingSummaryResponse struct {
	Lines           []PricingLineResponse `json:"lines"`
	UrgencyFeeCents int64                 `json:"urgencyFeeCents"`
	GrandTotalCents int64                 `json:"grandTotalCents"`
}

// SessionStateResponse is the full wizard state returned by every command.
type SessionStateResponse struct {
	ID               uuid.UUID               `json:"id"`
	Data             domain.CustomerFormData `json:"data"`
	CurrentStep      int                     `json:"currentStep"`
	ShowFinalOptions bool                    `json:"showFinalOptions"`
	Submitting       bool                    `json:"submitting"`
	ShowConfirmation bool                    `json:"showConfirmation"`
	FormErrors       map[string]string       `json:"formErrors"`
	Pricing          PricingSummaryResponse  `json:"pricing"`
	CreatedAt        string                  `json:"createdAt"`
	UpdatedAt        string                  `json:"updatedAt"`
}

type UploadURLResponse struct {
	URL       string `json:"url"`
	FileKey   string `json:"fileKey"`
	ExpiresAt string `json:"expiresAt"`
}

type SubmitResponse struct {
	InquiryID    uuid.UUID `json:"inquiryId"`
	InquiryRef   string    `json:"inquiryRef"`
	Status       string    `json:"status"`
	ProposalHTML string    `json:"proposalHtml,omitempty"`
	Warnings     []string  `json:"warnings,omitempty"`
}

// Package transport defines request and response DTOs for inquiry management.
package transport

import "github.com/google/uuid"

// ListInquiriesRequest contains query parameters for the admin inquiry list.
type ListInquiriesRequest struct {
	Search    string  `form:"search"`
	Status    *string `form:"status"`
	Page      int     `form:"page"`
	PageSize  int     `form:"pageSize"`
	SortBy    string  `form:"sortBy"`
	SortOrder string  `form:"sortOrder"`
}

// UpdateStatusRequest changes an inquiry's workflow status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// InquiryLineResponse is one service line in API responses.
type InquiryLineResponse struct {
	ID              uuid.UUID `json:"id"`
	ServiceID       uuid.UUID `json:"serviceId"`
	SubServiceID    uuid.UUID `json:"subServiceId"`
	ServiceName     string    `json:"serviceName"`
	SubServiceName  string    `json:"subServiceName"`
	Quantity        int64     `json:"quantity"`
	UnitPriceCents  int64     `json:"unitPriceCents"`
	TotalPriceCents int64     `json:"totalPriceCents"`
}

// InquiryResponse represents an inquiry in API responses.
type InquiryResponse struct {
	ID               uuid.UUID             `json:"id"`
	Reference        string                `json:"reference"`
	Name             string                `json:"name"`
	Email            string                `json:"email"`
	Phone            string                `json:"phone"`
	Country          string                `json:"country"`
	Message          *string               `json:"message,omitempty"`
	Urgent           bool                  `json:"urgent"`
	HasDocument      bool                  `json:"hasDocument"`
	DocumentName     *string               `json:"documentName,omitempty"`
	ProposalType     string                `json:"proposalType"`
	ProposalHTML     *string               `json:"proposalHtml,omitempty"`
	TotalAmountCents int64                 `json:"totalAmountCents"`
	Status           string                `json:"status"`
	CreatedAt        string                `json:"createdAt"`
	UpdatedAt        string                `json:"updatedAt"`
	Lines            []InquiryLineResponse `json:"lines,omitempty"`
}

// InquiryListResponse wraps a paginated list of inquiries.
type InquiryListResponse struct {
	Items      []InquiryResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// StatsResponse aggregates the dashboard counters.
type StatsResponse struct {
	Total             int64 `json:"total"`
	Pending           int64 `json:"pending"`
	InProgress        int64 `json:"inProgress"`
	Completed         int64 `json:"completed"`
	Cancelled         int64 `json:"cancelled"`
	TotalRevenueCents int64 `json:"totalRevenueCents"`
}

// DocumentURLResponse carries a presigned download link for an inquiry document.
type DocumentURLResponse struct {
	URL       string `json:"url"`
	FileName  string `json:"fileName"`
	ExpiresAt string `json:"expiresAt"`
}

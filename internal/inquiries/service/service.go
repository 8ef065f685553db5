// Package service implements inquiry management for the admin dashboard.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"quotation_backend/internal/adapters/storage"
	"quotation_backend/internal/events"
	"quotation_backend/internal/inquiries/repository"
	"quotation_backend/internal/inquiries/transport"
	"quotation_backend/platform/apperr"
	"quotation_backend/platform/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service orchestrates inquiry management operations.
type Service struct {
	repo    repository.Repository
	bus     events.Bus
	storage storage.Service
	bucket  string
	log     *logger.Logger
}

// New creates a new inquiries service. Storage may be nil; document download
// links are then unavailable.
func New(repo repository.Repository, bus events.Bus, storage storage.Service, bucket string, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		bus:     bus,
		storage: storage,
		bucket:  bucket,
		log:     log,
	}
}

// ListWithFilters returns a paginated, filtered inquiry list.
func (s *Service) ListWithFilters(ctx context.Context, req transport.ListInquiriesRequest) (transport.InquiryListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	if req.Status != nil {
		if err := validateStatus(*req.Status); err != nil {
			return transport.InquiryListResponse{}, err
		}
	}

	params := repository.ListParams{
		Search:    req.Search,
		Status:    req.Status,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToLower(req.SortOrder),
	}

	inquiries, total, err := s.repo.ListWithFilters(ctx, params)
	if err != nil {
		return transport.InquiryListResponse{}, err
	}

	items := make([]transport.InquiryResponse, 0, len(inquiries))
	for _, inquiry := range inquiries {
		items = append(items, toInquiryResponse(inquiry, nil))
	}

	totalPages := (total + pageSize - 1) / pageSize
	return transport.InquiryListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns one inquiry with its service lines.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.InquiryResponse, error) {
	inquiry, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.InquiryResponse{}, err
	}

	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		return transport.InquiryResponse{}, err
	}

	return toInquiryResponse(inquiry, lines), nil
}

// UpdateStatus moves an inquiry through the workflow and notifies listeners.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (transport.InquiryResponse, error) {
	if err := validateStatus(status); err != nil {
		return transport.InquiryResponse{}, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.InquiryResponse{}, err
	}
	if current.Status == status {
		return toInquiryResponse(current, nil), nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return transport.InquiryResponse{}, err
	}

	s.bus.Publish(ctx, events.InquiryStatusChanged{
		BaseEvent:     events.NewBaseEvent(),
		InquiryID:     updated.ID,
		InquiryRef:    inquiryRef(updated.ID),
		CustomerName:  updated.Name,
		CustomerEmail: updated.Email,
		OldStatus:     current.Status,
		NewStatus:     updated.Status,
	})

	s.log.Info("inquiry status updated",
		"inquiry_id", id,
		"old_status", current.Status,
		"new_status", status,
	)

	return toInquiryResponse(updated, nil), nil
}

// Stats returns the dashboard counters.
func (s *Service) Stats(ctx context.Context) (transport.StatsResponse, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return transport.StatsResponse{}, err
	}

	return transport.StatsResponse{
		Total:             stats.Total,
		Pending:           stats.Pending,
		InProgress:        stats.InProgress,
		Completed:         stats.Completed,
		Cancelled:         stats.Cancelled,
		TotalRevenueCents: stats.TotalRevenueCents,
	}, nil
}

// DocumentURL returns a presigned download link for the inquiry's document.
func (s *Service) DocumentURL(ctx context.Context, id uuid.UUID) (transport.DocumentURLResponse, error) {
	if s.storage == nil {
		return transport.DocumentURLResponse{}, apperr.Validation("document downloads are not available")
	}

	inquiry, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.DocumentURLResponse{}, err
	}
	if !inquiry.HasDocument || inquiry.DocumentKey == nil || *inquiry.DocumentKey == "" {
		return transport.DocumentURLResponse{}, apperr.NotFound("inquiry has no document")
	}

	presigned, err := s.storage.GenerateDownloadURL(ctx, s.bucket, *inquiry.DocumentKey)
	if err != nil {
		return transport.DocumentURLResponse{}, err
	}

	fileName := ""
	if inquiry.DocumentName != nil {
		fileName = *inquiry.DocumentName
	}

	return transport.DocumentURLResponse{
		URL:       presigned.URL,
		FileName:  fileName,
		ExpiresAt: presigned.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

func validateStatus(status string) error {
	switch status {
	case repository.StatusPending, repository.StatusInProgress, repository.StatusCompleted, repository.StatusCancelled:
		return nil
	}
	return apperr.Validation("invalid status")
}

func toInquiryResponse(inquiry repository.Inquiry, lines []repository.InquiryLine) transport.InquiryResponse {
	resp := transport.InquiryResponse{
		ID:               inquiry.ID,
		Reference:        inquiryRef(inquiry.ID),
		Name:             inquiry.Name,
		Email:            inquiry.Email,
		Phone:            inquiry.Phone,
		Country:          inquiry.Country,
		Message:          inquiry.Message,
		Urgent:           inquiry.Urgent,
		HasDocument:      inquiry.HasDocument,
		DocumentName:     inquiry.DocumentName,
		ProposalType:     inquiry.ProposalType,
		ProposalHTML:     inquiry.ProposalHTML,
		TotalAmountCents: inquiry.TotalAmountCents,
		Status:           inquiry.Status,
		CreatedAt:        inquiry.CreatedAt,
		UpdatedAt:        inquiry.UpdatedAt,
	}

	for _, line := range lines {
		resp.Lines = append(resp.Lines, transport.InquiryLineResponse{
			ID:              line.ID,
			ServiceID:       line.ServiceID,
			SubServiceID:    line.SubServiceID,
			ServiceName:     line.ServiceName,
			SubServiceName:  line.SubServiceName,
			Quantity:        line.Quantity,
			UnitPriceCents:  line.UnitPriceCents,
			TotalPriceCents: line.TotalPriceCents,
		})
	}

	return resp
}

// inquiryRef builds the short human-facing reference from an inquiry ID.
func inquiryRef(id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return "INQ-" + strings.ToUpper(hex[:8])
}

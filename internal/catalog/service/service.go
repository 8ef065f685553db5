package service

import (
	"context"

	"github.com/google/uuid"

	"quotation_backend/internal/catalog/repository"
	"quotation_backend/internal/catalog/transport"
	"quotation_backend/platform/logger"
)

// Service provides business logic for the service catalog.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListPublicCatalog retrieves active services with their active sub-services,
// ordered for the customer-facing wizard.
func (s *Service) ListPublicCatalog(ctx context.Context) ([]transport.ServiceResponse, error) {
	items, err := s.repo.ListActiveWithSubServices(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.ServiceResponse, len(items))
	for i, item := range items {
		responses[i] = toServiceResponse(item)
	}
	return responses, nil
}

// GetService retrieves a service with its sub-services.
func (s *Service) GetService(ctx context.Context, id uuid.UUID) (transport.ServiceResponse, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	subServices, err := s.repo.ListSubServices(ctx, id)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	svc.SubServices = subServices

	return toServiceResponse(svc), nil
}

// ListWithFilters retrieves services with search, filters, and pagination (admin).
func (s *Service) ListWithFilters(ctx context.Context, req transport.ListServicesRequest) (transport.ServiceListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	params := repository.ListParams{
		Search:    req.Search,
		Status:    req.Status,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	items, total, err := s.repo.ListWithFilters(ctx, params)
	if err != nil {
		return transport.ServiceListResponse{}, err
	}

	return toListResponseWithPagination(items, total, page, pageSize), nil
}

// CreateService creates a new service.
func (s *Service) CreateService(ctx context.Context, req transport.CreateServiceRequest) (transport.ServiceResponse, error) {
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}

	svc, err := s.repo.CreateService(ctx, repository.CreateServiceParams{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: displayOrder,
	})
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	s.log.Info("service created", "id", svc.ID, "name", svc.Name)
	return toServiceResponse(svc), nil
}

// UpdateService updates an existing service.
func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req transport.UpdateServiceRequest) (transport.ServiceResponse, error) {
	svc, err := s.repo.UpdateService(ctx, repository.UpdateServiceParams{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	s.log.Info("service updated", "id", svc.ID, "name", svc.Name)
	return toServiceResponse(svc), nil
}

// DeleteService removes or deactivates a service based on usage.
// Services referenced by submitted inquiries are deactivated so historical
// inquiry lines keep resolving; unreferenced services are removed outright.
func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) (transport.DeleteServiceResponse, error) {
	used, err := s.repo.HasInquiryReferences(ctx, id)
	if err != nil {
		return transport.DeleteServiceResponse{}, err
	}

	if used {
		if err := s.repo.SetServiceStatus(ctx, id, repository.StatusInactive); err != nil {
			return transport.DeleteServiceResponse{}, err
		}
		s.log.Info("service deactivated", "id", id)
		return transport.DeleteServiceResponse{Status: "deactivated"}, nil
	}

	if err := s.repo.DeleteService(ctx, id); err != nil {
		return transport.DeleteServiceResponse{}, err
	}

	s.log.Info("service deleted", "id", id)
	return transport.DeleteServiceResponse{Status: "deleted"}, nil
}

// ToggleServiceStatus flips a service between active and inactive.
func (s *Service) ToggleServiceStatus(ctx context.Context, id uuid.UUID) (transport.ServiceResponse, error) {
	svc, err := s.repo.GetService(ctx, id)
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	newStatus := repository.StatusActive
	if svc.Status == repository.StatusActive {
		newStatus = repository.StatusInactive
	}
	if err := s.repo.SetServiceStatus(ctx, id, newStatus); err != nil {
		return transport.ServiceResponse{}, err
	}

	svc, err = s.repo.GetService(ctx, id)
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	s.log.Info("service status toggled", "id", id, "status", newStatus)
	return toServiceResponse(svc), nil
}

// CreateSubService creates a new priced option under a service.
func (s *Service) CreateSubService(ctx context.Context, serviceID uuid.UUID, req transport.CreateSubServiceRequest) (transport.SubServiceResponse, error) {
	// Parent must exist before inserting the option row.
	if _, err := s.repo.GetService(ctx, serviceID); err != nil {
		return transport.SubServiceResponse{}, err
	}

	showPrice := true
	if req.ShowPrice != nil {
		showPrice = *req.ShowPrice
	}
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}

	ss, err := s.repo.CreateSubService(ctx, repository.CreateSubServiceParams{
		ServiceID:    serviceID,
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		Unit:         req.Unit,
		MinimumUnits: req.MinimumUnits,
		ShowPrice:    showPrice,
		DisplayOrder: displayOrder,
	})
	if err != nil {
		return transport.SubServiceResponse{}, err
	}

	s.log.Info("sub-service created", "id", ss.ID, "serviceId", serviceID, "name", ss.Name)
	return toSubServiceResponse(ss), nil
}

// UpdateSubService updates an existing priced option.
func (s *Service) UpdateSubService(ctx context.Context, id uuid.UUID, req transport.UpdateSubServiceRequest) (transport.SubServiceResponse, error) {
	ss, err := s.repo.UpdateSubService(ctx, repository.UpdateSubServiceParams{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		Unit:         req.Unit,
		MinimumUnits: req.MinimumUnits,
		ShowPrice:    req.ShowPrice,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return transport.SubServiceResponse{}, err
	}

	s.log.Info("sub-service updated", "id", ss.ID, "name", ss.Name)
	return toSubServiceResponse(ss), nil
}

// DeleteSubService removes a priced option.
func (s *Service) DeleteSubService(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteSubService(ctx, id); err != nil {
		return err
	}

	s.log.Info("sub-service deleted", "id", id)
	return nil
}

// ToggleSubServiceStatus flips a sub-service between active and inactive.
func (s *Service) ToggleSubServiceStatus(ctx context.Context, id uuid.UUID) (transport.SubServiceResponse, error) {
	ss, err := s.repo.GetSubService(ctx, id)
	if err != nil {
		return transport.SubServiceResponse{}, err
	}

	newStatus := repository.StatusActive
	if ss.Status == repository.StatusActive {
		newStatus = repository.StatusInactive
	}
	if err := s.repo.SetSubServiceStatus(ctx, id, newStatus); err != nil {
		return transport.SubServiceResponse{}, err
	}

	ss, err = s.repo.GetSubService(ctx, id)
	if err != nil {
		return transport.SubServiceResponse{}, err
	}

	s.log.Info("sub-service status toggled", "id", id, "status", newStatus)
	return toSubServiceResponse(ss), nil
}

// toServiceResponse converts a repository Service to transport response.
func toServiceResponse(svc repository.Service) transport.ServiceResponse {
	subServices := make([]transport.SubServiceResponse, len(svc.SubServices))
	for i, ss := range svc.SubServices {
		subServices[i] = toSubServiceResponse(ss)
	}

	return transport.ServiceResponse{
		ID:           svc.ID,
		Name:         svc.Name,
		Description:  svc.Description,
		Status:       svc.Status,
		DisplayOrder: svc.DisplayOrder,
		CreatedAt:    svc.CreatedAt,
		UpdatedAt:    svc.UpdatedAt,
		SubServices:  subServices,
	}
}

func toSubServiceResponse(ss repository.SubService) transport.SubServiceResponse {
	return transport.SubServiceResponse{
		ID:           ss.ID,
		ServiceID:    ss.ServiceID,
		Name:         ss.Name,
		Description:  ss.Description,
		PriceCents:   ss.PriceCents,
		Unit:         ss.Unit,
		MinimumUnits: ss.MinimumUnits,
		ShowPrice:    ss.ShowPrice,
		Status:       ss.Status,
		DisplayOrder: ss.DisplayOrder,
		CreatedAt:    ss.CreatedAt,
		UpdatedAt:    ss.UpdatedAt,
	}
}

func toListResponseWithPagination(items []repository.Service, total int, page int, pageSize int) transport.ServiceListResponse {
	responses := make([]transport.ServiceResponse, len(items))
	for i, item := range items {
		responses[i] = toServiceResponse(item)
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return transport.ServiceListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

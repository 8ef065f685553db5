package transport

import "github.com/google/uuid"

// CreateServiceRequest contains data for creating a new service.
type CreateServiceRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	DisplayOrder *int    `json:"displayOrder,omitempty" validate:"omitempty,min=0"`
}

// UpdateServiceRequest contains data for updating an existing service.
type UpdateServiceRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	DisplayOrder *int    `json:"displayOrder,omitempty" validate:"omitempty,min=0"`
}

// CreateSubServiceRequest contains data for creating a priced option.
type CreateSubServiceRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	PriceCents   int64   `json:"priceCents" validate:"min=0"`
	Unit         *string `json:"unit,omitempty" validate:"omitempty,max=50"`
	MinimumUnits *int64  `json:"minimumUnits,omitempty" validate:"omitempty,min=1"`
	ShowPrice    *bool   `json:"showPrice,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty" validate:"omitempty,min=0"`
}

// UpdateSubServiceRequest contains data for updating a priced option.
type UpdateSubServiceRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	PriceCents   *int64  `json:"priceCents,omitempty" validate:"omitempty,min=0"`
	Unit         *string `json:"unit,omitempty" validate:"omitempty,max=50"`
	MinimumUnits *int64  `json:"minimumUnits,omitempty" validate:"omitempty,min=1"`
	ShowPrice    *bool   `json:"showPrice,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty" validate:"omitempty,min=0"`
}

// ListServicesRequest contains query parameters for the admin services list.
type ListServicesRequest struct {
	Search    string  `form:"search"`
	Status    *string `form:"status"`
	Page      int     `form:"page"`
	PageSize  int     `form:"pageSize"`
	SortBy    string  `form:"sortBy"`
	SortOrder string  `form:"sortOrder"`
}

// SubServiceResponse represents a priced option in API responses.
type SubServiceResponse struct {
	ID           uuid.UUID `json:"id"`
	ServiceID    uuid.UUID `json:"serviceId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	PriceCents   int64     `json:"priceCents"`
	Unit         *string   `json:"unit,omitempty"`
	MinimumUnits *int64    `json:"minimumUnits,omitempty"`
	ShowPrice    bool      `json:"showPrice"`
	Status       string    `json:"status"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

// ServiceResponse represents a service in API responses.
type ServiceResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Description  *string              `json:"description,omitempty"`
	Status       string               `json:"status"`
	DisplayOrder int                  `json:"displayOrder"`
	CreatedAt    string               `json:"createdAt"`
	UpdatedAt    string               `json:"updatedAt"`
	SubServices  []SubServiceResponse `json:"subServices,omitempty"`
}

// ServiceListResponse wraps a paginated list of services.
type ServiceListResponse struct {
	Items      []ServiceResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// DeleteServiceResponse reports whether a service was deleted or deactivated.
type DeleteServiceResponse struct {
	Status string `json:"status"`
}

package repository

import (
	"context"

	"github.com/google/uuid"
)

// Service represents a top-level service category in the catalog.
type Service struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Description  *string   `db:"description"`
	Status       string    `db:"status"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    string    `db:"created_at"`
	UpdatedAt    string    `db:"updated_at"`

	// SubServices is populated by queries that join the option rows.
	SubServices []SubService `db:"-"`
}

// SubService represents a priced option belonging to a service.
type SubService struct {
	ID           uuid.UUID `db:"id"`
	ServiceID    uuid.UUID `db:"service_id"`
	Name         string    `db:"name"`
	Description  *string   `db:"description"`
	PriceCents   int64     `db:"price_cents"`
	Unit         *string   `db:"unit"`
	MinimumUnits *int64    `db:"minimum_units"`
	ShowPrice    bool      `db:"show_price"`
	Status       string    `db:"status"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    string    `db:"created_at"`
	UpdatedAt    string    `db:"updated_at"`
}

// Service status values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// CreateServiceParams contains parameters for creating a service.
type CreateServiceParams struct {
	Name         string
	Description  *string
	DisplayOrder int
}

// UpdateServiceParams contains parameters for updating a service.
type UpdateServiceParams struct {
	ID           uuid.UUID
	Name         *string
	Description  *string
	DisplayOrder *int
}

// CreateSubServiceParams contains parameters for creating a sub-service.
type CreateSubServiceParams struct {
	ServiceID    uuid.UUID
	Name         string
	Description  *string
	PriceCents   int64
	Unit         *string
	MinimumUnits *int64
	ShowPrice    bool
	DisplayOrder int
}

// UpdateSubServiceParams contains parameters for updating a sub-service.
type UpdateSubServiceParams struct {
	ID           uuid.UUID
	Name         *string
	Description  *string
	PriceCents   *int64
	Unit         *string
	MinimumUnits *int64
	ShowPrice    *bool
	DisplayOrder *int
}

// ListParams contains filters for the admin services list.
type ListParams struct {
	Search    string
	Status    *string
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// ServiceReader provides read operations for the catalog.
type ServiceReader interface {
	GetService(ctx context.Context, id uuid.UUID) (Service, error)
	GetSubService(ctx context.Context, id uuid.UUID) (SubService, error)
	ListActiveWithSubServices(ctx context.Context) ([]Service, error)
	ListWithFilters(ctx context.Context, params ListParams) ([]Service, int, error)
	ListSubServices(ctx context.Context, serviceID uuid.UUID) ([]SubService, error)
	HasInquiryReferences(ctx context.Context, serviceID uuid.UUID) (bool, error)
}

// ServiceWriter provides write operations for the catalog.
type ServiceWriter interface {
	CreateService(ctx context.Context, params CreateServiceParams) (Service, error)
	UpdateService(ctx context.Context, params UpdateServiceParams) (Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	SetServiceStatus(ctx context.Context, id uuid.UUID, status string) error
	CreateSubService(ctx context.Context, params CreateSubServiceParams) (SubService, error)
	UpdateSubService(ctx context.Context, params UpdateSubServiceParams) (SubService, error)
	DeleteSubService(ctx context.Context, id uuid.UUID) error
	SetSubServiceStatus(ctx context.Context, id uuid.UUID, status string) error
}

// Repository combines all catalog repository operations.
type Repository interface {
	ServiceReader
	ServiceWriter
}

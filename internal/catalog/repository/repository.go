package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quotation_backend/platform/apperr"
)

const (
	serviceNotFoundMessage    = "service not found"
	subServiceNotFoundMessage = "sub-service not found"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetService retrieves a service by its ID.
func (r *Repo) GetService(ctx context.Context, id uuid.UUID) (Service, error) {
	query := `
		SELECT id, name, description, status, display_order, created_at, updated_at
		FROM services
		WHERE id = $1`

	var svc Service
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&svc.ID, &svc.Name, &svc.Description, &svc.Status, &svc.DisplayOrder, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Service{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return Service{}, fmt.Errorf("get service by id: %w", err)
	}

	svc.CreatedAt = createdAt.Format(time.RFC3339)
	svc.UpdatedAt = updatedAt.Format(time.RFC3339)

	return svc, nil
}

// GetSubService retrieves a sub-service by its ID.
func (r *Repo) GetSubService(ctx context.Context, id uuid.UUID) (SubService, error) {
	query := `
		SELECT id, service_id, name, description, price_cents, unit, minimum_units, show_price, status, display_order, created_at, updated_at
		FROM sub_services
		WHERE id = $1`

	return r.scanSubServiceRow(r.pool.QueryRow(ctx, query, id))
}

// ListActiveWithSubServices retrieves all active services with their active
// sub-services nested, both ordered by display_order. This is the public
// catalog shown to customers on the wizard's service step.
func (r *Repo) ListActiveWithSubServices(ctx context.Context) ([]Service, error) {
	query := `
		SELECT id, name, description, status, display_order, created_at, updated_at
		FROM services
		WHERE status = 'active'
		ORDER BY display_order ASC, name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active services: %w", err)
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return services, nil
	}

	subQuery := `
		SELECT ss.id, ss.service_id, ss.name, ss.description, ss.price_cents, ss.unit, ss.minimum_units, ss.show_price, ss.status, ss.display_order, ss.created_at, ss.updated_at
		FROM sub_services ss
		JOIN services s ON s.id = ss.service_id
		WHERE s.status = 'active' AND ss.status = 'active'
		ORDER BY ss.display_order ASC, ss.name ASC`

	subRows, err := r.pool.Query(ctx, subQuery)
	if err != nil {
		return nil, fmt.Errorf("list active sub-services: %w", err)
	}
	defer subRows.Close()

	subServices, err := scanSubServices(subRows)
	if err != nil {
		return nil, err
	}

	byService := make(map[uuid.UUID][]SubService, len(services))
	for _, ss := range subServices {
		byService[ss.ServiceID] = append(byService[ss.ServiceID], ss)
	}
	for i := range services {
		services[i].SubServices = byService[services[i].ID]
	}

	return services, nil
}

// ListWithFilters retrieves services with search, status filter, pagination, and sorting.
func (r *Repo) ListWithFilters(ctx context.Context, params ListParams) ([]Service, int, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}
	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	sortBy := "displayOrder"
	if params.SortBy != "" {
		switch params.SortBy {
		case "name", "status", "displayOrder", "createdAt", "updatedAt":
			sortBy = params.SortBy
		default:
			return nil, 0, apperr.BadRequest("invalid sort field")
		}
	}

	sortOrder := "asc"
	if params.SortOrder != "" {
		switch params.SortOrder {
		case "asc", "desc":
			sortOrder = params.SortOrder
		default:
			return nil, 0, apperr.BadRequest("invalid sort order")
		}
	}

	args := []interface{}{searchParam, statusParam}

	countQuery := `
		SELECT COUNT(*)
		FROM services
		WHERE ($1::text IS NULL OR name ILIKE $1)
			AND ($2::text IS NULL OR status = $2)
	`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	query := `
		SELECT id, name, description, status, display_order, created_at, updated_at
		FROM services
		WHERE ($1::text IS NULL OR name ILIKE $1)
			AND ($2::text IS NULL OR status = $2)
		ORDER BY
			CASE WHEN $3 = 'name' AND $4 = 'asc' THEN name END ASC,
			CASE WHEN $3 = 'name' AND $4 = 'desc' THEN name END DESC,
			CASE WHEN $3 = 'status' AND $4 = 'asc' THEN status END ASC,
			CASE WHEN $3 = 'status' AND $4 = 'desc' THEN status END DESC,
			CASE WHEN $3 = 'displayOrder' AND $4 = 'asc' THEN display_order END ASC,
			CASE WHEN $3 = 'displayOrder' AND $4 = 'desc' THEN display_order END DESC,
			CASE WHEN $3 = 'createdAt' AND $4 = 'asc' THEN created_at END ASC,
			CASE WHEN $3 = 'createdAt' AND $4 = 'desc' THEN created_at END DESC,
			CASE WHEN $3 = 'updatedAt' AND $4 = 'asc' THEN updated_at END ASC,
			CASE WHEN $3 = 'updatedAt' AND $4 = 'desc' THEN updated_at END DESC,
			display_order ASC
		LIMIT $5 OFFSET $6
	`

	args = append(args, sortBy, sortOrder, params.Limit, params.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	items, err := scanServices(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListSubServices retrieves all sub-services of a service ordered by display_order.
func (r *Repo) ListSubServices(ctx context.Context, serviceID uuid.UUID) ([]SubService, error) {
	query := `
		SELECT id, service_id, name, description, price_cents, unit, minimum_units, show_price, status, display_order, created_at, updated_at
		FROM sub_services
		WHERE service_id = $1
		ORDER BY display_order ASC, name ASC`

	rows, err := r.pool.Query(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list sub-services: %w", err)
	}
	defer rows.Close()

	return scanSubServices(rows)
}

// HasInquiryReferences checks if a service is referenced by submitted inquiries.
func (r *Repo) HasInquiryReferences(ctx context.Context, serviceID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customer_inquiry_services WHERE service_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, serviceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check service inquiry references: %w", err)
	}

	return exists, nil
}

// CreateService creates a new service.
func (r *Repo) CreateService(ctx context.Context, params CreateServiceParams) (Service, error) {
	query := `
		INSERT INTO services (name, description, display_order)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, status, display_order, created_at, updated_at`

	var svc Service
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query,
		params.Name, params.Description, params.DisplayOrder,
	).Scan(
		&svc.ID, &svc.Name, &svc.Description, &svc.Status, &svc.DisplayOrder, &createdAt, &updatedAt,
	)
	if err != nil {
		return Service{}, fmt.Errorf("create service: %w", err)
	}

	svc.CreatedAt = createdAt.Format(time.RFC3339)
	svc.UpdatedAt = updatedAt.Format(time.RFC3339)

	return svc, nil
}

// UpdateService updates an existing service.
func (r *Repo) UpdateService(ctx context.Context, params UpdateServiceParams) (Service, error) {
	query := `
		UPDATE services SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			display_order = COALESCE($4, display_order),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, status, display_order, created_at, updated_at`

	var svc Service
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Description, params.DisplayOrder,
	).Scan(
		&svc.ID, &svc.Name, &svc.Description, &svc.Status, &svc.DisplayOrder, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Service{}, apperr.NotFound(serviceNotFoundMessage)
		}
		return Service{}, fmt.Errorf("update service: %w", err)
	}

	svc.CreatedAt = createdAt.Format(time.RFC3339)
	svc.UpdatedAt = updatedAt.Format(time.RFC3339)

	return svc, nil
}

// DeleteService removes a service and its sub-services (hard delete).
// Use SetServiceStatus for soft delete when inquiries reference it.
func (r *Repo) DeleteService(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM services WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(serviceNotFoundMessage)
	}

	return nil
}

// SetServiceStatus sets the status for a service.
func (r *Repo) SetServiceStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE services SET status = $2, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set service status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(serviceNotFoundMessage)
	}

	return nil
}

// CreateSubService creates a new sub-service.
func (r *Repo) CreateSubService(ctx context.Context, params CreateSubServiceParams) (SubService, error) {
	query := `
		INSERT INTO sub_services (service_id, name, description, price_cents, unit, minimum_units, show_price, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, service_id, name, description, price_cents, unit, minimum_units, show_price, status, display_order, created_at, updated_at`

	return r.scanSubServiceRow(r.pool.QueryRow(ctx, query,
		params.ServiceID, params.Name, params.Description, params.PriceCents,
		params.Unit, params.MinimumUnits, params.ShowPrice, params.DisplayOrder,
	))
}

// UpdateSubService updates an existing sub-service.
func (r *Repo) UpdateSubService(ctx context.Context, params UpdateSubServiceParams) (SubService, error) {
	query := `
		UPDATE sub_services SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price_cents = COALESCE($4, price_cents),
			unit = COALESCE($5, unit),
			minimum_units = COALESCE($6, minimum_units),
			show_price = COALESCE($7, show_price),
			display_order = COALESCE($8, display_order),
			updated_at = now()
		WHERE id = $1
		RETURNING id, service_id, name, description, price_cents, unit, minimum_units, show_price, status, display_order, created_at, updated_at`

	return r.scanSubServiceRow(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Description, params.PriceCents,
		params.Unit, params.MinimumUnits, params.ShowPrice, params.DisplayOrder,
	))
}

// DeleteSubService removes a sub-service by ID.
func (r *Repo) DeleteSubService(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sub_services WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete sub-service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(subServiceNotFoundMessage)
	}

	return nil
}

// SetSubServiceStatus sets the status for a sub-service.
func (r *Repo) SetSubServiceStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE sub_services SET status = $2, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set sub-service status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(subServiceNotFoundMessage)
	}

	return nil
}

func (r *Repo) scanSubServiceRow(row pgx.Row) (SubService, error) {
	var ss SubService
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&ss.ID, &ss.ServiceID, &ss.Name, &ss.Description, &ss.PriceCents, &ss.Unit,
		&ss.MinimumUnits, &ss.ShowPrice, &ss.Status, &ss.DisplayOrder, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SubService{}, apperr.NotFound(subServiceNotFoundMessage)
		}
		return SubService{}, fmt.Errorf("scan sub-service: %w", err)
	}

	ss.CreatedAt = createdAt.Format(time.RFC3339)
	ss.UpdatedAt = updatedAt.Format(time.RFC3339)

	return ss, nil
}

// scanServices is a helper to scan multiple rows into a Service slice.
func scanServices(rows pgx.Rows) ([]Service, error) {
	var results []Service

	for rows.Next() {
		var svc Service
		var createdAt, updatedAt time.Time

		err := rows.Scan(
			&svc.ID, &svc.Name, &svc.Description, &svc.Status, &svc.DisplayOrder, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}

		svc.CreatedAt = createdAt.Format(time.RFC3339)
		svc.UpdatedAt = updatedAt.Format(time.RFC3339)

		results = append(results, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return results, nil
}

// scanSubServices is a helper to scan multiple rows into a SubService slice.
func scanSubServices(rows pgx.Rows) ([]SubService, error) {
	var results []SubService

	for rows.Next() {
		var ss SubService
		var createdAt, updatedAt time.Time

		err := rows.Scan(
			&ss.ID, &ss.ServiceID, &ss.Name, &ss.Description, &ss.PriceCents, &ss.Unit,
			&ss.MinimumUnits, &ss.ShowPrice, &ss.Status, &ss.DisplayOrder, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sub-service: %w", err)
		}

		ss.CreatedAt = createdAt.Format(time.RFC3339)
		ss.UpdatedAt = updatedAt.Format(time.RFC3339)

		results = append(results, ss)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sub-services: %w", err)
	}

	return results, nil
}

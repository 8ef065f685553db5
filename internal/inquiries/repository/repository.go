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

const inquiryNotFoundMessage = "inquiry not found"

const inquiryColumns = `
	id, name, email, phone, country, message, urgent, has_document,
	document_key, document_name, proposal_type, proposal_html,
	total_amount_cents, status, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inquiries repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create persists a new inquiry and returns its ID.
func (r *Repo) Create(ctx context.Context, params CreateParams) (uuid.UUID, error) {
	query := `
		INSERT INTO customer_inquiries (
			name, email, phone, country, message, urgent, has_document,
			document_key, document_name, proposal_type, total_amount_cents
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		params.Name, params.Email, params.Phone, params.Country, params.Message,
		params.Urgent, params.HasDocument, params.DocumentKey, params.DocumentName,
		params.ProposalType, params.TotalAmountCents,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create inquiry: %w", err)
	}

	return id, nil
}

// AddLine persists one service line for an inquiry.
func (r *Repo) AddLine(ctx context.Context, params LineParams) error {
	query := `
		INSERT INTO customer_inquiry_services (
			inquiry_id, service_id, sub_service_id, quantity, unit_price_cents, total_price_cents
		)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		params.InquiryID, params.ServiceID, params.SubServiceID,
		params.Quantity, params.UnitPriceCents, params.TotalPriceCents,
	)
	if err != nil {
		return fmt.Errorf("add inquiry line: %w", err)
	}
	return nil
}

// StoreProposal attaches a generated proposal to an inquiry.
func (r *Repo) StoreProposal(ctx context.Context, inquiryID uuid.UUID, proposalHTML string, totalCents int64) error {
	query := `
		UPDATE customer_inquiries
		SET proposal_html = $2, total_amount_cents = $3, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, inquiryID, proposalHTML, totalCents)
	if err != nil {
		return fmt.Errorf("store proposal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(inquiryNotFoundMessage)
	}
	return nil
}

// Get retrieves an inquiry by its ID.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM customer_inquiries WHERE id = $1`
	return scanInquiryRow(r.pool.QueryRow(ctx, query, id))
}

// GetLines retrieves the service lines of an inquiry with names resolved
// against the catalog.
func (r *Repo) GetLines(ctx context.Context, inquiryID uuid.UUID) ([]InquiryLine, error) {
	query := `
		SELECT cis.id, cis.inquiry_id, cis.service_id, cis.sub_service_id,
			COALESCE(s.name, ''), COALESCE(ss.name, ''),
			cis.quantity, cis.unit_price_cents, cis.total_price_cents
		FROM customer_inquiry_services cis
		LEFT JOIN services s ON s.id = cis.service_id
		LEFT JOIN sub_services ss ON ss.id = cis.sub_service_id
		WHERE cis.inquiry_id = $1
		ORDER BY cis.created_at ASC`

	rows, err := r.pool.Query(ctx, query, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("get inquiry lines: %w", err)
	}
	defer rows.Close()

	lines := []InquiryLine{}
	for rows.Next() {
		var line InquiryLine
		if err := rows.Scan(
			&line.ID, &line.InquiryID, &line.ServiceID, &line.SubServiceID,
			&line.ServiceName, &line.SubServiceName,
			&line.Quantity, &line.UnitPriceCents, &line.TotalPriceCents,
		); err != nil {
			return nil, fmt.Errorf("scan inquiry line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiry lines: %w", err)
	}

	return lines, nil
}

// ListWithFilters retrieves inquiries with search, status filter, pagination,
// and sorting.
func (r *Repo) ListWithFilters(ctx context.Context, params ListParams) ([]Inquiry, int, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}
	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	countQuery := `
		SELECT COUNT(*)
		FROM customer_inquiries
		WHERE ($1::text IS NULL OR name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1 OR country ILIKE $1)
		  AND ($2::text IS NULL OR status = $2)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, searchParam, statusParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}

	query := `
		SELECT ` + inquiryColumns + `
		FROM customer_inquiries
		WHERE ($1::text IS NULL OR name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1 OR country ILIKE $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY
			CASE WHEN $3 = 'name' AND $4 = 'asc' THEN name END ASC,
			CASE WHEN $3 = 'name' AND $4 = 'desc' THEN name END DESC,
			CASE WHEN $3 = 'status' AND $4 = 'asc' THEN status END ASC,
			CASE WHEN $3 = 'status' AND $4 = 'desc' THEN status END DESC,
			CASE WHEN $3 = 'totalAmount' AND $4 = 'asc' THEN total_amount_cents END ASC,
			CASE WHEN $3 = 'totalAmount' AND $4 = 'desc' THEN total_amount_cents END DESC,
			CASE WHEN $3 = 'updatedAt' AND $4 = 'asc' THEN updated_at END ASC,
			CASE WHEN $3 = 'updatedAt' AND $4 = 'desc' THEN updated_at END DESC,
			CASE WHEN $3 = 'createdAt' AND $4 = 'asc' THEN created_at END ASC,
			created_at DESC
		LIMIT $5 OFFSET $6`

	rows, err := r.pool.Query(ctx, query,
		searchParam, statusParam, params.SortBy, params.SortOrder, params.Limit, params.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []Inquiry{}
	for rows.Next() {
		inquiry, err := scanInquiryRow(rows)
		if err != nil {
			return nil, 0, err
		}
		inquiries = append(inquiries, inquiry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate inquiries: %w", err)
	}

	return inquiries, total, nil
}

// UpdateStatus changes an inquiry's status and returns the updated record.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Inquiry, error) {
	query := `
		UPDATE customer_inquiries
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + inquiryColumns

	return scanInquiryRow(r.pool.QueryRow(ctx, query, id, status))
}

// GetStats aggregates the dashboard counters. Revenue counts completed
// inquiries only.
func (r *Repo) GetStats(ctx context.Context) (Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(total_amount_cents) FILTER (WHERE status = 'completed'), 0)
		FROM customer_inquiries`

	var stats Stats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Pending, &stats.InProgress,
		&stats.Completed, &stats.Cancelled, &stats.TotalRevenueCents,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("get inquiry stats: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInquiryRow(row rowScanner) (Inquiry, error) {
	var inquiry Inquiry
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&inquiry.ID, &inquiry.Name, &inquiry.Email, &inquiry.Phone, &inquiry.Country,
		&inquiry.Message, &inquiry.Urgent, &inquiry.HasDocument,
		&inquiry.DocumentKey, &inquiry.DocumentName, &inquiry.ProposalType, &inquiry.ProposalHTML,
		&inquiry.TotalAmountCents, &inquiry.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Inquiry{}, apperr.NotFound(inquiryNotFoundMessage)
		}
		return Inquiry{}, fmt.Errorf("scan inquiry: %w", err)
	}

	inquiry.CreatedAt = createdAt.Format(time.RFC3339)
	inquiry.UpdatedAt = updatedAt.Format(time.RFC3339)

	return inquiry, nil
}

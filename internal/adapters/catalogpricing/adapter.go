// Package catalogpricing adapts the catalog repository to the pricing lookup
// the quotation wizard needs. Only active services and sub-services resolve.
package catalogpricing

import (
	"context"

	"github.com/google/uuid"

	catalogrepo "quotation_backend/internal/catalog/repository"
	"quotation_backend/internal/quotation/domain"
	quotationsvc "quotation_backend/internal/quotation/service"
	"quotation_backend/platform/apperr"
)

// Adapter resolves wizard selections against the live catalog.
type Adapter struct {
	repo catalogrepo.ServiceReader
}

func New(repo catalogrepo.ServiceReader) *Adapter {
	return &Adapter{repo: repo}
}

var _ quotationsvc.CatalogReader = (*Adapter)(nil)

// Lookup returns the pricing info for an active (service, sub-service) pair.
// ok is false when the pair does not exist, is mismatched, or is inactive.
func (a *Adapter) Lookup(ctx context.Context, serviceID, subServiceID uuid.UUID) (domain.CatalogItem, bool, error) {
	sub, err := a.repo.GetSubService(ctx, subServiceID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return domain.CatalogItem{}, false, nil
		}
		return domain.CatalogItem{}, false, err
	}
	if sub.ServiceID != serviceID || sub.Status != catalogrepo.StatusActive {
		return domain.CatalogItem{}, false, nil
	}

	svc, err := a.repo.GetService(ctx, serviceID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return domain.CatalogItem{}, false, nil
		}
		return domain.CatalogItem{}, false, err
	}
	if svc.Status != catalogrepo.StatusActive {
		return domain.CatalogItem{}, false, nil
	}

	return domain.CatalogItem{
		ServiceName:    svc.Name,
		SubServiceName: sub.Name,
		PriceCents:     sub.PriceCents,
		Unit:           sub.Unit,
		MinimumUnits:   sub.MinimumUnits,
	}, true, nil
}

// Resolve builds a pricing catalog covering the given selections. Selections
// that no longer resolve are absent from the result; the pricing rules treat
// them as zero.
func (a *Adapter) Resolve(ctx context.Context, selections []domain.ServiceSelection) (domain.Catalog, error) {
	catalog := domain.Catalog{}
	for _, sel := range selections {
		if _, ok := catalog[sel.SubServiceID]; ok {
			continue
		}

		item, ok, err := a.Lookup(ctx, sel.ServiceID, sel.SubServiceID)
		if err != nil {
			return nil, err
		}
		if ok {
			catalog[sel.SubServiceID] = item
		}
	}
	return catalog, nil
}

package domain

import "github.com/google/uuid"

// UrgencyFeeCents is the flat surcharge for urgent delivery ($25.00).
const UrgencyFeeCents int64 = 2500

// CatalogItem is the pricing view of a sub-service, resolved from the live
// catalog at calculation time.
type CatalogItem struct {
	ServiceName    string
	SubServiceName string
	PriceCents     int64
	// Unit is nil for flat-rate options (one fixed price regardless of volume).
	Unit *string
	// MinimumUnits is the smallest quantity that can be ordered, if any.
	MinimumUnits *int64
}

// Catalog maps sub-service IDs to their pricing info.
type Catalog map[uuid.UUID]CatalogItem

// FlatRate reports whether the item has one fixed price (no unit).
func (i CatalogItem) FlatRate() bool {
	return i.Unit == nil
}

// EffectiveQuantity clamps a requested quantity to the item's minimum.
func (i CatalogItem) EffectiveQuantity(requested int64) int64 {
	if i.MinimumUnits != nil && requested < *i.MinimumUnits {
		return *i.MinimumUnits
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// LineTotalCents computes the price of one selection. A selection whose
// sub-service is missing from the catalog contributes zero; totals stay
// computable even when an admin removes a catalog entry mid-session.
func LineTotalCents(sel ServiceSelection, catalog Catalog) int64 {
	item, ok := catalog[sel.SubServiceID]
	if !ok {
		return 0
	}

	if !item.FlatRate() && sel.Quantity != nil {
		return item.PriceCents * *sel.Quantity
	}
	return item.PriceCents
}

// GrandTotalCents sums all line totals and adds the urgency surcharge
// when urgent delivery is requested.
func GrandTotalCents(selections []ServiceSelection, catalog Catalog, urgent bool) int64 {
	var total int64
	for _, sel := range selections {
		total += LineTotalCents(sel, catalog)
	}
	if urgent {
		total += UrgencyFeeCents
	}
	return total
}

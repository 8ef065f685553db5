package domain

import (
	"testing"

	"github.com/google/uuid"
)

func ptrInt64(v int64) *int64   { return &v }
func ptrString(v string) *string { return &v }

func TestLineTotalCents(t *testing.T) {
	perPageID := uuid.New()
	flatID := uuid.New()

	catalog := Catalog{
		perPageID: {
			ServiceName:    "Translation",
			SubServiceName: "Certified translation",
			PriceCents:     5000,
			Unit:           ptrString("page"),
			MinimumUnits:   ptrInt64(1),
		},
		flatID: {
			ServiceName:    "Legalization",
			SubServiceName: "Apostille",
			PriceCents:     10000,
		},
	}

	tests := []struct {
		name string
		sel  ServiceSelection
		want int64
	}{
		{
			name: "per-unit price times quantity",
			sel:  ServiceSelection{SubServiceID: perPageID, Quantity: ptrInt64(2)},
			want: 10000,
		},
		{
			name: "flat rate ignores quantity",
			sel:  ServiceSelection{SubServiceID: flatID, Quantity: ptrInt64(3)},
			want: 10000,
		},
		{
			name: "per-unit without quantity falls back to base price",
			sel:  ServiceSelection{SubServiceID: perPageID},
			want: 5000,
		},
		{
			name: "unknown sub-service contributes zero",
			sel:  ServiceSelection{SubServiceID: uuid.New(), Quantity: ptrInt64(4)},
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LineTotalCents(tc.sel, catalog); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestGrandTotalCents(t *testing.T) {
	perPageID := uuid.New()
	flatID := uuid.New()

	catalog := Catalog{
		perPageID: {PriceCents: 5000, Unit: ptrString("page")},
		flatID:    {PriceCents: 10000},
	}

	selections := []ServiceSelection{
		{SubServiceID: flatID},
		{SubServiceID: perPageID, Quantity: ptrInt64(2)},
	}

	// $100 flat + $50 x 2 pages = $200.00
	if got := GrandTotalCents(selections, catalog, false); got != 20000 {
		t.Errorf("expected 20000, got %d", got)
	}

	// Urgent adds the flat $25 surcharge.
	if got := GrandTotalCents(selections, catalog, true); got != 22500 {
		t.Errorf("expected 22500, got %d", got)
	}
}

func TestGrandTotalCents_EmptySelection(t *testing.T) {
	if got := GrandTotalCents(nil, Catalog{}, false); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := GrandTotalCents(nil, Catalog{}, true); got != UrgencyFeeCents {
		t.Errorf("expected %d, got %d", UrgencyFeeCents, got)
	}
}

func TestEffectiveQuantity(t *testing.T) {
	item := CatalogItem{PriceCents: 5000, Unit: ptrString("page"), MinimumUnits: ptrInt64(3)}

	tests := []struct {
		name      string
		requested int64
		want      int64
	}{
		{"below minimum clamps up", 1, 3},
		{"at minimum unchanged", 3, 3},
		{"above minimum unchanged", 7, 7},
		{"zero clamps to minimum", 0, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := item.EffectiveQuantity(tc.requested); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}

	noMin := CatalogItem{PriceCents: 5000, Unit: ptrString("page")}
	if got := noMin.EffectiveQuantity(0); got != 1 {
		t.Errorf("expected quantity floor of 1, got %d", got)
	}
}

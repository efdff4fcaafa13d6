package catalog

import (
	"slices"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// Apply filters items and orders the survivors by f.Sort. The input slice
// is left untouched. Ties keep their input order.
func Apply(items []domain.ProductSummary, f Filter) []domain.ProductSummary {
	out := make([]domain.ProductSummary, 0, len(items))
	for _, p := range items {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.ProductSummary) int { return comparePrice(a, b, false) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.ProductSummary) int { return comparePrice(a, b, true) })
	case SortNewest:
		slices.SortStableFunc(out, func(a, b domain.ProductSummary) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}
	return out
}

// comparePrice puts unpriced products last in either direction.
func comparePrice(a, b domain.ProductSummary, desc bool) int {
	switch {
	case a.Price == nil && b.Price == nil:
		return 0
	case a.Price == nil:
		return 1
	case b.Price == nil:
		return -1
	}
	c := a.Price.Cmp(b.Price.Decimal)
	if desc {
		return -c
	}
	return c
}

// SortOptions are the choices of the sort dropdown.
func SortOptions() []domain.FilterOption {
	return []domain.FilterOption{
		{Label: "Featured", Value: string(SortFeatured)},
		{Label: "Newest", Value: string(SortNewest)},
		{Label: "Price: Low to High", Value: string(SortPriceAsc)},
		{Label: "Price: High to Low", Value: string(SortPriceDesc)},
	}
}

// PriceOptions lists PriceBuckets for the filter panel.
func PriceOptions() []domain.FilterOption {
	out := make([]domain.FilterOption, len(PriceBuckets))
	for i, b := range PriceBuckets {
		out[i] = domain.FilterOption{Label: b.Label, Value: b.ID}
	}
	return out
}

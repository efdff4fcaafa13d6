package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ParsePrice reads a decimal price. Blank and malformed values report false.
func ParsePrice(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// PriceRange returns the lowest and highest usable price, or nils.
func PriceRange(prices []string) (lo, hi *decimal.Decimal) {
	for _, raw := range prices {
		d, ok := ParsePrice(raw)
		if !ok {
			continue
		}
		if lo == nil || d.LessThan(*lo) {
			lo = &d
		}
		if hi == nil || d.GreaterThan(*hi) {
			hi = &d
		}
	}
	return lo, hi
}

// DerivePricing computes the price block of a product page. The compare-at
// price comes from the first variant's sale price and is only reported
// when it is strictly above the display price.
func DerivePricing(variants []domain.Variant) domain.Pricing {
	prices := make([]string, len(variants))
	for i, v := range variants {
		prices[i] = v.Price
	}
	var firstSale *string
	if len(variants) > 0 {
		firstSale = variants[0].SalePrice
	}
	return DerivePrices(prices, firstSale)
}

// DerivePrices is DerivePricing over raw values.
func DerivePrices(prices []string, firstSale *string) domain.Pricing {
	lo, hi := PriceRange(prices)
	p := domain.Pricing{Display: domain.MoneyPtr(lo), Ceiling: domain.MoneyPtr(hi)}
	if lo == nil || firstSale == nil {
		return p
	}
	compareAt, ok := ParsePrice(*firstSale)
	if !ok || !compareAt.IsPositive() || !compareAt.GreaterThan(*lo) {
		return p
	}
	p.CompareAt = domain.MoneyPtr(&compareAt)
	pct := int(compareAt.Sub(*lo).Mul(hundred).Div(compareAt).Round(0).IntPart())
	p.DiscountPercent = &pct
	return p
}

package catalog

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
)

// ParseSort maps unknown values to SortFeatured.
func ParseSort(s string) SortKey {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortPriceAsc, SortPriceDesc, SortNewest:
		return k
	}
	return SortFeatured
}

// PriceBucket is a named inclusive price range. A nil Max is open ended.
type PriceBucket struct {
	ID    string
	Label string
	Min   decimal.Decimal
	Max   *decimal.Decimal
}

func bound(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

// PriceBuckets are the ranges offered by the filter panel.
var PriceBuckets = []PriceBucket{
	{ID: "0-50", Label: "$0 - $50", Min: decimal.Zero, Max: bound(50)},
	{ID: "50-100", Label: "$50 - $100", Min: decimal.NewFromInt(50), Max: bound(100)},
	{ID: "100-150", Label: "$100 - $150", Min: decimal.NewFromInt(100), Max: bound(150)},
	{ID: "150-", Label: "Over $150", Min: decimal.NewFromInt(150)},
}

func bucketByID(id string) (PriceBucket, bool) {
	for _, b := range PriceBuckets {
		if b.ID == id {
			return b, true
		}
	}
	return PriceBucket{}, false
}

// Contains reports lo <= price <= hi.
func (b PriceBucket) Contains(price decimal.Decimal) bool {
	if price.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || !price.GreaterThan(*b.Max)
}

// Filter is the parsed listing query.
type Filter struct {
	Genders  []string
	Sizes    []string
	Colors   []string
	Search   string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	Buckets  []PriceBucket
	Sort     SortKey
}

// ParseFilter reads the listing query string. Set-valued keys may repeat
// or carry comma separated values. Unparseable numbers and unknown bucket
// ids are ignored. The page window is read by pagination.FromQuery.
func ParseFilter(q url.Values) Filter {
	f := Filter{
		Genders: slugSet(q["gender"]),
		Sizes:   slugSet(q["size"]),
		Colors:  slugSet(q["color"]),
		Search:  strings.TrimSpace(q.Get("search")),
		Sort:    ParseSort(q.Get("sort")),
	}
	if d, ok := ParsePrice(q.Get("priceMin")); ok {
		f.PriceMin = &d
	}
	if d, ok := ParsePrice(q.Get("priceMax")); ok {
		f.PriceMax = &d
	}
	for _, id := range slugSet(q["price"]) {
		if b, ok := bucketByID(id); ok {
			f.Buckets = append(f.Buckets, b)
		}
	}
	return f
}

func slugSet(values []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

func (f Filter) constrainsPrice() bool {
	return f.PriceMin != nil || f.PriceMax != nil || len(f.Buckets) > 0
}

// Match reports whether p passes every active criterion. Products without
// a price fail any price criterion.
func (f Filter) Match(p domain.ProductSummary) bool {
	if len(f.Genders) > 0 && !contains(f.Genders, p.Gender) {
		return false
	}
	if len(f.Sizes) > 0 && !overlaps(f.Sizes, p.Sizes) {
		return false
	}
	if len(f.Colors) > 0 && !overlaps(f.Colors, p.Colors) {
		return false
	}
	if f.Search != "" {
		haystack := strings.ToLower(p.Name + " " + p.Description)
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}
	if !f.constrainsPrice() {
		return true
	}
	if p.Price == nil {
		return false
	}
	price := p.Price.Decimal
	if f.PriceMin != nil && price.LessThan(*f.PriceMin) {
		return false
	}
	if f.PriceMax != nil && price.GreaterThan(*f.PriceMax) {
		return false
	}
	if len(f.Buckets) == 0 {
		return true
	}
	for _, b := range f.Buckets {
		if b.Contains(price) {
			return true
		}
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps(want, have []string) bool {
	for _, h := range have {
		if contains(want, h) {
			return true
		}
	}
	return false
}

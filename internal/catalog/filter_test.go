package catalog

import (
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter(mustQuery(t,
		"gender=men,women&gender=men&size=9&size=10&color=black,+white&search=+runner+"+
			"&priceMin=20&priceMax=abc&price=0-50&price=150-&price=bogus&sort=price_desc&page=3"))

	assert.Equal(t, []string{"men", "women"}, f.Genders)
	assert.Equal(t, []string{"9", "10"}, f.Sizes)
	assert.Equal(t, []string{"black", "white"}, f.Colors)
	assert.Equal(t, "runner", f.Search)
	require.NotNil(t, f.PriceMin)
	assert.Equal(t, "20", f.PriceMin.String())
	assert.Nil(t, f.PriceMax)
	require.Len(t, f.Buckets, 2)
	assert.Equal(t, "0-50", f.Buckets[0].ID)
	assert.Equal(t, "150-", f.Buckets[1].ID)
	assert.Equal(t, SortPriceDesc, f.Sort)
}

func TestParseFilter_Defaults(t *testing.T) {
	f := ParseFilter(url.Values{"sort": {"cheapest"}, "page": {"-2"}})
	assert.Empty(t, f.Genders)
	assert.Equal(t, SortFeatured, f.Sort)
	assert.Nil(t, f.PriceMin)
	assert.Empty(t, f.Buckets)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceBucket_Contains(t *testing.T) {
	low, _ := bucketByID("0-50")
	open, _ := bucketByID("150-")

	assert.True(t, low.Contains(dec("0")))
	assert.True(t, low.Contains(dec("50")))
	assert.False(t, low.Contains(dec("50.01")))
	assert.True(t, open.Contains(dec("150")))
	assert.True(t, open.Contains(dec("9999")))
	assert.False(t, open.Contains(dec("149.99")))
}

func summary(id, gender, price string, colors, sizes []string, created string) domain.ProductSummary {
	p := domain.ProductSummary{
		ID:          id,
		Name:        "Nike " + id,
		Description: "shoe " + id,
		Gender:      gender,
		Colors:      colors,
		Sizes:       sizes,
	}
	if price != "" {
		p.Price = domain.MustMoney(price)
	}
	p.CreatedAt, _ = time.Parse(time.DateOnly, created)
	return p
}

var collection = []domain.ProductSummary{
	summary("court-runner", "men", "89.99", []string{"black", "white"}, []string{"8", "9", "10"}, "2025-06-01"),
	summary("trail-blazer", "men", "109.99", []string{"red", "black"}, []string{"9", "10", "11"}, "2025-07-10"),
	summary("city-slip-on", "women", "69.99", []string{"white"}, []string{"7", "8", "9"}, "2025-05-15"),
	summary("air-zoom", "unisex", "129.99", []string{"blue", "white"}, []string{"8", "9", "10", "11"}, "2025-08-02"),
	summary("everyday-trainer", "men", "74.99", []string{"black", "blue"}, []string{"9", "10", "11", "12"}, "2025-04-20"),
}

func ids(items []domain.ProductSummary) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestFilter_GenderConjunction(t *testing.T) {
	women := collection[2]
	assert.False(t, Filter{Genders: []string{"men"}}.Match(women))
	assert.True(t, Filter{}.Match(women))
	assert.True(t, Filter{Genders: []string{"men", "women"}}.Match(women))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filter keeps featured order", "", []string{"court-runner", "trail-blazer", "city-slip-on", "air-zoom", "everyday-trainer"}},
		{"gender", "gender=men", []string{"court-runner", "trail-blazer", "everyday-trainer"}},
		{"size overlap", "size=7,12", []string{"city-slip-on", "everyday-trainer"}},
		{"color overlap", "color=red&color=blue", []string{"trail-blazer", "air-zoom", "everyday-trainer"}},
		{"search is case insensitive over name and description", "search=SHOE+AIR", []string{"air-zoom"}},
		{"price bounds inclusive", "priceMin=74.99&priceMax=109.99", []string{"court-runner", "trail-blazer", "everyday-trainer"}},
		{"any bucket", "price=50-100&price=150-", []string{"court-runner", "city-slip-on", "everyday-trainer"}},
		{"conjunction", "gender=men&color=black&price=50-100", []string{"court-runner", "everyday-trainer"}},
		{"price asc", "sort=price_asc", []string{"city-slip-on", "everyday-trainer", "court-runner", "trail-blazer", "air-zoom"}},
		{"price desc", "sort=price_desc&gender=men", []string{"trail-blazer", "court-runner", "everyday-trainer"}},
		{"newest", "sort=newest", []string{"air-zoom", "trail-blazer", "court-runner", "city-slip-on", "everyday-trainer"}},
		{"unknown sort is featured", "sort=random&gender=men", []string{"court-runner", "trail-blazer", "everyday-trainer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(collection, ParseFilter(mustQuery(t, tt.query)))
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_UnpricedProducts(t *testing.T) {
	items := []domain.ProductSummary{
		summary("a", "men", "", nil, nil, "2025-01-01"),
		summary("b", "men", "10", nil, nil, "2025-01-01"),
	}

	assert.Equal(t, []string{"b", "a"}, ids(Apply(items, Filter{Sort: SortPriceAsc})))
	assert.Equal(t, []string{"b", "a"}, ids(Apply(items, Filter{Sort: SortPriceDesc})))
	assert.Equal(t, []string{"b"}, ids(Apply(items, ParseFilter(url.Values{"priceMin": {"0"}}))))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	before := ids(collection)
	Apply(collection, Filter{Sort: SortPriceDesc})
	assert.Equal(t, before, ids(collection))
}

func TestOptions(t *testing.T) {
	assert.Len(t, SortOptions(), 4)
	prices := PriceOptions()
	require.Len(t, prices, 4)
	assert.Equal(t, "150-", prices[3].Value)
}

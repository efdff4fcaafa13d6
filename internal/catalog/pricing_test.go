package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

func TestDerivePrices_DisplayIsMinimum(t *testing.T) {
	p := DerivePrices([]string{"89.99", "109.99", "69.99"}, nil)
	require.NotNil(t, p.Display)
	require.NotNil(t, p.Ceiling)
	assert.Equal(t, "69.99", p.Display.StringFixed(2))
	assert.Equal(t, "109.99", p.Ceiling.StringFixed(2))
	assert.Nil(t, p.CompareAt)
	assert.Nil(t, p.DiscountPercent)
}

func TestDerivePrices_NoUsablePrice(t *testing.T) {
	for _, prices := range [][]string{nil, {}, {"abc", "", "NaN", "Infinity"}} {
		p := DerivePrices(prices, strPtr("100"))
		assert.Nil(t, p.Display)
		assert.Nil(t, p.Ceiling)
		assert.Nil(t, p.CompareAt)
	}
}

func TestDerivePrices_SkipsUnparseable(t *testing.T) {
	p := DerivePrices([]string{"oops", "75.50", " 60 "}, nil)
	require.NotNil(t, p.Display)
	assert.Equal(t, "60.00", p.Display.StringFixed(2))
	assert.Equal(t, "75.50", p.Ceiling.StringFixed(2))
}

func TestDerivePrices_Discount(t *testing.T) {
	tests := []struct {
		name      string
		prices    []string
		sale      *string
		compareAt string
		discount  int
	}{
		{"twenty percent", []string{"80"}, strPtr("100"), "100.00", 20},
		{"rounds half up", []string{"87.5"}, strPtr("100"), "100.00", 13},
		{"rounds down", []string{"66.67"}, strPtr("100"), "100.00", 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DerivePrices(tt.prices, tt.sale)
			require.NotNil(t, p.CompareAt)
			require.NotNil(t, p.DiscountPercent)
			assert.Equal(t, tt.compareAt, p.CompareAt.StringFixed(2))
			assert.Equal(t, tt.discount, *p.DiscountPercent)
		})
	}
}

func TestDerivePrices_CompareAtMustBeStrictlyGreater(t *testing.T) {
	for _, sale := range []*string{strPtr("80"), strPtr("79.99"), strPtr("zero"), strPtr("0"), nil} {
		p := DerivePrices([]string{"80"}, sale)
		assert.Nil(t, p.CompareAt)
		assert.Nil(t, p.DiscountPercent)
	}
}

func TestDerivePricing_UsesFirstVariantSalePrice(t *testing.T) {
	variants := []domain.Variant{
		{ID: "v1", Price: "90", SalePrice: strPtr("120")},
		{ID: "v2", Price: "60", SalePrice: strPtr("200")},
	}

	p := DerivePricing(variants)
	require.NotNil(t, p.CompareAt)
	assert.Equal(t, "60.00", p.Display.StringFixed(2))
	assert.Equal(t, "120.00", p.CompareAt.StringFixed(2))
	assert.Equal(t, 50, *p.DiscountPercent)
}

func TestParsePrice(t *testing.T) {
	d, ok := ParsePrice("1e2")
	assert.True(t, ok)
	assert.Equal(t, "100", d.String())

	_, ok = ParsePrice("  ")
	assert.False(t, ok)
}

package catalog

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeOrder_Sort(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"numeric", []string{"10", "9", "7", "8"}, []string{"7", "8", "9", "10"}},
		{"letters", []string{"M", "S", "L"}, []string{"L", "M", "S"}},
		{"half sizes", []string{"10.5", "9", "10", "9.5"}, []string{"9", "9.5", "10", "10.5"}},
		{"numeric prefix", []string{"11 US", "8 US", "9.5 US"}, []string{"8 US", "9.5 US", "11 US"}},
		{"numbers before words", []string{"XL", "2", "10", "One Size"}, []string{"2", "10", "One Size", "XL"}},
		{"case ties broken bytewise", []string{"m", "M"}, []string{"M", "m"}},
		{"numeric ties broken bytewise", []string{"10.0", "10"}, []string{"10", "10.0"}},
		{"signed numbers before words", []string{"+a", "+5", "1"}, []string{"1", "+5", "+a"}},
		{"fractions before words", []string{"One Size", ".5", "-1"}, []string{"-1", ".5", "One Size"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.in)
			NewSizeOrder().Sort(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSizeOrder_IndependentOfInputOrder(t *testing.T) {
	labels := []string{"XS", "s", "S", "M", "10", "10.0", "9", "9.5", "One Size", "l", "L", "XL", "2XL", "+5", "+a", "1", "-2", ".5", "+"}
	want := slices.Clone(labels)
	NewSizeOrder().Sort(want)

	rng := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		got := slices.Clone(labels)
		rng.Shuffle(len(got), func(i, j int) { got[i], got[j] = got[j], got[i] })
		NewSizeOrder().Sort(got)
		assert.Equal(t, want, got)
	}
}

func TestSizeOrder_CompareIsAntisymmetric(t *testing.T) {
	o := NewSizeOrder()
	labels := []string{"7", "7.0", "M", "m", "Médium", "medium", "XL", ""}
	for _, a := range labels {
		for _, b := range labels {
			c := o.Compare(a, b)
			assert.Equal(t, -c, o.Compare(b, a), "%q vs %q", a, b)
			if a != b {
				assert.NotZero(t, c, "%q vs %q", a, b)
			}
		}
	}
}

func TestSizeOrder_CompareIsTransitive(t *testing.T) {
	o := NewSizeOrder()
	labels := []string{"1", "+5", "+a", "-2", ".5", "10", "10.0", "2XL", "M", "m", "XL", "One Size", "+", "-", "Infinity", "e1", ""}
	for _, a := range labels {
		for _, b := range labels {
			for _, c := range labels {
				if o.Compare(a, b) < 0 && o.Compare(b, c) < 0 {
					assert.Negative(t, o.Compare(a, c), "%q < %q < %q", a, b, c)
				}
			}
		}
	}
}

func TestSizeOrder_SortedUnique(t *testing.T) {
	got := NewSizeOrder().SortedUnique([]string{"10", "", "9", "10", "8"})
	assert.Equal(t, []string{"8", "9", "10"}, got)
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{" 9.5", 9.5, true},
		{"8 US", 8, true},
		{".5", 0.5, true},
		{"1e", 1, true},
		{"-3", -3, true},
		{"M", 0, false},
		{"", 0, false},
		{"US 8", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLeadingFloat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

package catalog

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// leadingNumber matches the longest numeric prefix of a label, the way a
// browser parseFloat reads "10.5 US" as 10.5.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)`)

func parseLeadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// SizeOrder orders size labels. Labels that both start with a number are
// compared numerically and two labels that do not are collated with a
// numeric, case and accent insensitive collation. A numeric label sorts
// before a non-numeric one. Remaining ties fall back to byte order, so
// Compare is a strict total order and sorting does not depend on the
// input order.
//
// A SizeOrder is not safe for concurrent use.
type SizeOrder struct {
	col *collate.Collator
}

func NewSizeOrder() *SizeOrder {
	return &SizeOrder{col: collate.New(language.Und, collate.Numeric, collate.Loose)}
}

// Compare returns -1, 0 or +1. It returns 0 only for identical labels.
func (o *SizeOrder) Compare(a, b string) int {
	if c := o.compareLoose(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func (o *SizeOrder) compareLoose(a, b string) int {
	na, okA := parseLeadingFloat(a)
	nb, okB := parseLeadingFloat(b)
	switch {
	case okA && okB:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case okA:
		return -1
	case okB:
		return 1
	}
	return o.col.CompareString(a, b)
}

// Sort orders labels in place.
func (o *SizeOrder) Sort(labels []string) {
	slices.SortStableFunc(labels, o.Compare)
}

// SortedUnique returns the distinct non-empty labels in ascending order.
func (o *SizeOrder) SortedUnique(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	o.Sort(out)
	return out
}

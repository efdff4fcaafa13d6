package catalog

import (
	"strings"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// DefaultPlaceholderURL is shown for a color group without any picture.
const DefaultPlaceholderURL = "/shoes/shoe-1.jpg"

// GroupKey identifies a color group.
type GroupKey interface {
	String() string
	isGroupKey()
}

// Grouped keys variants sharing a color.
type Grouped struct{ ColorID string }

// Fallback keys a single variant whose color could not be resolved.
type Fallback struct{ VariantID string }

func (k Grouped) String() string  { return k.ColorID }
func (k Fallback) String() string { return "c-" + k.VariantID }

func (Grouped) isGroupKey()  {}
func (Fallback) isGroupKey() {}

func keyOf(v domain.Variant) GroupKey {
	if v.Color != nil && v.Color.ID != "" {
		return Grouped{ColorID: v.Color.ID}
	}
	return Fallback{VariantID: v.ID}
}

// Group is the color group of a product page before serialization.
type Group struct {
	Key    GroupKey
	Label  string
	Swatch string
	Sizes  []string
	Images []domain.GalleryImage
}

// ToDomain flattens the key to its string form.
func (g Group) ToDomain() domain.ColorGroup {
	return domain.ColorGroup{
		ID:     g.Key.String(),
		Swatch: g.Swatch,
		Label:  g.Label,
		Sizes:  g.Sizes,
		Images: g.Images,
	}
}

// Grouper builds the color groups of a product page.
type Grouper struct {
	PlaceholderURL string
}

func NewGrouper(placeholderURL string) Grouper {
	if placeholderURL == "" {
		placeholderURL = DefaultPlaceholderURL
	}
	return Grouper{PlaceholderURL: placeholderURL}
}

func labelOf(c *domain.Color) string {
	switch {
	case c == nil:
		return "Default"
	case c.Name != "":
		return c.Name
	case c.Slug != "":
		return c.Slug
	}
	return "Default"
}

func galleryImage(img domain.Image) domain.GalleryImage {
	return domain.GalleryImage{ID: img.ID, URL: img.URL, Alt: img.URL}
}

// Group folds variants into color groups in order of first appearance.
// Images of a group's variants come first; product-level images are used
// only by groups that have none, and a placeholder fills any group that is
// still empty.
func (g Grouper) Group(productName string, variants []domain.Variant, images []domain.Image) []Group {
	order := NewSizeOrder()

	byVariant := make(map[string][]domain.Image)
	var productLevel []domain.Image
	for _, img := range images {
		if img.VariantID == nil {
			productLevel = append(productLevel, img)
			continue
		}
		byVariant[*img.VariantID] = append(byVariant[*img.VariantID], img)
	}

	var groups []*Group
	index := make(map[GroupKey]*Group)
	seenImage := make(map[GroupKey]map[string]struct{})
	for _, v := range variants {
		key := keyOf(v)
		grp, ok := index[key]
		if !ok {
			label := labelOf(v.Color)
			swatch := strings.ToLower(label)
			if v.Color != nil && v.Color.Slug != "" {
				swatch = v.Color.Slug
			}
			grp = &Group{Key: key, Label: label, Swatch: swatch, Sizes: []string{}, Images: []domain.GalleryImage{}}
			index[key] = grp
			seenImage[key] = make(map[string]struct{})
			groups = append(groups, grp)
		}
		if v.Size != nil && v.Size.Name != "" {
			grp.Sizes = append(grp.Sizes, v.Size.Name)
		}
		for _, img := range byVariant[v.ID] {
			if _, dup := seenImage[key][img.ID]; dup {
				continue
			}
			seenImage[key][img.ID] = struct{}{}
			grp.Images = append(grp.Images, galleryImage(img))
		}
	}

	out := make([]Group, 0, len(groups))
	for _, grp := range groups {
		grp.Sizes = order.SortedUnique(grp.Sizes)
		if len(grp.Images) == 0 {
			for _, img := range productLevel {
				if _, dup := seenImage[grp.Key][img.ID]; dup {
					continue
				}
				seenImage[grp.Key][img.ID] = struct{}{}
				grp.Images = append(grp.Images, galleryImage(img))
			}
		}
		if len(grp.Images) == 0 {
			grp.Images = append(grp.Images, domain.GalleryImage{
				ID:  "ph-" + grp.Key.String(),
				URL: g.PlaceholderURL,
				Alt: productName + " - " + grp.Label,
			})
		}
		out = append(out, *grp)
	}
	return out
}

// AllSizes is the distinct, ordered size list across every variant.
func AllSizes(variants []domain.Variant) []string {
	labels := make([]string, 0, len(variants))
	for _, v := range variants {
		if v.Size != nil {
			labels = append(labels, v.Size.Name)
		}
	}
	return NewSizeOrder().SortedUnique(labels)
}

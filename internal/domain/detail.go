package domain

// GalleryImage is one picture of a color group.
type GalleryImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ColorGroup aggregates the variants of one color for the swatch picker.
type ColorGroup struct {
	ID     string         `json:"id"`
	Swatch string         `json:"color"`
	Label  string         `json:"label"`
	Sizes  []string       `json:"sizes"`
	Images []GalleryImage `json:"images"`
}

// Pricing is the derived price block of a product page. Display and
// Ceiling are nil when no variant carries a usable price.
type Pricing struct {
	Display         *Money `json:"display"`
	Ceiling         *Money `json:"ceiling"`
	CompareAt       *Money `json:"compare_at,omitempty"`
	DiscountPercent *int   `json:"discount_percent,omitempty"`
}

// ProductDetail is everything the product page renders.
type ProductDetail struct {
	Product     Product          `json:"product"`
	Variants    []Variant        `json:"variants"`
	ColorGroups []ColorGroup     `json:"color_groups"`
	Sizes       []string         `json:"sizes"`
	Pricing     Pricing          `json:"pricing"`
	Reviews     []Review         `json:"reviews"`
	Recommended []ProductSummary `json:"recommended"`
}

// FilterOption is one checkbox of the listing filter panel.
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FilterFacets lists the values the listing can be filtered by.
type FilterFacets struct {
	Genders []FilterOption `json:"genders"`
	Sizes   []FilterOption `json:"sizes"`
	Colors  []FilterOption `json:"colors"`
	Prices  []FilterOption `json:"prices"`
	Sorts   []FilterOption `json:"sorts"`
}

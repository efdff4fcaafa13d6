// Package seed loads a YAML description of the catalog into Postgres.
package seed

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/utafrali/EcommerceGo/storefront/pkg/slug"
)

// productNamespace derives stable product ids from product slugs so that a
// re-run updates rows instead of duplicating them.
var productNamespace = uuid.MustParse("6f1c3a52-0d8e-4b7a-9e44-5b2f0c1d7a90")

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Catalog is the document read by cmd/seed.
type Catalog struct {
	Genders    []Gender   `yaml:"genders"`
	Colors     []Color    `yaml:"colors"`
	Sizes      []Size     `yaml:"sizes"`
	Brands     []Brand    `yaml:"brands"`
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
}

type Gender struct {
	Label string `yaml:"label"`
	Slug  string `yaml:"slug"`
}

type Color struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
	Hex  string `yaml:"hex"`
}

// Size rows sort by SortOrder on the filter panel.
type Size struct {
	Name      string `yaml:"name"`
	Slug      string `yaml:"slug"`
	SortOrder int    `yaml:"sort_order"`
}

type Brand struct {
	Name    string  `yaml:"name"`
	Slug    string  `yaml:"slug"`
	LogoURL *string `yaml:"logo_url"`
}

// Category may name a parent by slug; parents must be listed first.
type Category struct {
	Name   string `yaml:"name"`
	Slug   string `yaml:"slug"`
	Parent string `yaml:"parent"`
}

// Product references its lookups by slug.
type Product struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Slug        string    `yaml:"slug"`
	Description string    `yaml:"description"`
	Brand       string    `yaml:"brand"`
	Category    string    `yaml:"category"`
	Gender      string    `yaml:"gender"`
	Published   *bool     `yaml:"published"`
	Variants    []Variant `yaml:"variants"`
	Images      []Image   `yaml:"images"`
}

type Variant struct {
	SKU       string `yaml:"sku"`
	Price     string `yaml:"price"`
	SalePrice string `yaml:"sale_price"`
	Color     string `yaml:"color"`
	Size      string `yaml:"size"`
	Stock     int    `yaml:"stock"`
}

// Image attaches to a variant when SKU is set, otherwise to the product.
type Image struct {
	URL     string `yaml:"url"`
	SKU     string `yaml:"sku"`
	Primary bool   `yaml:"primary"`
}

// Parse decodes a catalog document and normalizes it. Unknown keys are
// rejected so that typos do not silently drop data.
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Normalize fills missing slugs and product ids and checks every reference.
func (c *Catalog) Normalize() error {
	genders := make(map[string]bool)
	for i := range c.Genders {
		g := &c.Genders[i]
		if g.Slug == "" {
			g.Slug = slug.Generate(g.Label)
		}
		if err := claim(genders, "gender", g.Slug); err != nil {
			return err
		}
	}

	colors := make(map[string]bool)
	for i := range c.Colors {
		col := &c.Colors[i]
		if col.Slug == "" {
			col.Slug = slug.Generate(col.Name)
		}
		if !hexColor.MatchString(col.Hex) {
			return fmt.Errorf("color %q: invalid hex code %q", col.Slug, col.Hex)
		}
		if err := claim(colors, "color", col.Slug); err != nil {
			return err
		}
	}

	sizes := make(map[string]bool)
	for i := range c.Sizes {
		s := &c.Sizes[i]
		if s.Slug == "" {
			s.Slug = slug.Generate(s.Name)
		}
		if err := claim(sizes, "size", s.Slug); err != nil {
			return err
		}
	}

	brands := make(map[string]bool)
	for i := range c.Brands {
		b := &c.Brands[i]
		if b.Slug == "" {
			b.Slug = slug.Generate(b.Name)
		}
		if err := claim(brands, "brand", b.Slug); err != nil {
			return err
		}
	}

	categories := make(map[string]bool)
	for i := range c.Categories {
		cat := &c.Categories[i]
		if cat.Slug == "" {
			cat.Slug = slug.Generate(cat.Name)
		}
		if cat.Parent != "" && !categories[cat.Parent] {
			return fmt.Errorf("category %q: unknown parent %q", cat.Slug, cat.Parent)
		}
		if err := claim(categories, "category", cat.Slug); err != nil {
			return err
		}
	}

	products := make(map[string]bool)
	skus := make(map[string]bool)
	for i := range c.Products {
		p := &c.Products[i]
		if p.Name == "" {
			return fmt.Errorf("product #%d: name is required", i+1)
		}
		if p.Slug == "" {
			p.Slug = slug.Generate(p.Name)
		}
		if err := claim(products, "product", p.Slug); err != nil {
			return err
		}
		if p.ID == "" {
			p.ID = uuid.NewSHA1(productNamespace, []byte(p.Slug)).String()
		} else if _, err := uuid.Parse(p.ID); err != nil {
			return fmt.Errorf("product %q: invalid id %q", p.Slug, p.ID)
		}
		if err := ref(brands, p.Brand, "product %q: unknown brand %q", p.Slug); err != nil {
			return err
		}
		if err := ref(categories, p.Category, "product %q: unknown category %q", p.Slug); err != nil {
			return err
		}
		if err := ref(genders, p.Gender, "product %q: unknown gender %q", p.Slug); err != nil {
			return err
		}

		own := make(map[string]bool)
		for _, v := range p.Variants {
			if v.SKU == "" {
				return fmt.Errorf("product %q: variant without sku", p.Slug)
			}
			if err := claim(skus, "sku", v.SKU); err != nil {
				return err
			}
			own[v.SKU] = true
			if !colors[v.Color] {
				return fmt.Errorf("variant %q: unknown color %q", v.SKU, v.Color)
			}
			if !sizes[v.Size] {
				return fmt.Errorf("variant %q: unknown size %q", v.SKU, v.Size)
			}
			if _, err := decimal.NewFromString(v.Price); err != nil {
				return fmt.Errorf("variant %q: invalid price %q", v.SKU, v.Price)
			}
			if v.SalePrice != "" {
				if _, err := decimal.NewFromString(v.SalePrice); err != nil {
					return fmt.Errorf("variant %q: invalid sale price %q", v.SKU, v.SalePrice)
				}
			}
		}
		for _, img := range p.Images {
			if img.URL == "" {
				return fmt.Errorf("product %q: image without url", p.Slug)
			}
			if img.SKU != "" && !own[img.SKU] {
				return fmt.Errorf("product %q: image references unknown sku %q", p.Slug, img.SKU)
			}
		}
	}
	return nil
}

func claim(seen map[string]bool, kind, key string) error {
	if key == "" {
		return fmt.Errorf("%s without a name or slug", kind)
	}
	if seen[key] {
		return fmt.Errorf("duplicate %s %q", kind, key)
	}
	seen[key] = true
	return nil
}

// ref checks an optional reference.
func ref(known map[string]bool, key, format, owner string) error {
	if key == "" || known[key] {
		return nil
	}
	return fmt.Errorf(format, owner, key)
}

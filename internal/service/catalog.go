package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/repository"
	"github.com/utafrali/EcommerceGo/storefront/pkg/pagination"
)

// CatalogOptions tunes the product pages.
type CatalogOptions struct {
	PlaceholderURL   string
	RecommendedLimit int
	ReviewLimit      int
}

// CatalogService assembles the listing and product detail pages.
type CatalogService struct {
	products repository.ProductRepository
	lookups  repository.LookupRepository
	reviews  repository.ReviewRepository
	cache    repository.ProductCache
	grouper  catalog.Grouper
	opts     CatalogOptions
	logger   *slog.Logger
}

// NewCatalogService creates a catalog service. cache may be nil.
func NewCatalogService(
	products repository.ProductRepository,
	lookups repository.LookupRepository,
	reviews repository.ReviewRepository,
	cache repository.ProductCache,
	opts CatalogOptions,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		lookups:  lookups,
		reviews:  reviews,
		cache:    cache,
		grouper:  catalog.NewGrouper(opts.PlaceholderURL),
		opts:     opts,
		logger:   logger,
	}
}

// ListProducts filters and sorts the published catalog in memory and
// returns the requested page.
func (s *CatalogService) ListProducts(ctx context.Context, f catalog.Filter, page pagination.Params) (pagination.Result[domain.ProductSummary], error) {
	all, err := s.products.ListSummaries(ctx)
	if err != nil {
		return pagination.Result[domain.ProductSummary]{}, fmt.Errorf("list products: %w", err)
	}

	matched := catalog.Apply(all, f)
	return pagination.NewResult(pagination.Slice(matched, page), len(matched), page), nil
}

// Filters returns the facets of the listing filter panel.
func (s *CatalogService) Filters(ctx context.Context) (*domain.FilterFacets, error) {
	genders, err := s.lookups.Genders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genders: %w", err)
	}
	sizes, err := s.lookups.Sizes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	colors, err := s.lookups.Colors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}

	facets := &domain.FilterFacets{
		Genders: make([]domain.FilterOption, 0, len(genders)),
		Sizes:   make([]domain.FilterOption, 0, len(sizes)),
		Colors:  make([]domain.FilterOption, 0, len(colors)),
		Prices:  catalog.PriceOptions(),
		Sorts:   catalog.SortOptions(),
	}
	for _, g := range genders {
		facets.Genders = append(facets.Genders, domain.FilterOption{Label: g.Label, Value: g.Slug})
	}
	for _, sz := range sizes {
		facets.Sizes = append(facets.Sizes, domain.FilterOption{Label: sz.Name, Value: sz.Slug})
	}
	for _, c := range colors {
		facets.Colors = append(facets.Colors, domain.FilterOption{Label: c.Name, Value: c.Slug})
	}
	return facets, nil
}

// GetProductDetail returns the product page, served from cache when
// possible. Cache failures only cost a rebuild.
func (s *CatalogService) GetProductDetail(ctx context.Context, id string) (*domain.ProductDetail, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "product cache read failed",
				slog.String("product_id", id),
				slog.String("error", err.Error()),
			)
		}
		if cached != nil {
			return cached, nil
		}
	}

	detail, err := s.buildDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, detail); err != nil {
			s.logger.WarnContext(ctx, "product cache write failed",
				slog.String("product_id", id),
				slog.String("error", err.Error()),
			)
		}
	}
	return detail, nil
}

func (s *CatalogService) buildDetail(ctx context.Context, id string) (*domain.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	variants, err := s.products.Variants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	images, err := s.products.Images(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	reviews, err := s.reviews.ListByProduct(ctx, id, s.opts.ReviewLimit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	recommended, err := s.products.Recommended(ctx, product, s.opts.RecommendedLimit)
	if err != nil {
		return nil, fmt.Errorf("list recommended products: %w", err)
	}

	groups := s.grouper.Group(product.Name, variants, images)
	colorGroups := make([]domain.ColorGroup, len(groups))
	for i, g := range groups {
		colorGroups[i] = g.ToDomain()
	}

	return &domain.ProductDetail{
		Product:     *product,
		Variants:    variants,
		ColorGroups: colorGroups,
		Sizes:       catalog.AllSizes(variants),
		Pricing:     catalog.DerivePricing(variants),
		Reviews:     reviews,
		Recommended: recommended,
	}, nil
}

// Invalidate drops the cached detail page of a product.
func (s *CatalogService) Invalidate(ctx context.Context, productID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, productID); err != nil {
		s.logger.WarnContext(ctx, "product cache invalidation failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
}

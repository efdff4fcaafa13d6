package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httputil"
	"github.com/utafrali/EcommerceGo/storefront/pkg/pagination"
)

// ProductHandler handles the product listing and detail endpoints.
type ProductHandler struct {
	catalog  Catalog
	pageSize int
	logger   *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(c Catalog, pageSize int, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: c, pageSize: pageSize, logger: logger}
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.ParseFilter(q)
	page := pagination.FromQuery(q, h.pageSize)

	res, err := h.catalog.ListProducts(r.Context(), f, page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// Filters handles GET /api/v1/products/filters
func (h *ProductHandler) Filters(w http.ResponseWriter, r *http.Request) {
	facets, err := h.catalog.Filters(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, facets)
}

// GetProduct handles GET /api/v1/products/{id}. Ids that cannot exist are
// answered like unknown ones.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.WriteError(w, r, apperrors.NotFound("product", id), h.logger)
		return
	}

	detail, err := h.catalog.GetProductDetail(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, detail)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/EcommerceGo/storefront/pkg/health"
	"github.com/utafrali/EcommerceGo/storefront/pkg/middleware"
)

// productMaxAge is the Cache-Control max-age of the public catalog reads.
const productMaxAge = 60

// Services groups the application services the router dispatches to.
type Services struct {
	Catalog   Catalog
	Reviews   Reviews
	Accounts  Accounts
	Guests    Guests
	Wishlists Wishlists
}

// RouterConfig carries the HTTP-level settings of the router.
type RouterConfig struct {
	CORSOrigins       []string
	Cookies           CookieConfig
	ListingPageSize   int
	AuthRatePerMinute int
	AuthRateBurst     int
	PprofAllowedCIDRs []string
	// Done stops the rate limiter's background sweeper.
	Done <-chan struct{}
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(svc Services, cfg RouterConfig, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing)
	r.Use(middleware.Metrics)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if len(cfg.PprofAllowedCIDRs) > 0 {
		middleware.MountPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	productHandler := NewProductHandler(svc.Catalog, cfg.ListingPageSize, logger)
	reviewHandler := NewReviewHandler(svc.Reviews, logger)
	authHandler := NewAuthHandler(svc.Accounts, cfg.Cookies, logger)
	guestHandler := NewGuestHandler(svc.Guests, cfg.Cookies, logger)
	wishlistHandler := NewWishlistHandler(svc.Wishlists, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Session(svc.Accounts))
		r.Use(middleware.RequestLogger(logger))

		r.Route("/products", func(r chi.Router) {
			r.With(middleware.CacheControl(productMaxAge)).Get("/", productHandler.ListProducts)
			r.With(middleware.CacheControl(productMaxAge)).Get("/filters", productHandler.Filters)
			r.With(middleware.CacheControl(productMaxAge)).Get("/{id}", productHandler.GetProduct)

			r.Get("/{id}/reviews", reviewHandler.ListReviews)
			r.With(middleware.RequireUser).Post("/{id}/reviews", reviewHandler.CreateReview)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.AuthRatePerMinute, cfg.AuthRateBurst, cfg.Done, logger))
				r.Post("/sign-up", authHandler.SignUp)
				r.Post("/sign-in", authHandler.SignIn)
			})
			r.Post("/sign-out", authHandler.SignOut)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/guest-session", func(r chi.Router) {
			r.Get("/", guestHandler.Lookup)
			r.Post("/", guestHandler.Ensure)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/", wishlistHandler.List)
			r.Post("/{productId}", wishlistHandler.Add)
			r.Delete("/{productId}", wishlistHandler.Remove)
		})
	})

	return r
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/EcommerceGo/storefront/internal/auth"
	"github.com/utafrali/EcommerceGo/storefront/internal/config"
	"github.com/utafrali/EcommerceGo/storefront/internal/event"
	handler "github.com/utafrali/EcommerceGo/storefront/internal/handler/http"
	"github.com/utafrali/EcommerceGo/storefront/internal/repository/postgres"
	rediscache "github.com/utafrali/EcommerceGo/storefront/internal/repository/redis"
	"github.com/utafrali/EcommerceGo/storefront/internal/service"
	"github.com/utafrali/EcommerceGo/storefront/migrations"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	"github.com/utafrali/EcommerceGo/storefront/pkg/health"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httpclient"
	pkgkafka "github.com/utafrali/EcommerceGo/storefront/pkg/kafka"
	"github.com/utafrali/EcommerceGo/storefront/pkg/tracing"
)

const (
	serviceName = "storefront"

	// idempotencyTTL bounds how long consumed event ids are remembered.
	idempotencyTTL = 24 * time.Hour
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	producer       *pkgkafka.Producer
	consumer       *pkgkafka.Consumer
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
	done           chan struct{}
	wg             sync.WaitGroup
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.Init(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	if err := prometheus.Register(database.NewPoolStatsCollector(pool, serviceName)); err != nil {
		logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}

	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations completed")
	}

	if cfg.SlowQueryMs > 0 {
		database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryMs)*time.Millisecond, logger)
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))

	producer := pkgkafka.NewProducer(pkgkafka.ProducerConfig{Brokers: cfg.KafkaBrokers}, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Repositories.
	productRepo := postgres.NewProductRepository(pool)
	lookupRepo := postgres.NewLookupRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	guestRepo := postgres.NewGuestRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	productCache := rediscache.NewProductCache(redisClient, cfg.ProductCacheTTL)

	provider, err := newAuthProvider(cfg, pool, logger)
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, err
	}

	// Services.
	eventProducer := event.NewProducer(producer, logger)
	catalogService := service.NewCatalogService(productRepo, lookupRepo, reviewRepo, productCache, service.CatalogOptions{
		PlaceholderURL:   cfg.PlaceholderImageURL,
		RecommendedLimit: cfg.RecommendedLimit,
	}, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, catalogService, eventProducer, logger)
	guestService := service.NewGuestService(guestRepo, eventProducer, cfg.GuestSessionTTL, logger)
	accountService := service.NewAccountService(provider, guestService, eventProducer, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, logger)

	consumer := event.NewRatingConsumer(
		cfg.KafkaBrokers,
		cfg.KafkaConsumerGroup,
		event.NewRatingHandler(reviewService, logger),
		pkgkafka.NewRedisIdempotencyStore(redisClient, serviceName+":events:", idempotencyTTL),
		logger,
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	done := make(chan struct{})
	router := handler.NewRouter(handler.Services{
		Catalog:   catalogService,
		Reviews:   reviewService,
		Accounts:  accountService,
		Guests:    guestService,
		Wishlists: wishlistService,
	}, handler.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Cookies: handler.CookieConfig{
			Secure:     cfg.CookieSecure,
			GuestTTL:   cfg.GuestSessionTTL,
			SessionTTL: cfg.SessionTTL,
		},
		ListingPageSize:   cfg.ListingPageSize,
		AuthRatePerMinute: cfg.AuthRatePerMin,
		AuthRateBurst:     cfg.AuthRateBurst,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
		Done:              done,
	}, healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		consumer:       consumer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
		done:           done,
	}, nil
}

// newAuthProvider selects the session backend named by AUTH_PROVIDER.
func newAuthProvider(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (auth.Provider, error) {
	switch cfg.AuthProvider {
	case config.AuthLocal:
		tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
		return auth.NewLocalProvider(
			postgres.NewUserRepository(pool),
			postgres.NewSessionRepository(pool),
			tokens,
			auth.DefaultBcryptCost,
			logger,
		), nil
	case config.AuthRemote:
		httpCfg := httpclient.DefaultConfig()
		httpCfg.Timeout = cfg.AuthTimeout
		client := httpclient.NewBreakerClient(httpclient.New(httpCfg), httpclient.DefaultBreakerConfig("auth"), logger)
		logger.Info("using remote auth provider", slog.String("url", cfg.AuthRemoteURL))
		return auth.NewRemoteProvider(client, cfg.AuthRemoteURL), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}

// Run starts the HTTP server and the rating consumer and blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.logger.Info("starting rating consumer", slog.String("topic", event.TopicReviewCreated))
		if err := a.consumer.Start(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("rating consumer stopped", slog.String("error", err.Error()))
		}
	}()

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	stopConsumer()
	return errors.Join(runErr, a.Shutdown())
}

// Shutdown stops all components in order: the HTTP server drains first,
// then the consumer, the tracer flushes, and the clients close last.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	close(a.done)

	if err := a.consumer.Close(); err != nil {
		a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.wg.Wait()

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

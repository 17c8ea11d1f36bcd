package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-courier-panel/internal/auth"
	"service-courier-panel/internal/config"
	"service-courier-panel/internal/http/handlers"
	"service-courier-panel/internal/http/middleware"
	"service-courier-panel/internal/http/router"
	"service-courier-panel/internal/logx"
	"service-courier-panel/internal/repository"
	authsvc "service-courier-panel/internal/service/auth"
	"service-courier-panel/internal/service/courier"
	"service-courier-panel/internal/service/delivery"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		func(cfg *config.Config) *auth.TokenManager {
			return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		},
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		repository.NewCourierRepo,
		func() time.Duration { return 3 * time.Second },
		func(repo *repository.OrderRepo, timeout time.Duration, logger logx.Logger) *delivery.Service {
			return delivery.NewService(repo, timeout, logger)
		},
		func(repo *repository.CourierRepo, timeout time.Duration, logger logx.Logger) *courier.Service {
			return courier.NewService(repo, timeout, logger)
		},
		func(
			repo *repository.CourierRepo,
			tokens *auth.TokenManager,
			cfg *config.Config,
			timeout time.Duration,
			logger logx.Logger,
		) *authsvc.Service {
			return authsvc.NewService(repo, tokens, cfg.Auth.BcryptCost, timeout, logger)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	authMWProvider := func(
		logger logx.Logger,
		tokens *auth.TokenManager,
		couriers *repository.CourierRepo,
		cfg *config.Config,
	) *middleware.Auth {
		return middleware.NewAuth(logger, tokens, couriers, cfg.Auth.DevCourierFallback)
	}
	routerProvider := func(
		logger logx.Logger,
		base *handlers.Handlers,
		authH *handlers.AuthHandler,
		deliveryH *handlers.DeliveryHandler,
		courierH *handlers.CourierHandler,
		authMW *middleware.Auth,
		rl *ratelimitMiddleware,
	) http.Handler {
		return router.New(router.Deps{
			Logger:    logger,
			Base:      base,
			Auth:      authH,
			Delivery:  deliveryH,
			Courier:   courierH,
			AuthMW:    authMW,
			RateLimit: rl.handler(),
		})
	}
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewAuthUsecase,
		handlers.NewAuthHandler,
		handlers.NewDeliveryUsecase,
		handlers.NewDeliveryHandler,
		handlers.NewCourierUsecase,
		handlers.NewCourierHandler,
		authMWProvider,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
	)
}

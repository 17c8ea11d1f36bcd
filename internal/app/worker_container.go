package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-courier-panel/internal/config"
	"service-courier-panel/internal/logx"
	"service-courier-panel/internal/repository"
	"service-courier-panel/internal/service/orders"
	"service-courier-panel/internal/transport/kafka"
)

// WorkerContainerBuilder builds the DI container for the ingestion worker.
type WorkerContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewWorkerContainerBuilder returns a new WorkerContainerBuilder
func NewWorkerContainerBuilder() *WorkerContainerBuilder {
	return &WorkerContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *WorkerContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *WorkerContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *WorkerContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *WorkerContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *WorkerContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *WorkerContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer builds and returns a new dig container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewWorkerContainerBuilder().MustBuild(ctx)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		func(repo *repository.OrderRepo, logger logx.Logger) *orders.Processor {
			return orders.NewProcessor(repo, logger)
		},
		func(p *orders.Processor) kafka.HandleFunc {
			// Constraint violations cannot succeed on redelivery, mark them
			// permanent so the consumer skips instead of retrying forever.
			return func(ctx context.Context, e orders.Event) error {
				err := p.Handle(ctx, e)
				if repository.IsIntegrityViolation(err) {
					return kafka.Permanent(err)
				}
				return err
			}
		},
		func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
	)
}

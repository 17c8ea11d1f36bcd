package orders

import (
	"context"

	"service-courier-panel/internal/domain"
)

type orderStore interface {
	Upsert(ctx context.Context, order *domain.Order) error
	MarkCancelled(ctx context.Context, orderID string) (bool, error)
}

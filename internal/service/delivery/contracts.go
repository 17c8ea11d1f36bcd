package delivery

import (
	"context"
	"time"

	"service-courier-panel/internal/domain"
)

// orderRepository defines storage operations required by the business layer.
type orderRepository interface {
	ListByCourier(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetDetailed(ctx context.Context, id string) (*domain.Order, error)
	ApplyStatusUpdate(ctx context.Context, u domain.StatusUpdate) error
	Stats(ctx context.Context, courierID string, now time.Time) (*domain.CourierStats, error)
}

package courier

import (
	"context"

	"service-courier-panel/internal/domain"
)

// courierRepository defines storage operations required by the business layer.
type courierRepository interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
	UpdatePresence(ctx context.Context, u domain.PresenceUpdate) (*domain.Presence, error)
}

package auth

import (
	"context"

	"service-courier-panel/internal/domain"
)

// courierAccounts defines storage operations required by the auth flow.
type courierAccounts interface {
	Create(ctx context.Context, c *domain.Courier) error
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	FindActiveByEmail(ctx context.Context, email string) (*domain.Courier, error)
	TouchLastLogin(ctx context.Context, id string) error
}

// tokenIssuer signs session tokens for authenticated couriers.
type tokenIssuer interface {
	Issue(userID string, role domain.Role) (string, error)
}

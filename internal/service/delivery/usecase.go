package delivery

import (
	"context"
	"strings"
	"time"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
)

// Page is one page of a courier's deliveries.
type Page struct {
	Orders []domain.Order
	Total  int64
	Pages  int64
}

// Service coordinates the courier-facing delivery workflow: listing,
// ownership-checked status updates and the statistics bundle.
type Service struct {
	repo             orderRepository
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a delivery Service.
func NewService(r orderRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// List returns one page of the courier's deliveries, newest first.
// The courier restriction in the filter is not overridable by callers.
func (s *Service) List(ctx context.Context, f domain.OrderFilter) (Page, error) {
	if strings.TrimSpace(f.CourierID) == "" {
		return Page{}, apperr.ErrUnauthorized
	}
	if f.Status != nil && !f.Status.Valid() {
		return Page{}, apperr.ErrInvalid
	}
	f = f.Normalize()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	orders, total, err := s.repo.ListByCourier(ctx, f)
	if err != nil {
		return Page{}, err
	}
	return Page{Orders: orders, Total: total, Pages: f.Pages(total)}, nil
}

func validateStatusUpdate(u *domain.StatusUpdate) error {
	if strings.TrimSpace(u.OrderID) == "" {
		return apperr.ErrInvalid
	}
	if !u.Status.Valid() {
		return apperr.ErrInvalid
	}
	if u.Notes != nil && strings.TrimSpace(*u.Notes) == "" {
		u.Notes = nil
	}
	return nil
}

// UpdateStatus applies a status change if and only if the caller is the
// courier assigned to the order, and the transition is allowed by the
// lifecycle graph. Returns the updated order with customer and items.
func (s *Service) UpdateStatus(ctx context.Context, u domain.StatusUpdate) (*domain.Order, error) {
	if err := validateStatusUpdate(&u); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	existing, err := s.repo.GetByID(ctx, u.OrderID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.ErrNotFound
	}
	if !existing.AssignedTo(u.CourierID) {
		return nil, apperr.ErrForbidden
	}
	if !existing.Status.CanTransition(u.Status) {
		return nil, apperr.ErrInvalid
	}

	if err := s.repo.ApplyStatusUpdate(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("delivery status updated",
		logx.String("event", "delivery_status_updated"),
		logx.String("order_id", u.OrderID),
		logx.String("courier_id", u.CourierID),
		logx.String("from", string(existing.Status)),
		logx.String("to", string(u.Status)),
	)

	updated, err := s.repo.GetDetailed(ctx, u.OrderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}
	return updated, nil
}

// Stats computes the courier's aggregation bundle.
func (s *Service) Stats(ctx context.Context, courierID string) (*domain.CourierStats, error) {
	if strings.TrimSpace(courierID) == "" {
		return nil, apperr.ErrUnauthorized
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repo.Stats(ctx, courierID, s.now())
}

package courier

import (
	"context"
	"strings"
	"time"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
)

// Service coordinates the courier presence workflow.
type Service struct {
	repo             courierRepository
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures a courier Service.
func NewService(r courierRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Get retrieves the courier's own record.
func (s *Service) Get(ctx context.Context, id string) (*domain.Courier, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.ErrUnauthorized
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

func validatePresence(u domain.PresenceUpdate) error {
	if strings.TrimSpace(u.CourierID) == "" {
		return apperr.ErrUnauthorized
	}
	if u.Latitude != nil && (*u.Latitude < -90 || *u.Latitude > 90) {
		return apperr.ErrInvalid
	}
	if u.Longitude != nil && (*u.Longitude < -180 || *u.Longitude > 180) {
		return apperr.ErrInvalid
	}
	return nil
}

// SetPresence writes the courier's online flag and coordinates.
// Last-seen is stamped on every update regardless of the online value.
func (s *Service) SetPresence(ctx context.Context, u domain.PresenceUpdate) (*domain.Presence, error) {
	if err := validatePresence(u); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.UpdatePresence(ctx, u)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}

	s.logger.Info("courier presence updated",
		logx.String("event", "courier_presence_updated"),
		logx.String("courier_id", u.CourierID),
		logx.Bool("is_online", p.IsOnline),
	)
	return p, nil
}

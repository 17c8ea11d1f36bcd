package handlers

import (
	"context"

	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/service/auth"
	"service-courier-panel/internal/service/courier"
	"service-courier-panel/internal/service/delivery"
)

type deliveryUsecase interface {
	List(ctx context.Context, f domain.OrderFilter) (delivery.Page, error)
	UpdateStatus(ctx context.Context, u domain.StatusUpdate) (*domain.Order, error)
	Stats(ctx context.Context, courierID string) (*domain.CourierStats, error)
}

// NewDeliveryUsecase wires a delivery.Service into a deliveryUsecase.
func NewDeliveryUsecase(svc *delivery.Service) deliveryUsecase {
	return svc
}

type courierUsecase interface {
	Get(ctx context.Context, id string) (*domain.Courier, error)
	SetPresence(ctx context.Context, u domain.PresenceUpdate) (*domain.Presence, error)
}

// NewCourierUsecase wires a courier.Service into a courierUsecase.
func NewCourierUsecase(svc *courier.Service) courierUsecase {
	return svc
}

type authUsecase interface {
	SignUp(ctx context.Context, in auth.SignUpInput) (*domain.Courier, error)
	SignIn(ctx context.Context, email, password string) (*auth.SignInResult, error)
}

// NewAuthUsecase wires an auth.Service into an authUsecase.
func NewAuthUsecase(svc *auth.Service) authUsecase {
	return svc
}

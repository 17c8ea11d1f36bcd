package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
)

const minPasswordLen = 6

// SignUpInput carries a courier registration request.
type SignUpInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	VehicleType     domain.VehicleType
	LicenseNumber   string
	Address         string
}

// SignInResult bundles the issued session token with the courier record.
type SignInResult struct {
	Token   string
	Courier *domain.Courier
}

// Service implements courier sign-up and sign-in. Passwords are always
// hashed with bcrypt before storage and verified on every sign-in.
type Service struct {
	repo             courierAccounts
	tokens           tokenIssuer
	bcryptCost       int
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates and configures an auth Service.
func NewService(r courierAccounts, tokens tokenIssuer, bcryptCost int, timeout time.Duration, logger logx.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             r,
		tokens:           tokens,
		bcryptCost:       bcryptCost,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateSignUp(in *SignUpInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	in.Address = strings.TrimSpace(in.Address)

	switch {
	case len(in.Name) < 2:
		return apperr.ErrInvalid
	case !domain.ValidateEmail(in.Email):
		return apperr.ErrInvalid
	case !domain.ValidatePhone(in.Phone):
		return apperr.ErrInvalid
	case len(in.Password) < minPasswordLen:
		return apperr.ErrInvalid
	case in.Password != in.ConfirmPassword:
		return apperr.ErrInvalid
	case !in.VehicleType.Valid():
		return apperr.ErrInvalid
	case len(in.LicenseNumber) < 5:
		return apperr.ErrInvalid
	case in.Address == "":
		return apperr.ErrInvalid
	}
	return nil
}

// SignUp registers a new courier account with a bcrypt password hash.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*domain.Courier, error) {
	if err := validateSignUp(&in); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	taken, err := s.repo.ExistsByEmailOrPhone(ctx, in.Email, in.Phone)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	c := &domain.Courier{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		PasswordHash:  string(hash),
		VehicleType:   in.VehicleType,
		LicenseNumber: in.LicenseNumber,
		Address:       in.Address,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("courier registered",
		logx.String("event", "courier_registered"),
		logx.String("courier_id", c.ID),
	)

	c.PasswordHash = ""
	return c, nil
}

// SignIn verifies credentials against the stored bcrypt hash and issues a
// session token. Credential failures are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.ErrUnauthorized
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil || c.PasswordHash == "" {
		return nil, apperr.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrUnauthorized
	}

	if err := s.repo.TouchLastLogin(ctx, c.ID); err != nil {
		// sign-in still succeeds; the stamp is best effort
		s.logger.Warn("last login stamp failed",
			logx.String("courier_id", c.ID),
			logx.Any("err", err),
		)
	}

	token, err := s.tokens.Issue(c.ID, domain.RoleCourier)
	if err != nil {
		return nil, err
	}

	c.PasswordHash = ""
	return &SignInResult{Token: token, Courier: c}, nil
}

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
	"service-courier-panel/internal/service/auth"
)

type stubAccounts struct {
	createFn func(context.Context, *domain.Courier) error
	existsFn func(context.Context, string, string) (bool, error)
	findFn   func(context.Context, string) (*domain.Courier, error)
	touchFn  func(context.Context, string) error
}

func (s *stubAccounts) Create(ctx context.Context, c *domain.Courier) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, c)
}

func (s *stubAccounts) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, email, phone)
}

func (s *stubAccounts) FindActiveByEmail(ctx context.Context, email string) (*domain.Courier, error) {
	if s.findFn == nil {
		return nil, nil
	}
	return s.findFn(ctx, email)
}

func (s *stubAccounts) TouchLastLogin(ctx context.Context, id string) error {
	if s.touchFn == nil {
		return nil
	}
	return s.touchFn(ctx, id)
}

type stubTokens struct {
	issueFn func(string, domain.Role) (string, error)
}

func (s stubTokens) Issue(userID string, role domain.Role) (string, error) {
	if s.issueFn == nil {
		return "token", nil
	}
	return s.issueFn(userID, role)
}

func newTestService(repo *stubAccounts, tokens stubTokens) *auth.Service {
	return auth.NewService(repo, tokens, bcrypt.MinCost, 3*time.Second, logx.Nop())
}

func validSignUp() auth.SignUpInput {
	return auth.SignUpInput{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+15551234567",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		VehicleType:     domain.VehicleBicycle,
		LicenseNumber:   "LIC-123",
		Address:         "1 Main St",
	}
}

func TestService_SignUp_Success(t *testing.T) {
	t.Parallel()

	var created *domain.Courier
	repo := &stubAccounts{
		createFn: func(_ context.Context, c *domain.Courier) error {
			created = &domain.Courier{}
			*created = *c
			return nil
		},
	}
	svc := newTestService(repo, stubTokens{})

	got, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	require.NotNil(t, created)

	require.NotEmpty(t, created.ID)
	require.Equal(t, "jane@example.com", created.Email)
	require.True(t, created.IsActive)
	require.NotEmpty(t, created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))

	// the returned record never carries the hash
	require.Empty(t, got.PasswordHash)
}

func TestService_SignUp_NormalizesEmail(t *testing.T) {
	t.Parallel()

	repo := &stubAccounts{
		existsFn: func(_ context.Context, email, _ string) (bool, error) {
			require.Equal(t, "jane@example.com", email)
			return false, nil
		},
	}
	svc := newTestService(repo, stubTokens{})

	in := validSignUp()
	in.Email = "  Jane@Example.COM "
	_, err := svc.SignUp(context.Background(), in)
	require.NoError(t, err)
}

func TestService_SignUp_Validation(t *testing.T) {
	t.Parallel()

	mutations := map[string]func(*auth.SignUpInput){
		"short name":        func(in *auth.SignUpInput) { in.Name = "J" },
		"bad email":         func(in *auth.SignUpInput) { in.Email = "nope" },
		"bad phone":         func(in *auth.SignUpInput) { in.Phone = "123" },
		"short password":    func(in *auth.SignUpInput) { in.Password, in.ConfirmPassword = "abc", "abc" },
		"password mismatch": func(in *auth.SignUpInput) { in.ConfirmPassword = "different" },
		"bad vehicle":       func(in *auth.SignUpInput) { in.VehicleType = "skateboard" },
		"short license":     func(in *auth.SignUpInput) { in.LicenseNumber = "12" },
		"empty address":     func(in *auth.SignUpInput) { in.Address = "  " },
	}

	for name, mutate := range mutations {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(&stubAccounts{
				createFn: func(context.Context, *domain.Courier) error {
					t.Fatal("Create must not be called")
					return nil
				},
			}, stubTokens{})

			in := validSignUp()
			mutate(&in)
			_, err := svc.SignUp(context.Background(), in)
			require.ErrorIs(t, err, apperr.ErrInvalid)
		})
	}
}

func TestService_SignUp_DuplicateConflict(t *testing.T) {
	t.Parallel()

	repo := &stubAccounts{
		existsFn: func(context.Context, string, string) (bool, error) { return true, nil },
	}
	svc := newTestService(repo, stubTokens{})

	_, err := svc.SignUp(context.Background(), validSignUp())
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func signedInCourier(t *testing.T, password string) *domain.Courier {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.Courier{
		ID:           "c1",
		Name:         "Jane",
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}
}

func TestService_SignIn_Success(t *testing.T) {
	t.Parallel()

	touched := false
	repo := &stubAccounts{
		findFn: func(_ context.Context, email string) (*domain.Courier, error) {
			require.Equal(t, "jane@example.com", email)
			return signedInCourier(t, "secret1"), nil
		},
		touchFn: func(_ context.Context, id string) error {
			touched = true
			require.Equal(t, "c1", id)
			return nil
		},
	}
	tokens := stubTokens{
		issueFn: func(userID string, role domain.Role) (string, error) {
			require.Equal(t, "c1", userID)
			require.Equal(t, domain.RoleCourier, role)
			return "signed-token", nil
		},
	}
	svc := newTestService(repo, tokens)

	res, err := svc.SignIn(context.Background(), " Jane@Example.com ", "secret1")
	require.NoError(t, err)
	require.True(t, touched)
	require.Equal(t, "signed-token", res.Token)
	require.Empty(t, res.Courier.PasswordHash)
}

func TestService_SignIn_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := &stubAccounts{
		findFn: func(context.Context, string) (*domain.Courier, error) {
			return signedInCourier(t, "secret1"), nil
		},
	}
	svc := newTestService(repo, stubTokens{})

	_, err := svc.SignIn(context.Background(), "jane@example.com", "wrong")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestService_SignIn_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubAccounts{}, stubTokens{})

	_, err := svc.SignIn(context.Background(), "ghost@example.com", "secret1")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestService_SignIn_EmptyCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubAccounts{}, stubTokens{})

	_, err := svc.SignIn(context.Background(), "", "secret1")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.SignIn(context.Background(), "jane@example.com", "")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestService_SignIn_TouchFailureIsBestEffort(t *testing.T) {
	t.Parallel()

	repo := &stubAccounts{
		findFn: func(context.Context, string) (*domain.Courier, error) {
			return signedInCourier(t, "secret1"), nil
		},
		touchFn: func(context.Context, string) error { return errors.New("boom") },
	}
	svc := newTestService(repo, stubTokens{})

	res, err := svc.SignIn(context.Background(), "jane@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
}

//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/repository"
)

type CourierRepositorySuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *repository.CourierRepo
}

func (s *CourierRepositorySuite) SetupSuite() {
	s.Require().NotNil(tcPool, "tcPool must be initialized in TestMain")

	s.pool = tcPool
	s.repo = repository.NewCourierRepo(tcPool)
}

func (s *CourierRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), `TRUNCATE users RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *CourierRepositorySuite) newCourier(name string) *domain.Courier {
	id := uuid.NewString()
	return &domain.Courier{
		ID:            id,
		Name:          name,
		Email:         fmt.Sprintf("%s@example.com", id),
		Phone:         "+7" + id[:10],
		PasswordHash:  "$2a$04$fakehashfakehashfakehash",
		VehicleType:   domain.VehicleBicycle,
		LicenseNumber: "AB-123",
		Address:       "Lenina 1",
	}
}

func (s *CourierRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()

	in := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, in))

	got, err := s.repo.Get(ctx, in.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(in.ID, got.ID)
	s.Equal(in.Name, got.Name)
	s.Equal(in.Email, got.Email)
	s.Equal(in.Phone, got.Phone)
	s.Equal(in.PasswordHash, got.PasswordHash)
	s.Equal(in.VehicleType, got.VehicleType)
	s.Equal(in.LicenseNumber, got.LicenseNumber)
	s.True(got.IsActive)
	s.False(got.IsOnline)
	s.Nil(got.LastSeen)
}

func (s *CourierRepositorySuite) TestCreate_DuplicateEmail() {
	ctx := context.Background()

	first := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, first))

	second := s.newCourier("Artem2")
	second.Email = first.Email

	err := s.repo.Create(ctx, second)
	s.ErrorIs(err, apperr.ErrConflict, "expected conflict for duplicate email")
}

func (s *CourierRepositorySuite) TestCreate_DuplicatePhone() {
	ctx := context.Background()

	first := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, first))

	second := s.newCourier("Artem2")
	second.Phone = first.Phone

	err := s.repo.Create(ctx, second)
	s.ErrorIs(err, apperr.ErrConflict, "expected conflict for duplicate phone")
}

func (s *CourierRepositorySuite) TestGet_NotFound() {
	ctx := context.Background()

	got, err := s.repo.Get(ctx, uuid.NewString())
	s.Require().NoError(err)
	s.Require().Nil(got)
}

func (s *CourierRepositorySuite) TestGet_IgnoresOtherRoles() {
	ctx := context.Background()

	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, phone, role)
		VALUES ($1, 'Customer', $2, $3, 'customer')
	`, id, id+"@example.com", "+7"+id[:10])
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().Nil(got)
}

func (s *CourierRepositorySuite) TestFindActiveByEmail() {
	ctx := context.Background()

	in := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, in))

	got, err := s.repo.FindActiveByEmail(ctx, in.Email)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(in.ID, got.ID)

	none, err := s.repo.FindActiveByEmail(ctx, "missing@example.com")
	s.Require().NoError(err)
	s.Nil(none)
}

func (s *CourierRepositorySuite) TestFindActiveByEmail_SkipsDeactivated() {
	ctx := context.Background()

	in := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, in))

	_, err := s.pool.Exec(ctx, `UPDATE users SET is_active = FALSE WHERE id = $1`, in.ID)
	s.Require().NoError(err)

	got, err := s.repo.FindActiveByEmail(ctx, in.Email)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *CourierRepositorySuite) TestFirstActive_ReturnsOldest() {
	ctx := context.Background()

	older := s.newCourier("Older")
	newer := s.newCourier("Newer")
	s.Require().NoError(s.repo.Create(ctx, older))
	s.Require().NoError(s.repo.Create(ctx, newer))

	_, err := s.pool.Exec(ctx,
		`UPDATE users SET created_at = now() - interval '1 day' WHERE id = $1`, older.ID)
	s.Require().NoError(err)

	got, err := s.repo.FirstActive(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(older.ID, got.ID)
}

func (s *CourierRepositorySuite) TestExistsByEmailOrPhone() {
	ctx := context.Background()

	in := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, in))

	exists, err := s.repo.ExistsByEmailOrPhone(ctx, in.Email, "+79999999999")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsByEmailOrPhone(ctx, "other@example.com", in.Phone)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsByEmailOrPhone(ctx, "other@example.com", "+79999999999")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *CourierRepositorySuite) TestUpdatePresence_OnlineWithCoordinates() {
	ctx := context.Background()

	in := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, in))

	lat, lon := 55.75, 37.62
	p, err := s.repo.UpdatePresence(ctx, domain.PresenceUpdate{
		CourierID: in.ID,
		IsOnline:  true,
		Latitude:  &lat,
		Longitude: &lon,
	})
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.True(p.IsOnline)
	s.Require().NotNil(p.LastSeen)

	got, err := s.repo.Get(ctx, in.ID)
	s.Require().NoError(err)
	s.True(got.IsOnline)
	s.Require().NotNil(got.LastLatitude)
	s.InDelta(lat, *got.LastLatitude, 1e-9)
	s.Require().NotNil(got.LastLongitude)
	s.InDelta(lon, *got.LastLongitude, 1e-9)
}

func (s *CourierRepositorySuite) TestUpdatePresence_OfflineKeepsCoordinates() {
	ctx := context.Background()

	in := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, in))

	lat, lon := 55.75, 37.62
	_, err := s.repo.UpdatePresence(ctx, domain.PresenceUpdate{
		CourierID: in.ID,
		IsOnline:  true,
		Latitude:  &lat,
		Longitude: &lon,
	})
	s.Require().NoError(err)

	p, err := s.repo.UpdatePresence(ctx, domain.PresenceUpdate{
		CourierID: in.ID,
		IsOnline:  false,
	})
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.False(p.IsOnline)

	got, err := s.repo.Get(ctx, in.ID)
	s.Require().NoError(err)
	s.False(got.IsOnline)
	s.Require().NotNil(got.LastLatitude)
	s.InDelta(lat, *got.LastLatitude, 1e-9)
}

func (s *CourierRepositorySuite) TestUpdatePresence_UnknownCourier() {
	ctx := context.Background()

	p, err := s.repo.UpdatePresence(ctx, domain.PresenceUpdate{
		CourierID: uuid.NewString(),
		IsOnline:  true,
	})
	s.Require().NoError(err)
	s.Nil(p)
}

func (s *CourierRepositorySuite) TestTouchLastLogin() {
	ctx := context.Background()

	in := s.newCourier("Artem")
	s.Require().NoError(s.repo.Create(ctx, in))

	s.Require().NoError(s.repo.TouchLastLogin(ctx, in.ID))

	got, err := s.repo.Get(ctx, in.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.LastLogin)
}

func (s *CourierRepositorySuite) TestGet_ContextCanceled_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := s.repo.Get(ctx, uuid.NewString())
	s.Nil(got)
	s.Error(err)
}

func (s *CourierRepositorySuite) TestCreate_ContextCanceled_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.repo.Create(ctx, s.newCourier("Canceled"))
	s.Error(err)
	s.ErrorIs(err, context.Canceled)
}

func TestCourierRepositorySuite(t *testing.T) {
	suite.Run(t, new(CourierRepositorySuite))
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
)

// CourierRepo represents courier repository over the users table.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

const courierColumns = `id, name, email, phone, COALESCE(password_hash, ''),
       COALESCE(vehicle_type, ''), COALESCE(license_number, ''), COALESCE(address, ''),
       rating, is_active, is_online, last_seen, last_latitude, last_longitude, last_login`

func (r *CourierRepo) scanCourier(row interface{ Scan(...any) error }) (*domain.Courier, error) {
	var c domain.Courier
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.PasswordHash,
		&c.VehicleType, &c.LicenseNumber, &c.Address,
		&c.Rating, &c.IsActive, &c.IsOnline, &c.LastSeen,
		&c.LastLatitude, &c.LastLongitude, &c.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get - returns courier by its ID. Returns nil when no courier exists.
func (r *CourierRepo) Get(ctx context.Context, id string) (*domain.Courier, error) {
	c, err := r.scanCourier(r.db.QueryRow(ctx,
		`SELECT `+courierColumns+` FROM users WHERE id = $1 AND role = 'courier'`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %s: %w", id, err)
	}
	return c, nil
}

// FindActiveByEmail returns the active courier with the given email,
// or nil when none matches.
func (r *CourierRepo) FindActiveByEmail(ctx context.Context, email string) (*domain.Courier, error) {
	c, err := r.scanCourier(r.db.QueryRow(ctx,
		`SELECT `+courierColumns+`
         FROM users
         WHERE email = $1 AND role = 'courier' AND is_active`, email))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find courier by email: %w", err)
	}
	return c, nil
}

// FirstActive returns the oldest active courier. Used only by the
// explicitly enabled development fallback.
func (r *CourierRepo) FirstActive(ctx context.Context) (*domain.Courier, error) {
	c, err := r.scanCourier(r.db.QueryRow(ctx,
		`SELECT `+courierColumns+`
         FROM users
         WHERE role = 'courier' AND is_active
         ORDER BY created_at
         LIMIT 1`))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find first active courier: %w", err)
	}
	return c, nil
}

// Create - creates a new courier account.
func (r *CourierRepo) Create(ctx context.Context, c *domain.Courier) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, email, phone, password_hash, role,
                           vehicle_type, license_number, address, is_active, is_online)
        VALUES ($1, $2, $3, $4, $5, 'courier', $6, $7, $8, TRUE, FALSE)
    `, c.ID, c.Name, c.Email, c.Phone, c.PasswordHash,
		c.VehicleType, c.LicenseNumber, c.Address)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create courier: %w", err)
	}
	return nil
}

// ExistsByEmailOrPhone reports whether any user already claims the
// email or the phone number.
func (r *CourierRepo) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR phone = $2)`,
		email, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email/phone uniqueness: %w", err)
	}
	return exists, nil
}

// UpdatePresence writes the online flag, stamps last_seen and keeps the
// last reported coordinates. Returns nil when the courier does not exist.
func (r *CourierRepo) UpdatePresence(ctx context.Context, u domain.PresenceUpdate) (*domain.Presence, error) {
	var p domain.Presence
	err := r.db.QueryRow(ctx, `
        UPDATE users
        SET
            is_online      = $2,
            last_seen      = now(),
            last_latitude  = COALESCE($3, last_latitude),
            last_longitude = COALESCE($4, last_longitude),
            updated_at     = now()
        WHERE id = $1 AND role = 'courier'
        RETURNING is_online, last_seen
    `, u.CourierID, u.IsOnline, u.Latitude, u.Longitude).Scan(&p.IsOnline, &p.LastSeen)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update courier %s presence: %w", u.CourierID, err)
	}
	return &p, nil
}

// TouchLastLogin stamps the courier's last successful sign-in.
func (r *CourierRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch courier %s last login: %w", id, err)
	}
	return nil
}

package domain

import (
	"regexp"
	"time"
)

type (
	// Role represents a platform user's role.
	Role string
	// VehicleType represents the vehicle a courier delivers with.
	VehicleType string
)

// List of possible user roles
const (
	RoleCourier  Role = "courier"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// List of possible courier vehicle types
const (
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleCar        VehicleType = "car"
	VehicleBicycle    VehicleType = "bicycle"
	VehicleVan        VehicleType = "van"
)

var allowedVehicleTypes = [...]VehicleType{
	VehicleMotorcycle, VehicleCar, VehicleBicycle, VehicleVan,
}

// Valid checks if the VehicleType is valid
func (t VehicleType) Valid() bool {
	for _, v := range allowedVehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Courier represents a platform user with the courier role.
type Courier struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PasswordHash  string
	VehicleType   VehicleType
	LicenseNumber string
	Address       string
	Rating        *float64
	IsActive      bool
	IsOnline      bool
	LastSeen      *time.Time
	LastLatitude  *float64
	LastLongitude *float64
	LastLogin     *time.Time
}

// PresenceUpdate carries a courier's own online/offline report.
// Coordinates are optional; a nil field leaves the stored value untouched.
type PresenceUpdate struct {
	CourierID string
	IsOnline  bool
	Latitude  *float64
	Longitude *float64
}

// Presence is the persisted outcome of a presence update.
type Presence struct {
	IsOnline bool
	LastSeen time.Time
}

var (
	reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	rePhone = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// ValidateEmail validates the email format.
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}

// ValidatePhone validates the phone number format.
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}

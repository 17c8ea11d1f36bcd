package handlers

import "service-courier-panel/internal/domain"

type signUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	VehicleType     string `json:"vehicleType"`
	LicenseNumber   string `json:"licenseNumber"`
	Address         string `json:"address"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type courierProfileDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicleType"`
}

type signUpResponse struct {
	Message string            `json:"message"`
	Courier courierProfileDTO `json:"courier"`
}

type signInResponse struct {
	Token   string            `json:"token"`
	Courier courierProfileDTO `json:"courier"`
}

func courierToProfileDTO(c *domain.Courier) courierProfileDTO {
	return courierProfileDTO{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		VehicleType: string(c.VehicleType),
	}
}

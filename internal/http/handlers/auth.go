package handlers

import (
	"errors"
	"net/http"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
	"service-courier-panel/internal/service/auth"
)

// AuthHandler handles courier registration and sign-in.
type AuthHandler struct {
	usecase authUsecase
	logger  logx.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger logx.Logger, uc authUsecase) *AuthHandler {
	return &AuthHandler{usecase: uc, logger: logger}
}

// SignUp handles POST /auth/courier/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	c, err := h.usecase.SignUp(r.Context(), auth.SignUpInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		VehicleType:     domain.VehicleType(req.VehicleType),
		LicenseNumber:   req.LicenseNumber,
		Address:         req.Address,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusCreated, signUpResponse{
			Message: "courier registered",
			Courier: courierToProfileDTO(c),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid registration data")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "email or phone already registered")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// SignIn handles POST /auth/courier/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.SignIn(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, signInResponse{
			Token:   res.Token,
			Courier: courierToProfileDTO(res.Courier),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid credentials payload")
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(h.logger, w, r, http.StatusUnauthorized, "invalid email or password")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

package handlers

import (
	"errors"
	"net/http"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
	authmw "service-courier-panel/internal/http/middleware"
	"service-courier-panel/internal/logx"
)

// CourierHandler handles the courier's own presence endpoints.
type CourierHandler struct {
	usecase courierUsecase
	logger  logx.Logger
}

// NewCourierHandler creates a new CourierHandler.
func NewCourierHandler(logger logx.Logger, uc courierUsecase) *CourierHandler {
	return &CourierHandler{usecase: uc, logger: logger}
}

// Status handles GET /courier/status.
func (h *CourierHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := authmw.CourierFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	c, err := h.usecase.Get(r.Context(), id.CourierID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, courierStatusResponse{
			IsOnline: c.IsOnline,
			LastSeen: c.LastSeen,
			Name:     c.Name,
			Email:    c.Email,
		})
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// SetStatus handles PUT /courier/status.
func (h *CourierHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := authmw.CourierFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req setPresenceRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p, err := h.usecase.SetPresence(r.Context(), domain.PresenceUpdate{
		CourierID: id.CourierID,
		IsOnline:  req.IsOnline,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, setPresenceResponse{
			Success:  true,
			IsOnline: p.IsOnline,
			LastSeen: &p.LastSeen,
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid coordinates")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "courier not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

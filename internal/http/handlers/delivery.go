package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
	"service-courier-panel/internal/logx"
	"service-courier-panel/internal/metrics"
	authmw "service-courier-panel/internal/http/middleware"
)

// DeliveryHandler handles the courier's delivery endpoints.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// List handles GET /courier/deliveries.
// Supported query parameters: status, search, page, limit.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := authmw.CourierFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	f, err := filterFromQuery(r, id.CourierID)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.usecase.List(r.Context(), f)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, ordersToDeliveriesResponse(page.Orders, f.Normalize(), page.Total, page.Pages))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid filter")
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// UpdateStatus handles PUT /courier/deliveries.
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := authmw.CourierFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "orderId is required")
		return
	}

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
		return
	}

	order, err := h.usecase.UpdateStatus(r.Context(), domain.StatusUpdate{
		OrderID:               orderID,
		CourierID:             id.CourierID,
		Status:                status,
		Notes:                 req.Notes,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
	})
	switch {
	case err == nil:
		metrics.DeliveryStatusUpdatesTotal.WithLabelValues(string(status)).Inc()
		writeJSON(h.logger, w, r, http.StatusOK, updateStatusResponse{
			Message:  "delivery status updated",
			Delivery: orderToDeliveryDTO(*order),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status transition")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery not found")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "delivery belongs to another courier")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Stats handles GET /courier/stats.
func (h *DeliveryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := authmw.CourierFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.usecase.Stats(r.Context(), id.CourierID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, statsToResponse(*stats))
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

func filterFromQuery(r *http.Request, courierID string) (domain.OrderFilter, error) {
	q := r.URL.Query()

	f := domain.OrderFilter{
		CourierID: courierID,
		Search:    q.Get("search"),
	}

	if raw := strings.TrimSpace(q.Get("status")); raw != "" && raw != domain.StatusAll {
		status, ok := domain.ParseOrderStatus(raw)
		if !ok {
			return domain.OrderFilter{}, errors.New("invalid status")
		}
		f.Status = &status
	}

	var err error
	if f.Page, err = positiveIntParam(q.Get("page")); err != nil {
		return domain.OrderFilter{}, errors.New("invalid page")
	}
	if f.Limit, err = positiveIntParam(q.Get("limit")); err != nil {
		return domain.OrderFilter{}, errors.New("invalid limit")
	}
	return f, nil
}

func positiveIntParam(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return n, nil
}

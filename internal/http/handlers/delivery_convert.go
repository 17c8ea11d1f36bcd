package handlers

import (
	"fmt"

	"service-courier-panel/internal/domain"
)

// fallback shown where the order snapshot is missing contact data
const notAvailable = "N/A"

func orderToDeliveryDTO(o domain.Order) deliveryDTO {
	dto := deliveryDTO{
		ID:                    o.ID,
		Status:                string(o.Status),
		Customer:              customerDTO{Name: notAvailable, Email: notAvailable, Phone: notAvailable},
		Items:                 make([]deliveryItemDTO, 0, len(o.Items)),
		ShippingAddress:       o.ShippingAddress,
		TotalAmount:           o.TotalAmount,
		Notes:                 o.Notes,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		DeliveredAt:           o.DeliveredAt,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
	if dto.ShippingAddress == "" {
		dto.ShippingAddress = notAvailable
	}
	if c := o.Customer; c != nil {
		if c.Name != "" {
			dto.Customer.Name = c.Name
		}
		if c.Email != "" {
			dto.Customer.Email = c.Email
		}
		if c.Phone != "" {
			dto.Customer.Phone = c.Phone
		}
	}
	for _, it := range o.Items {
		dto.Items = append(dto.Items, deliveryItemDTO{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total(),
		})
	}
	return dto
}

func ordersToDeliveriesResponse(orders []domain.Order, f domain.OrderFilter, total, pages int64) listDeliveriesResponse {
	res := listDeliveriesResponse{
		Deliveries: make([]deliveryDTO, 0, len(orders)),
		Pagination: paginationDTO{
			Page:  f.Page,
			Limit: f.Limit,
			Total: total,
			Pages: pages,
		},
	}
	for _, o := range orders {
		res.Deliveries = append(res.Deliveries, orderToDeliveryDTO(o))
	}
	return res
}

func statsToResponse(s domain.CourierStats) statsResponse {
	res := statsResponse{
		TotalDeliveries:     s.TotalDeliveries,
		PendingDeliveries:   s.PendingDeliveries,
		CompletedDeliveries: s.CompletedDeliveries,
		TodayDeliveries:     s.TodayDeliveries,
		TotalEarnings:       s.TotalEarnings,
		AverageRating:       s.AverageRating,
		DeliveriesByStatus:  make([]statusCountDTO, 0, len(s.DeliveriesByStatus)),
		RecentDeliveries:    s.RecentDeliveries,
		MonthlyDeliveries:   make([]monthlyCountDTO, 0, len(s.MonthlyDeliveries)),
	}
	if s.AverageDeliveryTime != nil {
		m := s.AverageDeliveryTime.Minutes()
		res.AverageDeliveryTimeMinutes = &m
	}
	for _, sc := range s.DeliveriesByStatus {
		res.DeliveriesByStatus = append(res.DeliveriesByStatus, statusCountDTO{
			Status: string(sc.Status),
			Count:  sc.Count,
		})
	}
	for _, mc := range s.MonthlyDeliveries {
		res.MonthlyDeliveries = append(res.MonthlyDeliveries, monthlyCountDTO{
			Month: fmt.Sprintf("%04d-%02d", mc.Month.Year(), int(mc.Month.Month())),
			Count: mc.Count,
		})
	}
	return res
}

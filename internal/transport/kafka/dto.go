package kafka

import (
	"strings"
	"time"

	"service-courier-panel/internal/service/orders"
)

// EventDTO is the wire form of an order event.
type EventDTO struct {
	Type            string         `json:"type"`
	OrderID         string         `json:"order_id"`
	CourierID       *string        `json:"courier_id,omitempty"`
	Customer        *CustomerDTO   `json:"customer,omitempty"`
	Status          string         `json:"status"`
	ShippingAddress string         `json:"shipping_address"`
	TotalAmount     float64        `json:"total_amount"`
	Notes           string         `json:"notes,omitempty"`
	Items           []EventItemDTO `json:"items,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// CustomerDTO is the wire form of the order's customer snapshot.
type CustomerDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// EventItemDTO is the wire form of a single order line item.
type EventItemDTO struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	ev := orders.Event{
		Type:            strings.TrimSpace(dto.Type),
		OrderID:         strings.TrimSpace(dto.OrderID),
		CourierID:       dto.CourierID,
		Status:          strings.TrimSpace(dto.Status),
		ShippingAddress: dto.ShippingAddress,
		TotalAmount:     dto.TotalAmount,
		Notes:           dto.Notes,
		CreatedAt:       dto.CreatedAt,
	}
	if dto.Customer != nil {
		ev.Customer = &orders.Customer{
			ID:    dto.Customer.ID,
			Name:  dto.Customer.Name,
			Email: dto.Customer.Email,
			Phone: dto.Customer.Phone,
		}
	}
	for _, it := range dto.Items {
		ev.Items = append(ev.Items, orders.EventItem{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return ev
}

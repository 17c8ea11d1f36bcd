package orders

import "time"

// Event types emitted by the commerce platform's order stream
const (
	EventCreated   = "created"
	EventUpdated   = "updated"
	EventCancelled = "cancelled"
	EventDeleted   = "deleted"
)

// Event is a single order event carrying a full order snapshot.
type Event struct {
	Type            string      `json:"type"`
	OrderID         string      `json:"order_id"`
	CourierID       *string     `json:"courier_id,omitempty"`
	Customer        *Customer   `json:"customer,omitempty"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	TotalAmount     float64     `json:"total_amount"`
	Notes           string      `json:"notes,omitempty"`
	Items           []EventItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Customer is the order's customer contact snapshot.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// EventItem is one ordered line item in the snapshot.
type EventItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

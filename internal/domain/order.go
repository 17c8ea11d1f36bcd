package domain

import "time"

// Order - struct representing a customer order handed to a courier for delivery.
// CourierID is nil until a courier is attached by the assignment flow.
type Order struct {
	ID                    string
	CourierID             *string
	CustomerID            string
	Customer              *Customer
	Items                 []OrderItem
	Status                OrderStatus
	ShippingAddress       string
	TotalAmount           float64
	Notes                 string
	EstimatedDeliveryTime *time.Time
	DeliveredAt           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// OrderItem is a single ordered line item.
type OrderItem struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	Price       float64
}

// Total returns the line item total.
func (i OrderItem) Total() float64 {
	return float64(i.Quantity) * i.Price
}

// Customer carries the contact fields exposed to the courier.
type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// AssignedTo reports whether the order is assigned to the given courier.
func (o *Order) AssignedTo(courierID string) bool {
	return o.CourierID != nil && *o.CourierID == courierID
}

// StatusUpdate carries a courier's status change request for one order.
// Nil optional fields mean "keep the stored value".
type StatusUpdate struct {
	OrderID               string
	CourierID             string
	Status                OrderStatus
	Notes                 *string
	EstimatedDeliveryTime *time.Time
}

package handlers

import "time"

type customerDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type deliveryItemDTO struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type deliveryDTO struct {
	ID                    string            `json:"id"`
	Status                string            `json:"status"`
	Customer              customerDTO       `json:"customer"`
	Items                 []deliveryItemDTO `json:"items"`
	ShippingAddress       string            `json:"shippingAddress"`
	TotalAmount           float64           `json:"totalAmount"`
	Notes                 string            `json:"notes,omitempty"`
	EstimatedDeliveryTime *time.Time        `json:"estimatedDeliveryTime,omitempty"`
	DeliveredAt           *time.Time        `json:"deliveredAt,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}

type paginationDTO struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type listDeliveriesResponse struct {
	Deliveries []deliveryDTO `json:"deliveries"`
	Pagination paginationDTO `json:"pagination"`
}

type updateStatusRequest struct {
	OrderID               string     `json:"orderId"`
	Status                string     `json:"status"`
	Notes                 *string    `json:"notes,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
}

type updateStatusResponse struct {
	Message  string      `json:"message"`
	Delivery deliveryDTO `json:"delivery"`
}

type statusCountDTO struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type monthlyCountDTO struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type statsResponse struct {
	TotalDeliveries            int64             `json:"totalDeliveries"`
	PendingDeliveries          int64             `json:"pendingDeliveries"`
	CompletedDeliveries        int64             `json:"completedDeliveries"`
	TodayDeliveries            int64             `json:"todayDeliveries"`
	TotalEarnings              float64           `json:"totalEarnings"`
	AverageRating              *float64          `json:"averageRating"`
	AverageDeliveryTimeMinutes *float64          `json:"averageDeliveryTimeMinutes"`
	DeliveriesByStatus         []statusCountDTO  `json:"deliveriesByStatus"`
	RecentDeliveries           int64             `json:"recentDeliveries"`
	MonthlyDeliveries          []monthlyCountDTO `json:"monthlyDeliveries"`
}

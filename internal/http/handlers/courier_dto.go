package handlers

import "time"

type courierStatusResponse struct {
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
}

type setPresenceRequest struct {
	IsOnline  bool     `json:"isOnline"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type setPresenceResponse struct {
	Success  bool       `json:"success"`
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen"`
}

package dto

import "time"

// BookingRequest is the booking form payload.
type BookingRequest struct {
	Name          string `json:"name" validate:"required,max=120"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=7,max=20"`
	Service       string `json:"service" validate:"required"`
	PreferredDate string `json:"preferred_date"`
	Message       string `json:"message" validate:"max=2000"`
}

// BookingResponse acknowledges a stored booking.
type BookingResponse struct {
	ID            string     `json:"id"`
	Service       string     `json:"service"`
	Status        string     `json:"status"`
	PreferredDate *time.Time `json:"preferred_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

package domain

import "time"

// BookingStatus tracks a consultation request.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a consultation request submitted through the booking form.
type Booking struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Service       string
	PreferredDate *time.Time
	Message       string
	Language      Language
	Status        BookingStatus
	CreatedAt     time.Time
}

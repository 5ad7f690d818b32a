package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated    EventType = "staff_created"
	EventStaffRollback   EventType = "staff_rollback"
	EventBookingReceived EventType = "booking_received"
)

// Actor says how a request was authorized.
type Actor struct {
	Method  string  `json:"method"`
	StaffID *string `json:"staff_id,omitempty"`
}

// Event is emitted by services after a state change on the backend.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with an id and time.
func New(eventType EventType, subjectID string, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// StaffCreatedPayload payload.
type StaffCreatedPayload struct {
	Email  string `json:"email"`
	RoleID string `json:"role_id"`
	Route  string `json:"route"`
}

// StaffRollbackPayload records a compensating identity deletion.
type StaffRollbackPayload struct {
	Email       string `json:"email"`
	InsertError string `json:"insert_error"`
	RolledBack  bool   `json:"rolled_back"`
	DeleteError string `json:"delete_error,omitempty"`
}

// BookingReceivedPayload payload.
type BookingReceivedPayload struct {
	Service  string `json:"service"`
	Language string `json:"language"`
}

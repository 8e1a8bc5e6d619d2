package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMechanicRequestCreated EventType = "mechanic_request_created"
	EventMechanicRequestUpdated EventType = "mechanic_request_updated"
	EventCarWashBookingCreated  EventType = "carwash_booking_created"
	EventPaymentRecorded        EventType = "payment_recorded"
	EventApplicationSubmitted   EventType = "job_application_submitted"
)

// Event represents a domain event emitted by services. Username identifies
// the account the event concerns, not necessarily the actor.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Username  string      `json:"username"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MechanicRequestPayload payload.
type MechanicRequestPayload struct {
	RequestID   int64    `json:"request_id"`
	Location    string   `json:"location"`
	Status      string   `json:"status"`
	MechanicID  *int64   `json:"mechanic_id,omitempty"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// CarWashBookingPayload payload.
type CarWashBookingPayload struct {
	BookingID    int64    `json:"booking_id"`
	Location     string   `json:"location"`
	Date         string   `json:"date"`
	ServiceTypes []string `json:"service_types"`
}

// PaymentRecordedPayload payload.
type PaymentRecordedPayload struct {
	PaymentID   int64   `json:"payment_id"`
	Reference   string  `json:"reference"`
	Amount      float64 `json:"amount"`
	PlatformFee float64 `json:"platform_fee"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID int64  `json:"application_id"`
	ApplicantName string `json:"applicant_name"`
	Email         string `json:"email"`
}

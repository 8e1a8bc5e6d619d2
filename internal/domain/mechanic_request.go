package domain

import "time"

// RequestStatus enumerates lifecycle states shared by mechanic requests and
// car-wash bookings.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// MechanicRequest is a client's call-out for roadside mechanic service.
type MechanicRequest struct {
	ID          int64
	Username    string
	Description string
	Location    string
	MechanicID  *int64
	Latitude    *float64
	Longitude   *float64
	Date        time.Time
	Status      RequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

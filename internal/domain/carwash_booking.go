package domain

import "time"

// CarWashBooking is a client's booking at a car-wash operator. CarWashID is
// empty until an operator takes the booking.
type CarWashBooking struct {
	ID             int64
	ClientUsername string
	CarWashID      *string
	CarPlate       string
	CarType        string
	CarDescription string
	Location       string
	Date           string // yyyy-MM-dd
	Status         RequestStatus
	ServicePrice   *float64
	ServiceTypes   []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

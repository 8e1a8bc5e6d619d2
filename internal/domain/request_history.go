package domain

import "time"

// RequestHistory is an archived service request entry kept per username.
type RequestHistory struct {
	ID          int64
	Username    string
	Description string
	Location    string
	Date        time.Time
	Status      RequestStatus
	CreatedAt   time.Time
}

package domain

import "time"

// Payment records a settled job. Exactly one of MechanicID or CarWashID is
// set depending on which side performed the work.
type Payment struct {
	ID             int64
	Reference      string
	Amount         float64
	ClientUsername string
	JobID          *int64
	MechanicID     *int64
	CarWashID      *int64
	PlatformFee    float64
	PaidAt         time.Time
}

package domain

import "time"

// ApplicationStatus enumerates job application outcomes.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// JobApplication is a mechanic or car-wash operator applying to join the
// platform.
type JobApplication struct {
	ID            int64
	ApplicantName string
	Email         string
	PhoneNumber   string
	ResumeLink    string
	AppliedDate   time.Time
	Status        ApplicationStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

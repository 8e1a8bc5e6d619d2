package dto

import "time"

// MechanicRequestPayload payload for creating or updating a mechanic request.
type MechanicRequestPayload struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	MechanicID  *int64   `json:"mechanicId"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Date        string   `json:"date"` // yyyy-MM-dd
	Status      string   `json:"status"`
}

// CarWashBookingPayload payload for creating or updating a booking.
type CarWashBookingPayload struct {
	ID             int64    `json:"id"`
	ClientUsername string   `json:"clientUsername" validate:"required"`
	CarWashID      *string  `json:"carWashId"`
	CarPlate       string   `json:"carPlate" validate:"required"`
	CarType        string   `json:"carType"`
	CarDescription string   `json:"carDescription"`
	Location       string   `json:"location" validate:"required"`
	Date           string   `json:"date" validate:"required"`
	Status         string   `json:"status"`
	ServicePrice   *float64 `json:"servicePrice"`
	ServiceTypes   []string `json:"serviceTypes"`
}

// PaymentRequest payload for recording a payment.
type PaymentRequest struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	ClientUsername string  `json:"clientUsername" validate:"required"`
	JobID          *int64  `json:"jobId"`
	MechanicID     *int64  `json:"mechanicId"`
	CarWashID      *int64  `json:"carWashId"`
}

// PaymentResponse representation of a payment.
type PaymentResponse struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	Amount         float64   `json:"amount"`
	ClientUsername string    `json:"clientUsername"`
	JobID          *int64    `json:"jobId"`
	MechanicID     *int64    `json:"mechanicId"`
	CarWashID      *int64    `json:"carWashId"`
	PlatformFee    float64   `json:"platformFee"`
	PaidAt         time.Time `json:"paidAt"`
}

// JobApplicationPayload payload for creating or updating an application.
type JobApplicationPayload struct {
	ApplicantName string `json:"applicantName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PhoneNumber   string `json:"phoneNumber"`
	ResumeLink    string `json:"resumeLink"`
	Status        string `json:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

// RequestHistoryPayload payload for archive entries.
type RequestHistoryPayload struct {
	Username    string `json:"username" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

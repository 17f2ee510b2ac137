package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentTime time.Time `json:"appointment_time" validate:"required"`
}

// UpdateAppointmentRequest merges into the existing record: nil fields keep
// their current value.
type UpdateAppointmentRequest struct {
	DoctorID        *uuid.UUID `json:"doctor_id,omitempty"`
	AppointmentTime *time.Time `json:"appointment_time,omitempty"`
	Status          *int       `json:"status,omitempty" validate:"omitempty,oneof=0 1"`
}

type ChangeStatusRequest struct {
	Status int `json:"status" validate:"oneof=0 1"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	PatientEmail    string    `json:"patient_email,omitempty"`
	PatientPhone    string    `json:"patient_phone,omitempty"`
	AppointmentTime time.Time `json:"appointment_time"`
	EndTime         time.Time `json:"end_time"`
	Status          int       `json:"status"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

package dto

import (
	"time"
)

// Request DTOs

// SavePrescriptionRequest carries the visit outcome; the target appointment
// comes from the URL path.
type SavePrescriptionRequest struct {
	PatientName string `json:"patient_name" validate:"required,min=3,max=100"`
	Medication  string `json:"medication" validate:"required,min=3,max=100"`
	Dosage      string `json:"dosage" validate:"required,min=3,max=20"`
	DoctorNotes string `json:"doctor_notes" validate:"max=200"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	PatientName   string    `json:"patient_name"`
	Medication    string    `json:"medication"`
	Dosage        string    `json:"dosage"`
	DoctorNotes   string    `json:"doctor_notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

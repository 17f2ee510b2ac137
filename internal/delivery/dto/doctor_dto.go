package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name           string   `json:"name" validate:"required,min=3,max=100"`
	Specialty      string   `json:"specialty" validate:"required,min=3,max=50"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	Phone          string   `json:"phone" validate:"required,len=10"`
	AvailableTimes []string `json:"available_times" validate:"dive,required"`
}

// UpdateDoctorRequest merges into the existing record: nil fields keep their
// current value.
type UpdateDoctorRequest struct {
	Name           *string   `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Specialty      *string   `json:"specialty,omitempty" validate:"omitempty,min=3,max=50"`
	Phone          *string   `json:"phone,omitempty" validate:"omitempty,len=10"`
	AvailableTimes *[]string `json:"available_times,omitempty" validate:"omitempty,dive,required"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialty      string    `json:"specialty"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	AvailableTimes []string  `json:"available_times"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type AvailabilityResponse struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	Date           string    `json:"date"`
	AvailableSlots []string  `json:"available_slots"`
}

package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSlotTaken reports that another appointment's one-hour occupancy window
// overlaps the requested one on the target doctor's calendar.
var ErrSlotTaken = errors.New("time slot is not available")

// AppointmentRepository persists appointments. Finders return (nil, nil) when
// the record does not exist.
//
// CreateIfSlotFree and UpdateIfSlotFree run the window conflict check and the
// write inside a single serializable unit, so two concurrent bookings for the
// same doctor/window cannot both observe "free" and both commit. Both return
// ErrSlotTaken on conflict.
type AppointmentRepository interface {
	CreateIfSlotFree(ctx context.Context, appointment *entity.Appointment) error
	UpdateIfSlotFree(ctx context.Context, appointment *entity.Appointment) error
	Update(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error

	// FindByDoctorBetween lists a doctor's appointments with instants in
	// [start, end), optionally narrowed by a case-insensitive patient-name
	// substring, ordered by instant ascending.
	FindByDoctorBetween(ctx context.Context, doctorID uuid.UUID, start, end time.Time, patientName string) ([]entity.Appointment, error)

	// FindByPatient lists a patient's appointments, narrowed by the filter's
	// condition (status bucket) and doctor-name axes, ordered by instant.
	FindByPatient(ctx context.Context, patientID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error)
}

package repository

import (
	"context"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PrescriptionRepository persists prescription documents (MongoDB-backed).
// FindByAppointmentID returns (nil, nil) when no document exists.
type PrescriptionRepository interface {
	Insert(ctx context.Context, prescription *entity.Prescription) error
	FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Prescription, error)
}

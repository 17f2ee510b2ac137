package repository

import (
	"context"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientRepository persists patient accounts. Finders return (nil, nil)
// when the record does not exist.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	FindByEmail(ctx context.Context, email string) (*entity.Patient, error)

	// FindByEmailOrPhone backs the (email, phone) uniqueness pre-check on
	// registration.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Patient, error)
}

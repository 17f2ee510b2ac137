package repository

import (
	"context"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorRepository persists doctor profiles and their slot templates.
// Finders return (nil, nil) when the record does not exist.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	Update(ctx context.Context, doctor *entity.Doctor) error

	// Delete removes the doctor and all of their appointments in one
	// transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)

	// FindByFilter applies the name and specialty axes of the filter; the
	// half-day axis is applied in memory by the caller.
	FindByFilter(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error)
}

package usecase

import (
	"context"
	"errors"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrPrescriptionExists   = errors.New("a prescription already exists for this appointment")
	ErrPrescriptionNotFound = errors.New("no prescription found for this appointment")
)

type PrescriptionUsecase interface {
	SavePrescription(ctx context.Context, appointmentID uuid.UUID, req *dto.SavePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetPrescription(ctx context.Context, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
}

func NewPrescriptionUsecase(
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		log:              log,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
	}
}

// SavePrescription records the outcome of a visit. Each appointment takes at
// most one prescription, and saving one marks the appointment completed.
func (u *prescriptionUsecase) SavePrescription(ctx context.Context, appointmentID uuid.UUID, req *dto.SavePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to look up appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	existing, err := u.prescriptionRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed prescription lookup for appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPrescriptionExists
	}

	prescription := &entity.Prescription{
		AppointmentID: appointmentID.String(),
		PatientName:   req.PatientName,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		DoctorNotes:   req.DoctorNotes,
	}

	if err := u.prescriptionRepo.Insert(ctx, prescription); err != nil {
		u.log.Warnf("Failed to save prescription for appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	// The prescription is already persisted at this point, so a failed
	// status flip is logged instead of failing the request.
	if err := u.appointmentRepo.UpdateStatus(ctx, appointmentID, entity.StatusCompleted); err != nil {
		u.log.Warnf("Failed to complete appointment %s after prescription: %+v", appointmentID, err)
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetPrescription(ctx context.Context, appointmentID uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed prescription lookup for appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return converter.PrescriptionToResponse(prescription), nil
}

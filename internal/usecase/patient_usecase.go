package usecase

import (
	"context"
	"errors"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var ErrInvalidCondition = errors.New("condition must be either 'future' or 'past'")

type PatientUsecase interface {
	GetAppointments(ctx context.Context, patient *entity.Patient, filter entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetDetails(ctx context.Context, patient *entity.Patient) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewPatientUsecase(log *logrus.Logger, appointmentRepo repository.AppointmentRepository) PatientUsecase {
	return &patientUsecase{log: log, appointmentRepo: appointmentRepo}
}

// GetAppointments lists the patient's appointments, optionally narrowed by
// a lifecycle condition ("future" for scheduled, "past" for completed) and
// by doctor name. An unrecognized condition is rejected rather than treated
// as no filter.
func (u *patientUsecase) GetAppointments(ctx context.Context, patient *entity.Patient, filter entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if filter.Condition != "" {
		if _, ok := entity.ConditionStatus(filter.Condition); !ok {
			return nil, ErrInvalidCondition
		}
	}

	appointments, err := u.appointmentRepo.FindByPatient(ctx, patient.ID, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *patientUsecase) GetDetails(ctx context.Context, patient *entity.Patient) (*dto.PatientResponse, error) {
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

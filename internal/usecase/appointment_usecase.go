package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrSlotUnavailable     = errors.New("the selected time slot is not available")
	ErrPastAppointment     = errors.New("appointment time must be in the future")
	ErrNotAppointmentOwner = errors.New("appointment does not belong to the requesting patient")
	ErrStatusRollback      = errors.New("a completed appointment cannot be moved back to scheduled")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patient *entity.Patient, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, requester *entity.Patient) error
	ChangeStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error
	GetDoctorDay(ctx context.Context, doctor *entity.Doctor, day time.Time, patientName string) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	strictStatus    bool
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	strictStatus bool,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		strictStatus:    strictStatus,
	}
}

// Book creates a scheduled appointment after the doctor's one-hour window
// around the requested instant is confirmed free. The window check and the
// insert run atomically in the repository, so two patients racing for the
// same slot cannot both succeed.
func (u *appointmentUsecase) Book(ctx context.Context, patient *entity.Patient, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if !req.AppointmentTime.After(time.Now()) {
		return nil, ErrPastAppointment
	}

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		AppointmentTime: req.AppointmentTime.UTC(),
		Status:          entity.StatusScheduled,
	}

	if err := u.appointmentRepo.CreateIfSlotFree(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	appointment.Doctor = *doctor
	appointment.Patient = *patient
	return converter.AppointmentToResponse(appointment), nil
}

// Reschedule applies the provided field changes to an existing appointment.
// The conflict check runs only when the appointment instant actually moves;
// re-submitting the same instant is a no-op change and never conflicts with
// the appointment's own window.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if req.DoctorID != nil && *req.DoctorID != appointment.DoctorID {
		doctor, err := u.doctorRepo.FindByID(ctx, *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to look up doctor %s: %+v", *req.DoctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		appointment.DoctorID = doctor.ID
		appointment.Doctor = *doctor
	}

	if req.Status != nil {
		newStatus := entity.AppointmentStatus(*req.Status)
		if u.strictStatus && appointment.IsCompleted() && newStatus == entity.StatusScheduled {
			return nil, ErrStatusRollback
		}
		appointment.Status = newStatus
	}

	timeChanged := false
	if req.AppointmentTime != nil && !req.AppointmentTime.Equal(appointment.AppointmentTime) {
		appointment.AppointmentTime = req.AppointmentTime.UTC()
		timeChanged = true
	}

	if timeChanged {
		err = u.appointmentRepo.UpdateIfSlotFree(ctx, appointment)
	} else {
		err = u.appointmentRepo.Update(ctx, appointment)
	}
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// Cancel hard-deletes an appointment. When the requester is a patient the
// appointment must belong to them; a nil requester means an admin caller.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, requester *entity.Patient) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if requester != nil && appointment.PatientID != requester.ID {
		return ErrNotAppointmentOwner
	}

	if err := u.appointmentRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	return nil
}

func (u *appointmentUsecase) ChangeStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if u.strictStatus && appointment.IsCompleted() && status == entity.StatusScheduled {
		return ErrStatusRollback
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		u.log.Warnf("Failed to update status of appointment %s: %+v", id, err)
		return err
	}
	return nil
}

// GetDoctorDay lists a doctor's appointments inside the calendar day that
// contains the given instant, optionally narrowed by patient name.
func (u *appointmentUsecase) GetDoctorDay(ctx context.Context, doctor *entity.Doctor, day time.Time, patientName string) (*dto.AppointmentListResponse, error) {
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	appointments, err := u.appointmentRepo.FindByDoctorBetween(ctx, doctor.ID, start, end, patientName)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

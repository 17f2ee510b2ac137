package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

func TestGetAppointmentsByCondition(t *testing.T) {
	doctors := newStubDoctorRepo()
	patients := newStubPatientRepo()
	appointments := newStubAppointmentRepo(doctors, patients)
	uc := NewPatientUsecase(testLogger(), appointments)

	doctor := &entity.Doctor{Name: "Dr. Smith", Email: "smith@clinic.test"}
	doctors.Create(context.Background(), doctor)
	patient := &entity.Patient{Name: "Alice", Email: "alice@mail.test"}
	patients.Create(context.Background(), patient)

	base := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	appointments.Update(context.Background(), &entity.Appointment{
		ID: uuid.New(), DoctorID: doctor.ID, PatientID: patient.ID,
		AppointmentTime: base, Status: entity.StatusCompleted,
	})
	appointments.Update(context.Background(), &entity.Appointment{
		ID: uuid.New(), DoctorID: doctor.ID, PatientID: patient.ID,
		AppointmentTime: base.Add(48 * time.Hour), Status: entity.StatusScheduled,
	})

	all, err := uc.GetAppointments(context.Background(), patient, entity.AppointmentFilter{})
	if err != nil {
		t.Fatalf("GetAppointments failed: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("expected 2 appointments, got %d", all.Total)
	}

	future, err := uc.GetAppointments(context.Background(), patient, entity.AppointmentFilter{Condition: "future"})
	if err != nil {
		t.Fatalf("GetAppointments(future) failed: %v", err)
	}
	if future.Total != 1 || future.Appointments[0].Status != int(entity.StatusScheduled) {
		t.Errorf("expected only the scheduled appointment, got %+v", future.Appointments)
	}

	past, err := uc.GetAppointments(context.Background(), patient, entity.AppointmentFilter{Condition: "past"})
	if err != nil {
		t.Fatalf("GetAppointments(past) failed: %v", err)
	}
	if past.Total != 1 || past.Appointments[0].Status != int(entity.StatusCompleted) {
		t.Errorf("expected only the completed appointment, got %+v", past.Appointments)
	}
}

func TestGetAppointmentsInvalidCondition(t *testing.T) {
	appointments := newStubAppointmentRepo(nil, nil)
	uc := NewPatientUsecase(testLogger(), appointments)
	patient := &entity.Patient{ID: uuid.New(), Name: "Alice"}

	_, err := uc.GetAppointments(context.Background(), patient, entity.AppointmentFilter{Condition: "soon"})
	if !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("expected ErrInvalidCondition, got %v", err)
	}
}

func TestGetAppointmentsByDoctorName(t *testing.T) {
	doctors := newStubDoctorRepo()
	patients := newStubPatientRepo()
	appointments := newStubAppointmentRepo(doctors, patients)
	uc := NewPatientUsecase(testLogger(), appointments)

	smith := &entity.Doctor{Name: "Dr. Smith", Email: "smith@clinic.test"}
	jones := &entity.Doctor{Name: "Dr. Jones", Email: "jones@clinic.test"}
	doctors.Create(context.Background(), smith)
	doctors.Create(context.Background(), jones)
	patient := &entity.Patient{Name: "Alice", Email: "alice@mail.test"}
	patients.Create(context.Background(), patient)

	base := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	appointments.Update(context.Background(), &entity.Appointment{
		ID: uuid.New(), DoctorID: smith.ID, PatientID: patient.ID,
		AppointmentTime: base, Status: entity.StatusScheduled,
	})
	appointments.Update(context.Background(), &entity.Appointment{
		ID: uuid.New(), DoctorID: jones.ID, PatientID: patient.ID,
		AppointmentTime: base.Add(2 * time.Hour), Status: entity.StatusScheduled,
	})

	resp, err := uc.GetAppointments(context.Background(), patient, entity.AppointmentFilter{DoctorName: "smith"})
	if err != nil {
		t.Fatalf("GetAppointments failed: %v", err)
	}
	if resp.Total != 1 || resp.Appointments[0].DoctorName != "Dr. Smith" {
		t.Errorf("expected only Dr. Smith's appointment, got %+v", resp.Appointments)
	}
}

func TestGetDetails(t *testing.T) {
	appointments := newStubAppointmentRepo(nil, nil)
	uc := NewPatientUsecase(testLogger(), appointments)

	patient := &entity.Patient{ID: uuid.New(), Name: "Alice", Email: "alice@mail.test", Phone: "0811111111"}
	resp, err := uc.GetDetails(context.Background(), patient)
	if err != nil {
		t.Fatalf("GetDetails failed: %v", err)
	}
	if resp.Name != "Alice" || resp.Email != "alice@mail.test" {
		t.Errorf("unexpected details: %+v", resp)
	}

	if _, err := uc.GetDetails(context.Background(), nil); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound for nil patient, got %v", err)
	}
}

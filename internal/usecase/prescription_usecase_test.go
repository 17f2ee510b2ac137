package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

func newPrescriptionFixture() (PrescriptionUsecase, *stubAppointmentRepo, uuid.UUID) {
	doctors := newStubDoctorRepo()
	patients := newStubPatientRepo()
	appointments := newStubAppointmentRepo(doctors, patients)
	prescriptions := newStubPrescriptionRepo()

	appointmentID := uuid.New()
	appointments.Update(context.Background(), &entity.Appointment{
		ID:              appointmentID,
		DoctorID:        uuid.New(),
		PatientID:       uuid.New(),
		AppointmentTime: time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC),
		Status:          entity.StatusScheduled,
	})

	uc := NewPrescriptionUsecase(testLogger(), prescriptions, appointments)
	return uc, appointments, appointmentID
}

func TestSavePrescriptionCompletesAppointment(t *testing.T) {
	uc, appointments, appointmentID := newPrescriptionFixture()

	req := &dto.SavePrescriptionRequest{
		PatientName: "Alice",
		Medication:  "Amoxicillin",
		Dosage:      "500mg 3x daily",
		DoctorNotes: "Finish the full course.",
	}
	resp, err := uc.SavePrescription(context.Background(), appointmentID, req)
	if err != nil {
		t.Fatalf("SavePrescription failed: %v", err)
	}
	if resp.ID == "" {
		t.Errorf("expected generated prescription ID")
	}
	if resp.AppointmentID != appointmentID.String() {
		t.Errorf("expected appointment id %s, got %s", appointmentID, resp.AppointmentID)
	}

	appointment, _ := appointments.FindByID(context.Background(), appointmentID)
	if !appointment.IsCompleted() {
		t.Errorf("expected appointment marked completed after prescription")
	}
}

func TestSavePrescriptionDuplicate(t *testing.T) {
	uc, _, appointmentID := newPrescriptionFixture()

	req := &dto.SavePrescriptionRequest{
		PatientName: "Alice",
		Medication:  "Amoxicillin",
		Dosage:      "500mg",
	}
	if _, err := uc.SavePrescription(context.Background(), appointmentID, req); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, err := uc.SavePrescription(context.Background(), appointmentID, req); !errors.Is(err, ErrPrescriptionExists) {
		t.Fatalf("expected ErrPrescriptionExists, got %v", err)
	}
}

func TestSavePrescriptionUnknownAppointment(t *testing.T) {
	uc, _, _ := newPrescriptionFixture()

	_, err := uc.SavePrescription(context.Background(), uuid.New(), &dto.SavePrescriptionRequest{
		PatientName: "Alice",
		Medication:  "Amoxicillin",
		Dosage:      "500mg",
	})
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestGetPrescription(t *testing.T) {
	uc, _, appointmentID := newPrescriptionFixture()

	if _, err := uc.GetPrescription(context.Background(), appointmentID); !errors.Is(err, ErrPrescriptionNotFound) {
		t.Fatalf("expected ErrPrescriptionNotFound before save, got %v", err)
	}

	if _, err := uc.SavePrescription(context.Background(), appointmentID, &dto.SavePrescriptionRequest{
		PatientName: "Alice",
		Medication:  "Amoxicillin",
		Dosage:      "500mg",
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	resp, err := uc.GetPrescription(context.Background(), appointmentID)
	if err != nil {
		t.Fatalf("GetPrescription failed: %v", err)
	}
	if resp.Medication != "Amoxicillin" {
		t.Errorf("unexpected prescription: %+v", resp)
	}
}

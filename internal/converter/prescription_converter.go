package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription document to its response DTO.
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	return &dto.PrescriptionResponse{
		ID:            prescription.ID.Hex(),
		AppointmentID: prescription.AppointmentID,
		PatientName:   prescription.PatientName,
		Medication:    prescription.Medication,
		Dosage:        prescription.Dosage,
		DoctorNotes:   prescription.DoctorNotes,
		CreatedAt:     prescription.CreatedAt,
	}
}

package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its response DTO,
// flattening the doctor and patient details when they were preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		DoctorID:        appointment.DoctorID,
		PatientID:       appointment.PatientID,
		AppointmentTime: appointment.AppointmentTime,
		EndTime:         appointment.EndTime(),
		Status:          int(appointment.Status),
	}

	if appointment.Doctor.ID != uuid.Nil {
		response.DoctorName = appointment.Doctor.Name
	}
	if appointment.Patient.ID != uuid.Nil {
		response.PatientName = appointment.Patient.Name
		response.PatientEmail = appointment.Patient.Email
		response.PatientPhone = appointment.Patient.Phone
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities.
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		if resp := AppointmentToResponse(&appointment); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

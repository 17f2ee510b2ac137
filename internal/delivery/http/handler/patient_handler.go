package handler

import (
	"net/http"

	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase) *PatientHandler {
	return &PatientHandler{patientUsecase: patientUsecase}
}

func (h *PatientHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	patient, ok := middleware.GetPatientFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	details, err := h.patientUsecase.GetDetails(r.Context(), patient)
	if err != nil {
		response.InternalServerError(w, "Failed to get patient details")
		return
	}

	response.Success(w, http.StatusOK, "Patient details retrieved successfully", details)
}

// GetMyAppointments lists the authenticated patient's appointments. The
// condition query narrows to "future" (scheduled) or "past" (completed),
// and doctor_name narrows by doctor.
func (h *PatientHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	patient, ok := middleware.GetPatientFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	filter := entity.AppointmentFilter{
		Condition:  r.URL.Query().Get("condition"),
		DoctorName: r.URL.Query().Get("doctor_name"),
	}

	appointments, err := h.patientUsecase.GetAppointments(r.Context(), patient, filter)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCondition:
			response.Error(w, http.StatusBadRequest, "Condition must be either 'future' or 'past'", nil)
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

package converter

import (
	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/schedule"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Doctor and patient names are filled only when the relations are preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		DoctorID:    appointment.DoctorID,
		DoctorName:  appointment.Doctor.User.FullName,
		PatientID:   appointment.PatientID,
		PatientName: appointment.Patient.User.FullName,
		Date:        appointment.Date.Format("2006-01-02"),
		Time:        schedule.TruncateToMinute(appointment.Time),
		Status:      string(appointment.Status),
		Notes:       appointment.Notes,
		CompletedAt: appointment.CompletedAt,
		NoShowAt:    appointment.NoShowAt,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

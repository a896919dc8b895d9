package converter

import (
	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/schedule"
)

// TimingToResponse converts a DoctorTiming entity to TimingResponse DTO.
// Times are normalized to HH:MM regardless of how the driver returned them.
func TimingToResponse(timing *entity.DoctorTiming) *dto.TimingResponse {
	if timing == nil {
		return nil
	}

	return &dto.TimingResponse{
		ID:                  timing.ID,
		DoctorID:            timing.DoctorID,
		DayOfWeek:           timing.DayOfWeek,
		StartTime:           schedule.TruncateToMinute(timing.StartTime),
		EndTime:             schedule.TruncateToMinute(timing.EndTime),
		SlotDurationMinutes: timing.SlotDurationMinutes,
		MaxBookings:         timing.MaxBookings,
		IsActive:            timing.IsActive,
	}
}

// TimingsToResponses converts a slice of DoctorTiming entities to slice of TimingResponse DTOs
func TimingsToResponses(timings []entity.DoctorTiming) []dto.TimingResponse {
	responses := make([]dto.TimingResponse, len(timings))
	for i := range timings {
		responses[i] = *TimingToResponse(&timings[i])
	}
	return responses
}

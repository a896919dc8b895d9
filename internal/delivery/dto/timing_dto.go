package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateTimingRequest struct {
	DayOfWeek           int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime           string `json:"start_time" validate:"required,timeslot"`
	EndTime             string `json:"end_time" validate:"required,timeslot"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"required,min=5,max=240"`
	MaxBookings         int    `json:"max_bookings" validate:"required,min=1"`
}

type UpdateTimingRequest struct {
	StartTime           string `json:"start_time" validate:"omitempty,timeslot"`
	EndTime             string `json:"end_time" validate:"omitempty,timeslot"`
	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"omitempty,min=5,max=240"`
	MaxBookings         int    `json:"max_bookings" validate:"omitempty,min=1"`
	IsActive            *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type TimingResponse struct {
	ID                  int       `json:"id"`
	DoctorID            uuid.UUID `json:"doctor_id"`
	DayOfWeek           int       `json:"day_of_week"`
	StartTime           string    `json:"start_time"`
	EndTime             string    `json:"end_time"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	MaxBookings         int       `json:"max_bookings"`
	IsActive            *bool     `json:"is_active"`
}

type TimingListResponse struct {
	Timings []TimingResponse `json:"timings"`
	Total   int              `json:"total"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ReportStatusRequest struct {
	Status                string `json:"status" validate:"required"`
	Message               string `json:"message" validate:"omitempty,max=500"`
	EstimatedDelayMinutes int    `json:"estimated_delay_minutes" validate:"omitempty,min=0,max=480"`
}

// Response DTOs

type DoctorStatusResponse struct {
	DoctorID              uuid.UUID `json:"doctor_id"`
	Status                string    `json:"status"`
	Message               string    `json:"message,omitempty"`
	EstimatedDelayMinutes int       `json:"estimated_delay_minutes"`
	ReportedAt            time.Time `json:"reported_at"`
}

type ReportStatusResponse struct {
	Status        DoctorStatusResponse `json:"status"`
	NotifiedCount int                  `json:"notified_count"`
}

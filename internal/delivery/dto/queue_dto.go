package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type AdvanceQueueRequest struct {
	CurrentAppointmentID uuid.UUID `json:"current_appointment_id" validate:"required"`
	Outcome              string    `json:"outcome" validate:"required,oneof=completed no-show"`
}

type NotifyNextRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"omitempty"`
	Message  string    `json:"message" validate:"omitempty,max=500"`
}

// Response DTOs

// QueueEntryResponse is one appointment's place in a doctor's day queue.
type QueueEntryResponse struct {
	AppointmentID        uuid.UUID `json:"appointment_id"`
	PatientID            uuid.UUID `json:"patient_id"`
	PatientName          string    `json:"patient_name,omitempty"`
	Time                 string    `json:"time"`
	Status               string    `json:"status"`
	Position             int       `json:"position"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes"`
}

type QueueResponse struct {
	DoctorID       uuid.UUID            `json:"doctor_id"`
	Date           string               `json:"date"`
	CurrentPatient *QueueEntryResponse  `json:"current_patient,omitempty"`
	WaitingQueue   []QueueEntryResponse `json:"waiting_queue"`
	TotalInQueue   int                  `json:"total_in_queue"`
	CompletedCount int                  `json:"completed_count"`
	NoShowCount    int                  `json:"no_show_count"`
}

type AdvanceQueueResponse struct {
	TerminatedID     uuid.UUID  `json:"terminated_id"`
	Outcome          string     `json:"outcome"`
	PromotedID       *uuid.UUID `json:"promoted_id,omitempty"`
	NotifiedPatient  *uuid.UUID `json:"notified_patient,omitempty"`
	RemainingInQueue int        `json:"remaining_in_queue"`
}

type NotifyNextResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	Time          string    `json:"time"`
}

type QueueStatsResponse struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	Date           string    `json:"date"`
	Total          int       `json:"total"`
	Scheduled      int       `json:"scheduled"`
	Confirmed      int       `json:"confirmed"`
	InProgress     int       `json:"in_progress"`
	Completed      int       `json:"completed"`
	Cancelled      int       `json:"cancelled"`
	NoShow         int       `json:"no_show"`
	CompletionRate float64   `json:"completion_rate"`
	NoShowRate     float64   `json:"no_show_rate"`
}

type PatientQueueStatusResponse struct {
	HasAppointment       bool       `json:"has_appointment"`
	AppointmentID        *uuid.UUID `json:"appointment_id,omitempty"`
	Position             int        `json:"position,omitempty"`
	PatientsAhead        int        `json:"patients_ahead,omitempty"`
	EstimatedWaitMinutes int        `json:"estimated_wait_minutes,omitempty"`
	IsCurrentPatient     bool       `json:"is_current_patient,omitempty"`
	StatusMessage        string     `json:"status_message"`
}

package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type SlotResponse struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

type AvailabilityResponse struct {
	DoctorID       uuid.UUID      `json:"doctor_id"`
	Date           string         `json:"date"`
	DayOfWeek      int            `json:"day_of_week"`
	AllSlots       []SlotResponse `json:"all_slots"`
	AvailableSlots []string       `json:"available_slots"`
	TotalSlots     int            `json:"total_slots"`
	BookedSlots    int            `json:"booked_slots"`
	MaxBookings    int            `json:"max_bookings"`
	IsFullyBooked  bool           `json:"is_fully_booked"`
	Message        string         `json:"message,omitempty"`
}

// SearchAvailabilityEntry is one doctor's row in the cross-doctor search.
type SearchAvailabilityEntry struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name"`
	Specialization string    `json:"specialization"`
	ClinicName     string    `json:"clinic_name,omitempty"`
	ClinicCity     string    `json:"clinic_city,omitempty"`
	AvailableSlots []string  `json:"available_slots"`
	FreeSlotCount  int       `json:"free_slot_count"`
}

type SearchAvailabilityResponse struct {
	Date    string                    `json:"date"`
	Results []SearchAvailabilityEntry `json:"results"`
	Total   int                       `json:"total"`
}

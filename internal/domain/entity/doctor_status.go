package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorAvailabilityStatus is the doctor's self-reported live status.
type DoctorAvailabilityStatus string

const (
	DoctorStatusAvailable      DoctorAvailabilityStatus = "available"
	DoctorStatusDelayed        DoctorAvailabilityStatus = "delayed"
	DoctorStatusUnavailable    DoctorAvailabilityStatus = "unavailable"
	DoctorStatusInConsultation DoctorAvailabilityStatus = "in-consultation"
	DoctorStatusEmergency      DoctorAvailabilityStatus = "emergency"
)

// ValidDoctorStatus reports whether s is one of the allowed status values.
func ValidDoctorStatus(s DoctorAvailabilityStatus) bool {
	switch s {
	case DoctorStatusAvailable, DoctorStatusDelayed, DoctorStatusUnavailable,
		DoctorStatusInConsultation, DoctorStatusEmergency:
		return true
	}
	return false
}

// DoctorStatus is an append-only status record; the latest row per doctor wins.
// A "delayed" row with a positive delay triggers delay notifications for every
// patient still waiting that day.
type DoctorStatus struct {
	ID                    int                      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID              uuid.UUID                `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Status                DoctorAvailabilityStatus `gorm:"type:varchar(20);not null" json:"status"`
	Message               string                   `gorm:"type:text" json:"message,omitempty"`
	EstimatedDelayMinutes int                      `gorm:"not null;default:0" json:"estimated_delay_minutes"`
	CreatedAt             time.Time                `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt             time.Time                `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorStatus) TableName() string {
	return "doctor_statuses"
}

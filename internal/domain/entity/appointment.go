package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no-show"
)

// ActiveAppointmentStatuses are the statuses that keep an appointment in the
// day's queue. Order matters nowhere; queue order always comes from Time.
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusInProgress,
}

// WaitingAppointmentStatuses are the statuses eligible for promotion and for
// delay notifications.
var WaitingAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
}

// Appointment represents one patient's booking of one slot with one doctor.
// A partial unique index on (doctor_id, date, time) for non-cancelled rows is
// created by the migrations; the booking flow relies on it to reject races.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	Date            time.Time         `gorm:"type:date;not null;index:idx_appointments_doctor_date" json:"date"`
	Time            string            `gorm:"type:time;not null" json:"time"` // HH:MM slot start
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	NoShowAt        *time.Time        `json:"no_show_at,omitempty"`
	LastNotifiedAt  *time.Time        `json:"last_notified_at,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether the appointment reached a final state.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsWaiting reports whether the appointment is still queued (not yet called in).
func (a *Appointment) IsWaiting() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}

// IsInProgress reports whether the patient is currently being seen.
func (a *Appointment) IsInProgress() bool {
	return a.Status == AppointmentStatusInProgress
}

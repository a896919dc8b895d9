package repository

import (
	"time"

	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentFilter narrows appointment list queries.
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Date      *time.Time
	Statuses  []entity.AppointmentStatus
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	Find(db *gorm.DB, filter *AppointmentFilter) ([]entity.Appointment, error)
	// FindActiveByDoctorAndDate returns the queue view: active-status
	// appointments for one doctor and date, ordered by time ascending.
	FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// FindNonCancelledByDoctorAndDate returns everything that still occupies
	// a slot for availability purposes.
	FindNonCancelledByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindActiveByPatientDoctorAndDate(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time) (*entity.Appointment, error)
	// FindConflictForUpdate locks and returns any non-terminal appointment
	// already occupying the slot; call inside a transaction.
	FindConflictForUpdate(db *gorm.DB, doctorID uuid.UUID, date time.Time, slot string) (*entity.Appointment, error)
	// UpdateStatusIf performs a conditional status transition, returning the
	// number of rows changed. Zero means the appointment was not in any of
	// the expected states.
	UpdateStatusIf(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus, stamps map[string]interface{}) (int64, error)
	TouchLastNotified(db *gorm.DB, id uuid.UUID, at time.Time) error
	CountByDoctorDateAndStatus(db *gorm.DB, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) (int64, error)
}

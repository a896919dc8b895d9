package repository

import (
	"errors"
	"time"

	"go-clinic-queue/internal/domain/entity"
	domainRepo "go-clinic-queue/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Find(db *gorm.DB, filter *domainRepo.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Doctor.User").Preload("Patient.User")

	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.Date != nil {
			query = query.Where("date = ?", filter.Date.Format("2006-01-02"))
		}
		if len(filter.Statuses) > 0 {
			query = query.Where("status IN ?", filter.Statuses)
		}
	}

	var appointments []entity.Appointment
	err := query.Order("date ASC, time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Where("doctor_id = ? AND date = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), entity.ActiveAppointmentStatuses).
		Order("time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindNonCancelledByDoctorAndDate returns every appointment still occupying
// its slot. Only cancellation frees a slot; completed and no-show rows keep
// theirs for the day.
func (r *appointmentRepository) FindNonCancelledByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND date = ? AND status <> ?",
		doctorID, date.Format("2006-01-02"), entity.AppointmentStatusCancelled).
		Order("time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByPatientDoctorAndDate(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("patient_id = ? AND doctor_id = ? AND date = ? AND status IN ?",
		patientID, doctorID, date.Format("2006-01-02"), entity.ActiveAppointmentStatuses).
		Order("time ASC").
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindConflictForUpdate locks the conflicting row so two concurrent bookings
// of the same slot serialize; the partial unique index in the migrations is
// the backstop for inserts racing past this check.
func (r *appointmentRepository) FindConflictForUpdate(db *gorm.DB, doctorID uuid.UUID, date time.Time, slot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status <> ?",
			doctorID, date.Format("2006-01-02"), slot, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus, stamps map[string]interface{}) (int64, error) {
	updates := map[string]interface{}{"status": to}
	for column, value := range stamps {
		updates[column] = value
	}

	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) TouchLastNotified(db *gorm.DB, id uuid.UUID, at time.Time) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("last_notified_at", at).Error
}

func (r *appointmentRepository) CountByDoctorDateAndStatus(db *gorm.DB, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status IN ?", doctorID, date.Format("2006-01-02"), statuses).
		Count(&count).Error
	return count, err
}

package repository

import (
	"errors"

	"go-clinic-queue/internal/domain/entity"
	domainRepo "go-clinic-queue/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorTimingRepository struct{}

func NewDoctorTimingRepository() domainRepo.DoctorTimingRepository {
	return &doctorTimingRepository{}
}

func (r *doctorTimingRepository) Create(db *gorm.DB, timing *entity.DoctorTiming) error {
	return db.Create(timing).Error
}

func (r *doctorTimingRepository) FindByID(db *gorm.DB, id int) (*entity.DoctorTiming, error) {
	var timing entity.DoctorTiming
	err := db.Where("id = ?", id).First(&timing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &timing, nil
}

func (r *doctorTimingRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorTiming, error) {
	var timings []entity.DoctorTiming
	err := db.Where("doctor_id = ?", doctorID).Order("day_of_week ASC, start_time ASC").Find(&timings).Error
	if err != nil {
		return nil, err
	}
	return timings, nil
}

func (r *doctorTimingRepository) FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.DoctorTiming, error) {
	var timing entity.DoctorTiming
	err := db.Where("doctor_id = ? AND day_of_week = ? AND is_active = ?", doctorID, dayOfWeek, true).
		First(&timing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &timing, nil
}

func (r *doctorTimingRepository) Update(db *gorm.DB, timing *entity.DoctorTiming) error {
	return db.Omit("Doctor").Save(timing).Error
}

func (r *doctorTimingRepository) Deactivate(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.DoctorTiming{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

package repository

import (
	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorTimingRepository interface {
	Create(db *gorm.DB, timing *entity.DoctorTiming) error
	FindByID(db *gorm.DB, id int) (*entity.DoctorTiming, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorTiming, error)
	FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.DoctorTiming, error)
	Update(db *gorm.DB, timing *entity.DoctorTiming) error
	// Deactivate soft-deletes a window; appointments may still reference the
	// hours it produced, so rows are never hard-deleted.
	Deactivate(db *gorm.DB, id int) (int64, error)
}

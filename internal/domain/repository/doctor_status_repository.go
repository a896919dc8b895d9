package repository

import (
	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorStatusRepository interface {
	Create(db *gorm.DB, status *entity.DoctorStatus) error
	// FindLatestByDoctor returns the most recent status row, nil when the
	// doctor never reported one.
	FindLatestByDoctor(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorStatus, error)
}

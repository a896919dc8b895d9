package repository

import (
	"errors"

	"go-clinic-queue/internal/domain/entity"
	domainRepo "go-clinic-queue/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorStatusRepository struct{}

func NewDoctorStatusRepository() domainRepo.DoctorStatusRepository {
	return &doctorStatusRepository{}
}

func (r *doctorStatusRepository) Create(db *gorm.DB, status *entity.DoctorStatus) error {
	return db.Create(status).Error
}

func (r *doctorStatusRepository) FindLatestByDoctor(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorStatus, error) {
	var status entity.DoctorStatus
	err := db.Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

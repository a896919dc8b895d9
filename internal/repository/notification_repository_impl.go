package repository

import (
	"errors"

	"go-clinic-queue/internal/domain/entity"
	domainRepo "go-clinic-queue/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByRecipient(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType, search string) ([]entity.Notification, error) {
	query := db.Where("recipient_id = ? AND recipient_type = ?", recipientID, recipientType)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR message ILIKE ?", pattern, pattern)
	}

	var notifications []entity.Notification
	err := query.Order("id DESC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) FindByID(db *gorm.DB, id int64) (*entity.Notification, error) {
	var notification entity.Notification
	err := db.Where("id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) MarkRead(db *gorm.DB, id int64) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllRead(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND recipient_type = ? AND is_read = ?", recipientID, recipientType, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType) (int64, error) {
	var count int64
	err := db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND recipient_type = ? AND is_read = ?", recipientID, recipientType, false).
		Count(&count).Error
	return count, err
}

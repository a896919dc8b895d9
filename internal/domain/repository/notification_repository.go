package repository

import (
	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByRecipient(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType, search string) ([]entity.Notification, error)
	FindByID(db *gorm.DB, id int64) (*entity.Notification, error)
	MarkRead(db *gorm.DB, id int64) (int64, error)
	MarkAllRead(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType) (int64, error)
	CountUnread(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType) (int64, error)
}

package usecase

import (
	"context"
	"errors"

	"go-clinic-queue/internal/converter"
	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/delivery/http/middleware"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationUsecase interface {
	GetNotifications(ctx context.Context, search string) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) (int64, error)
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) GetNotifications(ctx context.Context, search string) (*dto.NotificationListResponse, error) {
	recipientID, recipientType, err := recipientFromContext(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	notifications, err := u.notificationRepo.FindByRecipient(db, recipientID, recipientType, search)
	if err != nil {
		u.log.Warnf("Failed to find notifications: %+v", err)
		return nil, err
	}

	unread, err := u.notificationRepo.CountUnread(db, recipientID, recipientType)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications: %+v", err)
		return nil, err
	}

	responses := converter.NotificationsToResponses(notifications)

	return &dto.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
		Total:         len(responses),
	}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, id int64) error {
	recipientID, _, err := recipientFromContext(ctx)
	if err != nil {
		return err
	}

	db := u.db.WithContext(ctx)

	notification, err := u.notificationRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find notification: %+v", err)
		return err
	}
	if notification == nil || notification.RecipientID != recipientID {
		return ErrNotificationNotFound
	}

	if _, err := u.notificationRepo.MarkRead(db, id); err != nil {
		u.log.Warnf("Failed to mark notification read: %+v", err)
		return err
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context) (int64, error) {
	recipientID, recipientType, err := recipientFromContext(ctx)
	if err != nil {
		return 0, err
	}

	affected, err := u.notificationRepo.MarkAllRead(u.db.WithContext(ctx), recipientID, recipientType)
	if err != nil {
		u.log.Warnf("Failed to mark all notifications read: %+v", err)
		return 0, err
	}
	return affected, nil
}

// recipientFromContext maps the authenticated user to a notification inbox.
// Doctors read the doctor inbox, everyone else the patient one.
func recipientFromContext(ctx context.Context) (uuid.UUID, entity.RecipientType, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, "", errors.New("user not found in context")
	}

	recipientType := entity.RecipientPatient
	if roleID, ok := middleware.GetRoleIDFromContext(ctx); ok && roleID == entity.RoleIDDoctor {
		recipientType = entity.RecipientDoctor
	}
	return userID, recipientType, nil
}

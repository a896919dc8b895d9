package service

import (
	"errors"
	"testing"

	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationRepo struct {
	created   []*entity.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(db *gorm.DB, notification *entity.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotificationRepo) FindByRecipient(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType, search string) ([]entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) FindByID(db *gorm.DB, id int64) (*entity.Notification, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkRead(db *gorm.DB, id int64) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) MarkAllRead(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) CountUnread(db *gorm.DB, recipientID uuid.UUID, recipientType entity.RecipientType) (int64, error) {
	return 0, nil
}

func testAppointment(slot string) *entity.Appointment {
	return &entity.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Time:      slot,
	}
}

func TestNotifyDoctorDelayCarriesShiftedTime(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(logrus.New(), repo)
	appt := testAppointment("09:30:00")

	err := svc.NotifyDoctorDelay(nil, appt, "Dr. Andi", 30, "Stuck in traffic")

	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	n := repo.created[0]
	assert.Equal(t, appt.PatientID, n.RecipientID)
	assert.Equal(t, entity.RecipientPatient, n.RecipientType)
	assert.Equal(t, entity.NotificationAppointmentDelay, n.Type)
	assert.Contains(t, n.Message, "Dr. Andi")
	assert.Contains(t, n.Message, "30 minutes")
	assert.Equal(t, "09:30", n.Data["original_time"])
	assert.Equal(t, "10:00", n.Data["new_time"])
	assert.Equal(t, 30, n.Data["delay_minutes"])
	assert.Equal(t, "Stuck in traffic", n.Data["doctor_message"])
}

func TestNotifyDoctorDelayRejectsBadSlot(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(logrus.New(), repo)

	err := svc.NotifyDoctorDelay(nil, testAppointment("not-a-time"), "Dr. Andi", 15, "")

	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestNotifyQueueUpdateDefaultsMessage(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(logrus.New(), repo)
	appt := testAppointment("10:00:00")

	err := svc.NotifyQueueUpdate(nil, appt, "")

	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	n := repo.created[0]
	assert.Equal(t, entity.NotificationQueueUpdate, n.Type)
	assert.Equal(t, "You are next in line. Please be ready.", n.Message)
	assert.Equal(t, "10:00", n.Data["time"])
	assert.Equal(t, appt.DoctorID.String(), n.Data["doctor_id"])
}

func TestNotifyQueueUpdateKeepsCustomMessage(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(logrus.New(), repo)

	err := svc.NotifyQueueUpdate(nil, testAppointment("10:00:00"), "Dr. Andi is ready for you")

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Dr. Andi is ready for you", repo.created[0].Message)
}

func TestNotifyQueueUpdatePropagatesRepoError(t *testing.T) {
	repo := &fakeNotificationRepo{createErr: errors.New("connection reset")}
	svc := NewNotificationService(logrus.New(), repo)

	err := svc.NotifyQueueUpdate(nil, testAppointment("10:00:00"), "")

	assert.Error(t, err)
}

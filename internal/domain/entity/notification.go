package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecipientType discriminates who a notification is addressed to.
type RecipientType string

const (
	RecipientPatient RecipientType = "patient"
	RecipientDoctor  RecipientType = "doctor"
)

// Notification types emitted by the queue engine
const (
	NotificationReadyForConsultation = "ready_for_consultation"
	NotificationAppointmentDelay     = "appointment_delay"
	NotificationQueueUpdate          = "queue_update"
	NotificationNewAppointment       = "new_appointment"
)

// Notification is a persisted message for a patient or doctor. The queue and
// delay flows create them as side effects; they are read and marked
// independently and never deleted by the core logic.
type Notification struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_notifications_recipient" json:"recipient_id"`
	RecipientType RecipientType `gorm:"type:varchar(10);not null;index:idx_notifications_recipient" json:"recipient_type"`
	Type          string        `gorm:"type:varchar(50);not null;index" json:"type"`
	Title         string        `gorm:"type:varchar(255);not null" json:"title"`
	Message       string        `gorm:"type:text;not null" json:"message"`
	Data          JSON          `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead        bool          `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt     time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorTiming represents a doctor's bookable working window for one weekday.
// Slots are derived from it on demand and never persisted.
type DoctorTiming struct {
	ID                  int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID            uuid.UUID `gorm:"type:uuid;not null;index:idx_doctor_timings_doctor_day,unique" json:"doctor_id"`
	DayOfWeek           int       `gorm:"not null;index:idx_doctor_timings_doctor_day,unique" json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime           string    `gorm:"type:time;not null" json:"start_time"`                                   // HH:MM
	EndTime             string    `gorm:"type:time;not null" json:"end_time"`                                     // HH:MM
	SlotDurationMinutes int       `gorm:"not null" json:"slot_duration_minutes"`
	// MaxBookings caps the total non-cancelled appointments for the whole day,
	// not per slot. Matches the booking flow this schema was built for.
	MaxBookings int       `gorm:"not null" json:"max_bookings"`
	IsActive    *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DoctorTiming) TableName() string {
	return "doctor_timings"
}

// Active reports whether the window is still bookable.
func (t *DoctorTiming) Active() bool {
	return t.IsActive != nil && *t.IsActive
}

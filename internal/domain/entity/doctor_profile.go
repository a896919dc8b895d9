package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	STRNumber      string    `gorm:"column:str_number;type:varchar(50);uniqueIndex;not null" json:"str_number"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography      string    `gorm:"type:text" json:"biography,omitempty"`
	ClinicName     string    `gorm:"type:varchar(255)" json:"clinic_name,omitempty"`
	ClinicCity     string    `gorm:"type:varchar(100);index" json:"clinic_city,omitempty"`
	ClinicPhone    string    `gorm:"type:varchar(20)" json:"clinic_phone,omitempty"`
	// AvgConsultationMinutes drives queue wait estimates for this doctor.
	// Zero means "use the clinic-wide default".
	AvgConsultationMinutes int `gorm:"not null;default:15" json:"avg_consultation_minutes"`

	// Relationships
	User         User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Timings      []DoctorTiming `gorm:"foreignKey:DoctorID" json:"timings,omitempty"`
	Appointments []Appointment  `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// ConsultationMinutes returns the doctor's average consultation length,
// falling back to the supplied default when unset.
func (d *DoctorProfile) ConsultationMinutes(fallback int) int {
	if d.AvgConsultationMinutes > 0 {
		return d.AvgConsultationMinutes
	}
	return fallback
}

// DoctorFilter is a domain-level filter for querying doctors.
// Used by repository layer to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	Specialization string // Filter by specialization (ILIKE)
	City           string // Filter by clinic city (ILIKE)
	Name           string // Filter by doctor name (ILIKE)
}

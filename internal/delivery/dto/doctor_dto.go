package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email                  string `json:"email" validate:"required,email"`
	Password               string `json:"password" validate:"required,min=6"`
	FullName               string `json:"full_name" validate:"required,min=2"`
	STRNumber              string `json:"str_number" validate:"required"`
	Specialization         string `json:"specialization" validate:"required"`
	Biography              string `json:"biography" validate:"omitempty"`
	ClinicName             string `json:"clinic_name" validate:"omitempty,max=255"`
	ClinicCity             string `json:"clinic_city" validate:"omitempty,max=100"`
	ClinicPhone            string `json:"clinic_phone" validate:"omitempty,max=20"`
	AvgConsultationMinutes int    `json:"avg_consultation_minutes" validate:"omitempty,min=1,max=240"`
}

type UpdateDoctorRequest struct {
	Email                  string `json:"email" validate:"omitempty,email"`
	Password               string `json:"password" validate:"omitempty,min=6"`
	FullName               string `json:"full_name" validate:"omitempty,min=2"`
	STRNumber              string `json:"str_number" validate:"omitempty"`
	Specialization         string `json:"specialization" validate:"omitempty"`
	Biography              string `json:"biography" validate:"omitempty"`
	ClinicName             string `json:"clinic_name" validate:"omitempty,max=255"`
	ClinicCity             string `json:"clinic_city" validate:"omitempty,max=100"`
	ClinicPhone            string `json:"clinic_phone" validate:"omitempty,max=20"`
	AvgConsultationMinutes int    `json:"avg_consultation_minutes" validate:"omitempty,min=1,max=240"`
	IsActive               *bool  `json:"is_active" validate:"omitempty"`
}

// DoctorUpdateSelfRequest limits what a doctor may change on their own
// profile. Password changes require the current password.
type DoctorUpdateSelfRequest struct {
	OldPassword            string `json:"old_password" validate:"required_with=Password"`
	Password               string `json:"password" validate:"omitempty,min=6"`
	Biography              string `json:"biography" validate:"omitempty"`
	ClinicPhone            string `json:"clinic_phone" validate:"omitempty,max=20"`
	AvgConsultationMinutes int    `json:"avg_consultation_minutes" validate:"omitempty,min=1,max=240"`
}

// SearchDoctorRequest narrows the public doctor listing. All fields optional.
type SearchDoctorRequest struct {
	Specialization string `json:"specialization"`
	City           string `json:"city"`
	Name           string `json:"name"`
}

// Response DTOs

type DoctorProfileResponse struct {
	UserID                 uuid.UUID `json:"user_id"`
	STRNumber              string    `json:"str_number"`
	Specialization         string    `json:"specialization"`
	Biography              string    `json:"biography,omitempty"`
	ClinicName             string    `json:"clinic_name,omitempty"`
	ClinicCity             string    `json:"clinic_city,omitempty"`
	ClinicPhone            string    `json:"clinic_phone,omitempty"`
	AvgConsultationMinutes int       `json:"avg_consultation_minutes"`
}

type DoctorResponse struct {
	ID                     uuid.UUID `json:"id"`
	Email                  string    `json:"email"`
	FullName               string    `json:"full_name"`
	STRNumber              string    `json:"str_number"`
	Specialization         string    `json:"specialization"`
	Biography              string    `json:"biography,omitempty"`
	ClinicName             string    `json:"clinic_name,omitempty"`
	ClinicCity             string    `json:"clinic_city,omitempty"`
	ClinicPhone            string    `json:"clinic_phone,omitempty"`
	AvgConsultationMinutes int       `json:"avg_consultation_minutes"`
	IsActive               *bool     `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

package converter

import (
	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
// Includes DoctorProfile and PatientProfile if they are loaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	// Include DoctorProfile if exists
	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			UserID:                 user.DoctorProfile.UserID,
			STRNumber:              user.DoctorProfile.STRNumber,
			Specialization:         user.DoctorProfile.Specialization,
			Biography:              user.DoctorProfile.Biography,
			ClinicName:             user.DoctorProfile.ClinicName,
			ClinicCity:             user.DoctorProfile.ClinicCity,
			ClinicPhone:            user.DoctorProfile.ClinicPhone,
			AvgConsultationMinutes: user.DoctorProfile.AvgConsultationMinutes,
		}
	}

	// Include PatientProfile if exists
	if user.PatientProfile != nil {
		response.PatientProfile = &dto.PatientProfileResponse{
			UserID:       user.PatientProfile.UserID,
			RecordNumber: user.PatientProfile.RecordNumber,
			PhoneNumber:  user.PatientProfile.PhoneNumber,
			DateOfBirth:  user.PatientProfile.DateOfBirth.Format("2006-01-02"),
			Gender:       user.PatientProfile.Gender,
			Address:      user.PatientProfile.Address,
		}
	}

	return response
}

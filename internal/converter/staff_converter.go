package converter

import (
	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"
)

// StaffToResponse converts a staff User entity to StaffResponse DTO
func StaffToResponse(user *entity.User) *dto.StaffResponse {
	if user == nil {
		return nil
	}

	return &dto.StaffResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.Active(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func StaffToResponses(users []entity.User) []dto.StaffResponse {
	responses := make([]dto.StaffResponse, len(users))
	for i := range users {
		responses[i] = *StaffToResponse(&users[i])
	}
	return responses
}

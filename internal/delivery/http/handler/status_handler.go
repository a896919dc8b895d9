package handler

import (
	"encoding/json"
	"net/http"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/delivery/http/middleware"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/usecase"
	"go-clinic-queue/pkg/response"
	"go-clinic-queue/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type StatusHandler struct {
	statusUsecase usecase.DoctorStatusUsecase
	validator     *validator.CustomValidator
}

func NewStatusHandler(statusUsecase usecase.DoctorStatusUsecase, validator *validator.CustomValidator) *StatusHandler {
	return &StatusHandler{
		statusUsecase: statusUsecase,
		validator:     validator,
	}
}

// ReportStatus records a doctor's day status. Reporting a delay notifies
// every waiting patient with their shifted time.
func (h *StatusHandler) ReportStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	roleID, _ := middleware.GetRoleIDFromContext(r.Context())
	if roleID == entity.RoleIDDoctor {
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		if userID != doctorID {
			response.Forbidden(w, "You can only report your own status")
			return
		}
	}

	var req dto.ReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.statusUsecase.Report(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDoctorStatus:
			response.Error(w, http.StatusBadRequest, "Status must be one of: available, delayed, unavailable, in-consultation, emergency", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to report status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Status reported successfully", result)
}

func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	status, err := h.statusUsecase.GetStatus(r.Context(), doctorID)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get status")
		return
	}

	response.Success(w, http.StatusOK, "Status retrieved successfully", status)
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/delivery/http/middleware"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/usecase"
	"go-clinic-queue/pkg/response"
	"go-clinic-queue/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TimingHandler struct {
	timingUsecase usecase.DoctorTimingUsecase
	validator     *validator.CustomValidator
}

func NewTimingHandler(timingUsecase usecase.DoctorTimingUsecase, validator *validator.CustomValidator) *TimingHandler {
	return &TimingHandler{
		timingUsecase: timingUsecase,
		validator:     validator,
	}
}

// canManageTimings allows admins to manage any doctor's weekly schedule and
// doctors to manage only their own.
func canManageTimings(r *http.Request, doctorID uuid.UUID) bool {
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		return false
	}
	if roleID == entity.RoleIDAdmin {
		return true
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	return ok && userID == doctorID
}

func (h *TimingHandler) CreateTiming(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if !canManageTimings(r, doctorID) {
		response.Forbidden(w, "You can only manage your own schedule")
		return
	}

	var req dto.CreateTimingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	timing, err := h.timingUsecase.CreateTiming(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrTimingExists:
			response.Error(w, http.StatusConflict, "A schedule already exists for this day of week", nil)
		case usecase.ErrInvalidTimingFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		case usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, "End time must be after start time and fit at least one slot", nil)
		default:
			response.InternalServerError(w, "Failed to create schedule")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", timing)
}

func (h *TimingHandler) GetTimings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	timings, err := h.timingUsecase.GetTimings(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", timings)
}

func (h *TimingHandler) UpdateTiming(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	timingID, err := strconv.Atoi(vars["timingId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	if !canManageTimings(r, doctorID) {
		response.Forbidden(w, "You can only manage your own schedule")
		return
	}

	var req dto.UpdateTimingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	timing, err := h.timingUsecase.UpdateTiming(r.Context(), doctorID, timingID, &req)
	if err != nil {
		switch err {
		case usecase.ErrTimingNotFound:
			response.NotFound(w, "Schedule not found")
		case usecase.ErrInvalidTimingFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		case usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, "End time must be after start time and fit at least one slot", nil)
		default:
			response.InternalServerError(w, "Failed to update schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", timing)
}

func (h *TimingHandler) DeactivateTiming(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	timingID, err := strconv.Atoi(vars["timingId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	if !canManageTimings(r, doctorID) {
		response.Forbidden(w, "You can only manage your own schedule")
		return
	}

	if err := h.timingUsecase.DeactivateTiming(r.Context(), doctorID, timingID); err != nil {
		if err == usecase.ErrTimingNotFound {
			response.NotFound(w, "Schedule not found")
			return
		}
		response.InternalServerError(w, "Failed to deactivate schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule deactivated successfully", nil)
}

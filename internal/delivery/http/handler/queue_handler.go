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

type QueueHandler struct {
	queueUsecase usecase.QueueUsecase
	validator    *validator.CustomValidator
}

func NewQueueHandler(queueUsecase usecase.QueueUsecase, validator *validator.CustomValidator) *QueueHandler {
	return &QueueHandler{
		queueUsecase: queueUsecase,
		validator:    validator,
	}
}

// GetQueue returns the live queue for one doctor on one date.
// @Summary Get doctor queue
// @Description Get the ordered waiting queue with positions and wait estimates
// @Tags Queue
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Response
// @Router /doctors/{id}/queue [get]
func (h *QueueHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	queue, err := h.queueUsecase.GetQueue(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get queue")
		}
		return
	}

	response.Success(w, http.StatusOK, "Queue retrieved successfully", queue)
}

// AdvanceQueue terminates the current consultation and promotes the next
// waiting patient. Doctors may only advance their own queue.
func (h *QueueHandler) AdvanceQueue(w http.ResponseWriter, r *http.Request) {
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
			response.Forbidden(w, "You can only advance your own queue")
			return
		}
	}

	var req dto.AdvanceQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.queueUsecase.Advance(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidOutcome:
			response.Error(w, http.StatusBadRequest, "Outcome must be 'completed' or 'no-show'", nil)
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found for this doctor")
		case usecase.ErrInvalidAppointmentState:
			response.Error(w, http.StatusUnprocessableEntity, "Appointment is already in a terminal state", nil)
		default:
			response.InternalServerError(w, "Failed to advance queue")
		}
		return
	}

	response.Success(w, http.StatusOK, "Queue advanced successfully", result)
}

// NotifyNext re-sends the "you're up next" notification to the first waiting
// patient. Front-desk staff use this when a patient is not responding.
func (h *QueueHandler) NotifyNext(w http.ResponseWriter, r *http.Request) {
	var req dto.NotifyNextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.queueUsecase.NotifyNext(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrQueueEmpty:
			response.NotFound(w, "No patients waiting in the queue")
		default:
			response.InternalServerError(w, "Failed to notify next patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Next patient notified successfully", result)
}

func (h *QueueHandler) GetQueueStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	doctorID, err := uuid.Parse(query.Get("doctorId"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid or missing doctorId parameter", nil)
		return
	}

	stats, err := h.queueUsecase.Stats(r.Context(), doctorID, query.Get("date"))
	if err != nil {
		if err == usecase.ErrInvalidDate {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to get queue stats")
		return
	}

	response.Success(w, http.StatusOK, "Queue stats retrieved successfully", stats)
}

// GetPatientQueueStatus returns one patient's position in a doctor's queue.
// Patients may only check their own status.
func (h *QueueHandler) GetPatientQueueStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	roleID, _ := middleware.GetRoleIDFromContext(r.Context())
	if roleID == entity.RoleIDPatient {
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		if userID != patientID {
			response.Forbidden(w, "You can only check your own queue status")
			return
		}
	}

	query := r.URL.Query()
	doctorID, err := uuid.Parse(query.Get("doctorId"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid or missing doctorId parameter", nil)
		return
	}

	status, err := h.queueUsecase.PatientQueueStatus(r.Context(), patientID, doctorID, query.Get("date"))
	if err != nil {
		if err == usecase.ErrInvalidDate {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to get queue status")
		return
	}

	response.Success(w, http.StatusOK, "Queue status retrieved successfully", status)
}

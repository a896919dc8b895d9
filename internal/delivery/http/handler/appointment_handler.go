package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/delivery/http/middleware"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/domain/repository"
	"go-clinic-queue/internal/usecase"
	"go-clinic-queue/pkg/response"
	"go-clinic-queue/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var (
	errInvalidDoctorIDParam  = errors.New("Invalid doctorId parameter")
	errInvalidPatientIDParam = errors.New("Invalid patientId parameter")
	errInvalidDateParam      = errors.New("Invalid date parameter, use YYYY-MM-DD")
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book handles slot booking by the authenticated patient
// @Summary Book an appointment
// @Description Book a free slot with a doctor for a specific date and time
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date or time format", nil)
		case usecase.ErrAppointmentInPast:
			response.Error(w, http.StatusBadRequest, "Cannot book an appointment in the past", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrDoctorUnavailable:
			response.Error(w, http.StatusBadRequest, "Doctor is not available on this day", nil)
		case usecase.ErrInvalidSlot:
			response.Error(w, http.StatusBadRequest, "Requested time is not a valid slot for this doctor", nil)
		case usecase.ErrAlreadyBooked:
			response.Error(w, http.StatusConflict, "You already have an appointment with this doctor on this date", nil)
		case usecase.ErrSlotTaken:
			response.Error(w, http.StatusConflict, "This slot has just been taken", nil)
		case usecase.ErrDayFullyBooked:
			response.Error(w, http.StatusConflict, "The doctor is fully booked on this date", nil)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	filter, err := h.buildFilter(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), appointmentID)
	if err != nil {
		if err == usecase.ErrAppointmentNotFound {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentOwner:
			response.Forbidden(w, "You can only cancel your own appointments")
		case usecase.ErrInvalidAppointmentState:
			response.Error(w, http.StatusUnprocessableEntity, "Appointment can no longer be cancelled", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

// buildFilter converts list query parameters into a repository filter.
// Patients are always pinned to their own appointments.
func (h *AppointmentHandler) buildFilter(r *http.Request) (*repository.AppointmentFilter, error) {
	query := r.URL.Query()
	filter := &repository.AppointmentFilter{}

	if v := query.Get("doctorId"); v != "" {
		doctorID, err := uuid.Parse(v)
		if err != nil {
			return nil, errInvalidDoctorIDParam
		}
		filter.DoctorID = &doctorID
	}

	if v := query.Get("patientId"); v != "" {
		patientID, err := uuid.Parse(v)
		if err != nil {
			return nil, errInvalidPatientIDParam
		}
		filter.PatientID = &patientID
	}

	if v := query.Get("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, errInvalidDateParam
		}
		filter.Date = &date
	}

	if v := query.Get("status"); v != "" {
		filter.Statuses = []entity.AppointmentStatus{entity.AppointmentStatus(v)}
	}

	roleID, _ := middleware.GetRoleIDFromContext(r.Context())
	if roleID == entity.RoleIDPatient {
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		filter.PatientID = &userID
	}

	return filter, nil
}

package handler

import (
	"net/http"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/usecase"
	"go-clinic-queue/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

// GetAvailability returns the slot grid for one doctor on one date.
// @Summary Get doctor availability
// @Description Get all slots and remaining free slots for a doctor on a given date
// @Tags Availability
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// SearchAvailability lists doctors with free slots on a date, filtered by
// specialization, city, or name.
func (h *AvailabilityHandler) SearchAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	filter := &dto.SearchDoctorRequest{
		Specialization: query.Get("specialization"),
		City:           query.Get("city"),
		Name:           query.Get("name"),
	}

	results, err := h.availabilityUsecase.SearchAvailability(r.Context(), date, filter)
	if err != nil {
		if err == usecase.ErrInvalidDate {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		response.InternalServerError(w, "Failed to search availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", results)
}

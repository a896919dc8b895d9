package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/domain/repository"
	"go-clinic-queue/internal/schedule"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD")
)

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
	SearchAvailability(ctx context.Context, date string, filter *dto.SearchDoctorRequest) (*dto.SearchAvailabilityResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	timingRepo        repository.DoctorTimingRepository
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	timingRepo repository.DoctorTimingRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		timingRepo:        timingRepo,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
	}
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	availability, err := u.resolveForDoctor(db, doctorID, day)
	if err != nil {
		return nil, err
	}

	response := availabilityToResponse(doctorID, availability)
	if availability.TotalSlots == 0 {
		response.Message = "Doctor is not available on this day"
	}
	return response, nil
}

// SearchAvailability resolves slots across all active doctors matching the
// filter, skips doctors with no free capacity, and orders the result by free
// slot count descending (name ascending on ties).
func (u *availabilityUsecase) SearchAvailability(ctx context.Context, date string, filter *dto.SearchDoctorRequest) (*dto.SearchAvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	db := u.db.WithContext(ctx)

	doctors, err := u.doctorProfileRepo.FindActiveWithFilter(db, &entity.DoctorFilter{
		Specialization: filter.Specialization,
		City:           filter.City,
		Name:           filter.Name,
	})
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	results := []dto.SearchAvailabilityEntry{}
	for i := range doctors {
		doctor := &doctors[i]

		availability, err := u.resolveForDoctor(db, doctor.UserID, day)
		if err != nil {
			u.log.Warnf("Failed to resolve availability for doctor %s: %+v", doctor.UserID, err)
			continue
		}
		if len(availability.AvailableSlots) == 0 {
			continue
		}

		slots := make([]string, len(availability.AvailableSlots))
		for j, slot := range availability.AvailableSlots {
			slots[j] = slot.Time
		}

		results = append(results, dto.SearchAvailabilityEntry{
			DoctorID:       doctor.UserID,
			DoctorName:     doctor.User.FullName,
			Specialization: doctor.Specialization,
			ClinicName:     doctor.ClinicName,
			ClinicCity:     doctor.ClinicCity,
			AvailableSlots: slots,
			FreeSlotCount:  len(slots),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FreeSlotCount != results[j].FreeSlotCount {
			return results[i].FreeSlotCount > results[j].FreeSlotCount
		}
		return results[i].DoctorName < results[j].DoctorName
	})

	return &dto.SearchAvailabilityResponse{
		Date:    date,
		Results: results,
		Total:   len(results),
	}, nil
}

func (u *availabilityUsecase) resolveForDoctor(db *gorm.DB, doctorID uuid.UUID, day time.Time) (*schedule.Availability, error) {
	weekday := int(day.Weekday())

	timing, err := u.timingRepo.FindActiveByDoctorAndWeekday(db, doctorID, weekday)
	if err != nil {
		u.log.Warnf("Failed to find timing: %+v", err)
		return nil, err
	}

	var bookedTimes []string
	if timing != nil {
		appointments, err := u.appointmentRepo.FindNonCancelledByDoctorAndDate(db, doctorID, day)
		if err != nil {
			u.log.Warnf("Failed to find appointments: %+v", err)
			return nil, err
		}
		bookedTimes = make([]string, len(appointments))
		for i, appt := range appointments {
			bookedTimes[i] = schedule.TruncateToMinute(appt.Time)
		}
	}

	return schedule.ResolveAvailability(day.Format("2006-01-02"), weekday, timing, bookedTimes)
}

func availabilityToResponse(doctorID uuid.UUID, availability *schedule.Availability) *dto.AvailabilityResponse {
	allSlots := make([]dto.SlotResponse, len(availability.AllSlots))
	for i, slot := range availability.AllSlots {
		allSlots[i] = dto.SlotResponse{Time: slot.Time, IsAvailable: slot.IsAvailable}
	}

	availableSlots := make([]string, len(availability.AvailableSlots))
	for i, slot := range availability.AvailableSlots {
		availableSlots[i] = slot.Time
	}

	return &dto.AvailabilityResponse{
		DoctorID:       doctorID,
		Date:           availability.Date,
		DayOfWeek:      availability.DayOfWeek,
		AllSlots:       allSlots,
		AvailableSlots: availableSlots,
		TotalSlots:     availability.TotalSlots,
		BookedSlots:    availability.BookedSlots,
		MaxBookings:    availability.MaxBookings,
		IsFullyBooked:  availability.IsFullyBooked,
	}
}

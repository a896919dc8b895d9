package usecase

import (
	"context"
	"errors"

	"go-clinic-queue/internal/converter"
	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/delivery/http/middleware"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/domain/repository"
	"go-clinic-queue/internal/schedule"
	"go-clinic-queue/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTimingNotFound      = errors.New("working hours not found")
	ErrTimingExists        = errors.New("working hours already defined for this day")
	ErrInvalidTimeWindow   = errors.New("start time must be before end time")
	ErrInvalidTimingFormat = errors.New("invalid time format, use HH:MM")
)

type DoctorTimingUsecase interface {
	CreateTiming(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTimingRequest) (*dto.TimingResponse, error)
	GetTimings(ctx context.Context, doctorID uuid.UUID) (*dto.TimingListResponse, error)
	UpdateTiming(ctx context.Context, doctorID uuid.UUID, timingID int, req *dto.UpdateTimingRequest) (*dto.TimingResponse, error)
	DeactivateTiming(ctx context.Context, doctorID uuid.UUID, timingID int) error
}

type doctorTimingUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	timingRepo        repository.DoctorTimingRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewDoctorTimingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	timingRepo repository.DoctorTimingRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) DoctorTimingUsecase {
	return &doctorTimingUsecase{
		db:                db,
		log:               log,
		timingRepo:        timingRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

func (u *doctorTimingUsecase) CreateTiming(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTimingRequest) (*dto.TimingResponse, error) {
	if err := validateTimeWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	active := true
	timing := &entity.DoctorTiming{
		DoctorID:            doctorID,
		DayOfWeek:           req.DayOfWeek,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		MaxBookings:         req.MaxBookings,
		IsActive:            &active,
	}

	if err := u.timingRepo.Create(tx, timing); err != nil {
		if isDuplicateKeyError(err, "doctor_day") {
			return nil, ErrTimingExists
		}
		u.log.Warnf("Failed to create timing: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionTimingCreate, "doctor_timing", timing.DoctorID.String(), converter.TimingToResponse(timing)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TimingToResponse(timing), nil
}

func (u *doctorTimingUsecase) GetTimings(ctx context.Context, doctorID uuid.UUID) (*dto.TimingListResponse, error) {
	timings, err := u.timingRepo.FindByDoctorID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find timings: %+v", err)
		return nil, err
	}

	responses := converter.TimingsToResponses(timings)

	return &dto.TimingListResponse{
		Timings: responses,
		Total:   len(responses),
	}, nil
}

func (u *doctorTimingUsecase) UpdateTiming(ctx context.Context, doctorID uuid.UUID, timingID int, req *dto.UpdateTimingRequest) (*dto.TimingResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	timing, err := u.timingRepo.FindByID(tx, timingID)
	if err != nil {
		u.log.Warnf("Failed to find timing: %+v", err)
		return nil, err
	}
	if timing == nil || timing.DoctorID != doctorID {
		return nil, ErrTimingNotFound
	}

	oldValue := converter.TimingToResponse(timing)

	if req.StartTime != "" {
		timing.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		timing.EndTime = req.EndTime
	}
	if err := validateTimeWindow(
		schedule.TruncateToMinute(timing.StartTime),
		schedule.TruncateToMinute(timing.EndTime),
	); err != nil {
		return nil, err
	}

	if req.SlotDurationMinutes > 0 {
		timing.SlotDurationMinutes = req.SlotDurationMinutes
	}
	if req.MaxBookings > 0 {
		timing.MaxBookings = req.MaxBookings
	}
	if req.IsActive != nil {
		timing.IsActive = req.IsActive
	}

	if err := u.timingRepo.Update(tx, timing); err != nil {
		u.log.Warnf("Failed to update timing: %+v", err)
		return nil, err
	}

	newValue := converter.TimingToResponse(timing)
	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionTimingUpdate, "doctor_timing", timing.DoctorID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TimingToResponse(timing), nil
}

func (u *doctorTimingUsecase) DeactivateTiming(ctx context.Context, doctorID uuid.UUID, timingID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	timing, err := u.timingRepo.FindByID(tx, timingID)
	if err != nil {
		u.log.Warnf("Failed to find timing: %+v", err)
		return err
	}
	if timing == nil || timing.DoctorID != doctorID {
		return ErrTimingNotFound
	}

	oldValue := converter.TimingToResponse(timing)

	affected, err := u.timingRepo.Deactivate(tx, timingID)
	if err != nil {
		u.log.Warnf("Failed to deactivate timing: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrTimingNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionTimingDelete, "doctor_timing", timing.DoctorID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func validateTimeWindow(startTime, endTime string) error {
	start, err := schedule.ParseMinutes(startTime)
	if err != nil {
		return ErrInvalidTimingFormat
	}
	end, err := schedule.ParseMinutes(endTime)
	if err != nil {
		return ErrInvalidTimingFormat
	}
	if start >= end {
		return ErrInvalidTimeWindow
	}
	return nil
}

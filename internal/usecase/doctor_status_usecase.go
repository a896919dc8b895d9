package usecase

import (
	"context"
	"errors"
	"time"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/delivery/http/middleware"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/domain/repository"
	"go-clinic-queue/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDoctorStatus = errors.New("invalid doctor status")
)

type DoctorStatusUsecase interface {
	Report(ctx context.Context, doctorID uuid.UUID, req *dto.ReportStatusRequest) (*dto.ReportStatusResponse, error)
	GetStatus(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorStatusResponse, error)
}

type doctorStatusUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	statusRepo          repository.DoctorStatusRepository
	appointmentRepo     repository.AppointmentRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	notificationService service.NotificationService
	auditService        service.AuditService
}

func NewDoctorStatusUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	statusRepo repository.DoctorStatusRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	notificationService service.NotificationService,
	auditService service.AuditService,
) DoctorStatusUsecase {
	return &doctorStatusUsecase{
		db:                  db,
		log:                 log,
		statusRepo:          statusRepo,
		appointmentRepo:     appointmentRepo,
		doctorProfileRepo:   doctorProfileRepo,
		notificationService: notificationService,
		auditService:        auditService,
	}
}

// Report records a doctor's live status. A delayed status with a positive
// delay fans out one notification per still-waiting appointment today. The
// fan-out is sequential and fire-and-forget by contract: a patient whose
// notification fails is logged and skipped, never retried, and never fails
// the report.
func (u *doctorStatusUsecase) Report(ctx context.Context, doctorID uuid.UUID, req *dto.ReportStatusRequest) (*dto.ReportStatusResponse, error) {
	status := entity.DoctorAvailabilityStatus(req.Status)
	if !entity.ValidDoctorStatus(status) {
		return nil, ErrInvalidDoctorStatus
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

	record := &entity.DoctorStatus{
		DoctorID:              doctorID,
		Status:                status,
		Message:               req.Message,
		EstimatedDelayMinutes: req.EstimatedDelayMinutes,
	}

	if err := u.statusRepo.Create(db, record); err != nil {
		u.log.Warnf("Failed to create doctor status: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, db, &userID, entity.AuditActionStatusReport, "doctor_status", doctorID.String(), map[string]interface{}{
		"status":        req.Status,
		"delay_minutes": req.EstimatedDelayMinutes,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	notified := 0
	if status == entity.DoctorStatusDelayed && req.EstimatedDelayMinutes > 0 {
		notified = u.propagateDelay(ctx, doctor, record)
	}

	return &dto.ReportStatusResponse{
		Status:        *statusToResponse(record),
		NotifiedCount: notified,
	}, nil
}

func (u *doctorStatusUsecase) GetStatus(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorStatusResponse, error) {
	db := u.db.WithContext(ctx)

	record, err := u.statusRepo.FindLatestByDoctor(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor status: %+v", err)
		return nil, err
	}
	if record == nil {
		// Never reported: a doctor is available by default.
		return &dto.DoctorStatusResponse{
			DoctorID:   doctorID,
			Status:     string(entity.DoctorStatusAvailable),
			ReportedAt: time.Time{},
		}, nil
	}

	return statusToResponse(record), nil
}

// propagateDelay notifies every scheduled or confirmed appointment for today.
// In-progress patients are already in the room and are skipped.
func (u *doctorStatusUsecase) propagateDelay(ctx context.Context, doctor *entity.DoctorProfile, record *entity.DoctorStatus) int {
	db := u.db.WithContext(ctx)
	today := time.Now()

	appointments, err := u.appointmentRepo.Find(db, &repository.AppointmentFilter{
		DoctorID: &doctor.UserID,
		Date:     &today,
		Statuses: entity.WaitingAppointmentStatuses,
	})
	if err != nil {
		u.log.Warnf("Failed to load waiting appointments for delay: %+v", err)
		return 0
	}

	notified := 0
	for i := range appointments {
		err := u.notificationService.NotifyDoctorDelay(db, &appointments[i],
			doctor.User.FullName, record.EstimatedDelayMinutes, record.Message)
		if err != nil {
			continue
		}
		notified++
	}

	return notified
}

func statusToResponse(record *entity.DoctorStatus) *dto.DoctorStatusResponse {
	return &dto.DoctorStatusResponse{
		DoctorID:              record.DoctorID,
		Status:                string(record.Status),
		Message:               record.Message,
		EstimatedDelayMinutes: record.EstimatedDelayMinutes,
		ReportedAt:            record.CreatedAt,
	}
}

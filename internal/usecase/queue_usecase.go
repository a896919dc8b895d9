package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	ErrQueueEmpty     = errors.New("no patients waiting in the queue")
	ErrInvalidOutcome = errors.New("outcome must be completed or no-show")
)

type QueueUsecase interface {
	GetQueue(ctx context.Context, doctorID uuid.UUID, date string) (*dto.QueueResponse, error)
	Advance(ctx context.Context, doctorID uuid.UUID, req *dto.AdvanceQueueRequest) (*dto.AdvanceQueueResponse, error)
	NotifyNext(ctx context.Context, req *dto.NotifyNextRequest) (*dto.NotifyNextResponse, error)
	Stats(ctx context.Context, doctorID uuid.UUID, date string) (*dto.QueueStatsResponse, error)
	PatientQueueStatus(ctx context.Context, patientID, doctorID uuid.UUID, date string) (*dto.PatientQueueStatusResponse, error)
}

type queueUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	notificationService service.NotificationService
	auditService        service.AuditService
	// fallback when the doctor profile has no average of its own
	defaultConsultationMinutes int
}

func NewQueueUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	notificationService service.NotificationService,
	auditService service.AuditService,
	defaultConsultationMinutes int,
) QueueUsecase {
	return &queueUsecase{
		db:                         db,
		log:                        log,
		appointmentRepo:            appointmentRepo,
		doctorProfileRepo:          doctorProfileRepo,
		notificationService:        notificationService,
		auditService:               auditService,
		defaultConsultationMinutes: defaultConsultationMinutes,
	}
}

// queueDate parses a YYYY-MM-DD date, defaulting to today when empty.
func queueDate(date string) (time.Time, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

func (u *queueUsecase) GetQueue(ctx context.Context, doctorID uuid.UUID, date string) (*dto.QueueResponse, error) {
	day, err := queueDate(date)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	avgMinutes, err := u.consultationMinutes(db, doctorID)
	if err != nil {
		return nil, err
	}

	queue, err := u.appointmentRepo.FindActiveByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load queue: %+v", err)
		return nil, err
	}
	schedule.SortQueue(queue)

	response := &dto.QueueResponse{
		DoctorID:     doctorID,
		Date:         date,
		WaitingQueue: []dto.QueueEntryResponse{},
		TotalInQueue: len(queue),
	}

	for i := range queue {
		entry := queueEntry(&queue[i], i, avgMinutes)
		if queue[i].IsInProgress() {
			current := entry
			response.CurrentPatient = &current
			continue
		}
		response.WaitingQueue = append(response.WaitingQueue, entry)
	}

	completed, err := u.appointmentRepo.CountByDoctorDateAndStatus(db, doctorID, day,
		[]entity.AppointmentStatus{entity.AppointmentStatusCompleted})
	if err != nil {
		u.log.Warnf("Failed to count completed: %+v", err)
		return nil, err
	}
	noShow, err := u.appointmentRepo.CountByDoctorDateAndStatus(db, doctorID, day,
		[]entity.AppointmentStatus{entity.AppointmentStatusNoShow})
	if err != nil {
		u.log.Warnf("Failed to count no-shows: %+v", err)
		return nil, err
	}
	response.CompletedCount = int(completed)
	response.NoShowCount = int(noShow)

	return response, nil
}

// Advance closes out the current consultation and calls in the next patient.
// The status transitions are conditional updates; a concurrent advance on the
// same appointment loses the race and gets ErrInvalidAppointmentState instead
// of silently double-completing.
func (u *queueUsecase) Advance(ctx context.Context, doctorID uuid.UUID, req *dto.AdvanceQueueRequest) (*dto.AdvanceQueueResponse, error) {
	outcome := entity.AppointmentStatus(req.Outcome)
	if outcome != entity.AppointmentStatusCompleted && outcome != entity.AppointmentStatusNoShow {
		return nil, ErrInvalidOutcome
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, req.CurrentAppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil || appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotFound
	}
	if appointment.IsTerminal() {
		return nil, ErrInvalidAppointmentState
	}

	now := time.Now()
	stamps := map[string]interface{}{}
	if outcome == entity.AppointmentStatusCompleted {
		stamps["completed_at"] = now
	} else {
		stamps["no_show_at"] = now
	}

	affected, err := u.appointmentRepo.UpdateStatusIf(tx, appointment.ID,
		entity.ActiveAppointmentStatuses, outcome, stamps)
	if err != nil {
		u.log.Warnf("Failed to close out appointment: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidAppointmentState
	}

	response := &dto.AdvanceQueueResponse{
		TerminatedID: appointment.ID,
		Outcome:      req.Outcome,
	}

	queue, err := u.appointmentRepo.FindActiveByDoctorAndDate(tx, doctorID, appointment.Date)
	if err != nil {
		u.log.Warnf("Failed to reload queue: %+v", err)
		return nil, err
	}

	if next := schedule.NextWaiting(queue); next != nil {
		promoted, err := u.appointmentRepo.UpdateStatusIf(tx, next.ID,
			entity.WaitingAppointmentStatuses, entity.AppointmentStatusInProgress, nil)
		if err != nil {
			u.log.Warnf("Failed to promote next patient: %+v", err)
			return nil, err
		}
		if promoted > 0 {
			// Exactly one promotion, exactly one notification.
			u.notificationService.NotifyReadyForConsultation(tx, next)
			promotedID := next.ID
			notifiedPatient := next.PatientID
			response.PromotedID = &promotedID
			response.NotifiedPatient = &notifiedPatient
		}
	}

	// Remaining covers everyone still active, promoted patient included;
	// the queue was reloaded after the close-out, so its length is exactly
	// that set.
	response.RemainingInQueue = len(queue)

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionQueueAdvance, "appointment", appointment.ID.String(), nil, map[string]interface{}{
		"outcome":  req.Outcome,
		"promoted": response.PromotedID,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

// NotifyNext pings the earliest waiting patient without changing any status,
// for the front desk to nudge whoever is next.
func (u *queueUsecase) NotifyNext(ctx context.Context, req *dto.NotifyNextRequest) (*dto.NotifyNextResponse, error) {
	day, err := queueDate(req.Date)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	queue, err := u.appointmentRepo.FindActiveByDoctorAndDate(db, req.DoctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load queue: %+v", err)
		return nil, err
	}

	next := schedule.NextWaiting(queue)
	if next == nil {
		return nil, ErrQueueEmpty
	}

	if err := u.notificationService.NotifyQueueUpdate(db, next, req.Message); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.TouchLastNotified(db, next.ID, time.Now()); err != nil {
		u.log.Warnf("Failed to stamp last notified: %+v", err)
	}

	return &dto.NotifyNextResponse{
		AppointmentID: next.ID,
		PatientID:     next.PatientID,
		Time:          schedule.TruncateToMinute(next.Time),
	}, nil
}

func (u *queueUsecase) Stats(ctx context.Context, doctorID uuid.UUID, date string) (*dto.QueueStatsResponse, error) {
	day, err := queueDate(date)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.Find(u.db.WithContext(ctx), &repository.AppointmentFilter{
		DoctorID: &doctorID,
		Date:     &day,
	})
	if err != nil {
		u.log.Warnf("Failed to load appointments for stats: %+v", err)
		return nil, err
	}

	stats := &dto.QueueStatsResponse{
		DoctorID: doctorID,
		Date:     date,
		Total:    len(appointments),
	}

	for i := range appointments {
		switch appointments[i].Status {
		case entity.AppointmentStatusScheduled:
			stats.Scheduled++
		case entity.AppointmentStatusConfirmed:
			stats.Confirmed++
		case entity.AppointmentStatusInProgress:
			stats.InProgress++
		case entity.AppointmentStatusCompleted:
			stats.Completed++
		case entity.AppointmentStatusCancelled:
			stats.Cancelled++
		case entity.AppointmentStatusNoShow:
			stats.NoShow++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
		stats.NoShowRate = float64(stats.NoShow) / float64(stats.Total)
	}

	return stats, nil
}

func (u *queueUsecase) PatientQueueStatus(ctx context.Context, patientID, doctorID uuid.UUID, date string) (*dto.PatientQueueStatusResponse, error) {
	day, err := queueDate(date)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindActiveByPatientDoctorAndDate(db, patientID, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find patient appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return &dto.PatientQueueStatusResponse{
			HasAppointment: false,
			StatusMessage:  "No active appointment with this doctor today",
		}, nil
	}

	avgMinutes, err := u.consultationMinutes(db, doctorID)
	if err != nil {
		return nil, err
	}

	queue, err := u.appointmentRepo.FindActiveByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load queue: %+v", err)
		return nil, err
	}

	position, err := schedule.QueuePosition(queue, appointment.ID, avgMinutes)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("You are number %d in the queue, estimated wait %d minutes",
		position.Position, position.EstimatedWaitMinutes)
	if position.IsCurrentPatient {
		message = "It's your turn, please proceed to the consultation room"
	}

	appointmentID := appointment.ID
	return &dto.PatientQueueStatusResponse{
		HasAppointment:       true,
		AppointmentID:        &appointmentID,
		Position:             position.Position,
		PatientsAhead:        position.PatientsAhead,
		EstimatedWaitMinutes: position.EstimatedWaitMinutes,
		IsCurrentPatient:     position.IsCurrentPatient,
		StatusMessage:        message,
	}, nil
}

func (u *queueUsecase) consultationMinutes(db *gorm.DB, doctorID uuid.UUID) (int, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return 0, err
	}
	if doctor == nil {
		return 0, ErrDoctorNotFound
	}
	return doctor.ConsultationMinutes(u.defaultConsultationMinutes), nil
}

func queueEntry(appointment *entity.Appointment, index, avgMinutes int) dto.QueueEntryResponse {
	return dto.QueueEntryResponse{
		AppointmentID:        appointment.ID,
		PatientID:            appointment.PatientID,
		PatientName:          appointment.Patient.User.FullName,
		Time:                 schedule.TruncateToMinute(appointment.Time),
		Status:               string(appointment.Status),
		Position:             index + 1,
		EstimatedWaitMinutes: index * avgMinutes,
	}
}

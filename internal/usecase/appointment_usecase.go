package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotTaken               = errors.New("slot is already booked")
	ErrDayFullyBooked          = errors.New("doctor is fully booked on this day")
	ErrAlreadyBooked           = errors.New("patient already has an appointment with this doctor on this day")
	ErrInvalidSlot             = errors.New("time does not match any bookable slot")
	ErrDoctorUnavailable       = errors.New("doctor is not available on this day")
	ErrAppointmentInPast       = errors.New("appointment date is in the past")
	ErrInvalidAppointmentState = errors.New("appointment is not in a valid state for this operation")
	ErrNotAppointmentOwner     = errors.New("appointment belongs to another patient")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter *repository.AppointmentFilter) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	timingRepo          repository.DoctorTimingRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	patientProfileRepo  repository.PatientProfileRepository
	dayQuotaService     *service.DayQuotaService
	notificationService service.NotificationService
	auditService        service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	timingRepo repository.DoctorTimingRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	dayQuotaService *service.DayQuotaService,
	notificationService service.NotificationService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		timingRepo:          timingRepo,
		doctorProfileRepo:   doctorProfileRepo,
		patientProfileRepo:  patientProfileRepo,
		dayQuotaService:     dayQuotaService,
		notificationService: notificationService,
		auditService:        auditService,
	}
}

// Book reserves one slot for one patient. The read-then-insert race on the
// slot is closed twice over: the conflicting row range is locked with
// SELECT ... FOR UPDATE inside the transaction, and the partial unique index
// on (doctor_id, date, time) rejects whatever slips through. The redis day
// counter is a cheap front gate; it is reserved before the transaction and
// released again whenever the booking does not commit.
func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := schedule.ParseMinutes(req.Time); err != nil {
		return nil, ErrInvalidSlot
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return nil, ErrAppointmentInPast
	}

	db := u.db.WithContext(ctx)

	patient, err := u.patientProfileRepo.FindByUserID(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	timing, err := u.timingRepo.FindActiveByDoctorAndWeekday(db, req.DoctorID, int(day.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find timing: %+v", err)
		return nil, err
	}
	if timing == nil {
		return nil, ErrDoctorUnavailable
	}

	slots, err := schedule.GenerateTimeSlots(
		schedule.TruncateToMinute(timing.StartTime),
		schedule.TruncateToMinute(timing.EndTime),
		timing.SlotDurationMinutes,
	)
	if err != nil {
		u.log.Warnf("Failed to generate slots: %+v", err)
		return nil, err
	}
	if !containsSlot(slots, req.Time) {
		return nil, ErrInvalidSlot
	}

	existing, err := u.appointmentRepo.FindActiveByPatientDoctorAndDate(db, patientID, req.DoctorID, day)
	if err != nil {
		u.log.Warnf("Failed to check existing appointment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyBooked
	}

	// Front gate: atomically take one unit of the day's capacity.
	if err := u.dayQuotaService.Reserve(ctx, req.DoctorID, day, timing.MaxBookings); err != nil {
		if errors.Is(err, service.ErrDayQuotaFull) {
			return nil, ErrDayFullyBooked
		}
		return nil, err
	}

	appointment, err := u.bookInTx(ctx, patient, req, day, timing)
	if err != nil {
		u.dayQuotaService.Release(ctx, req.DoctorID, day)
		return nil, err
	}

	appointment.Doctor = *doctor
	appointment.Patient = *patient

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) bookInTx(ctx context.Context, patient *entity.PatientProfile, req *dto.BookAppointmentRequest, day time.Time, timing *entity.DoctorTiming) (*entity.Appointment, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	conflict, err := u.appointmentRepo.FindConflictForUpdate(tx, req.DoctorID, day, req.Time)
	if err != nil {
		u.log.Warnf("Failed to lock slot: %+v", err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotTaken
	}

	// Locked re-count: the redis gate can be stale after a cache wipe.
	booked, err := u.appointmentRepo.CountByDoctorDateAndStatus(tx, req.DoctorID, day, entity.ActiveAppointmentStatuses)
	if err != nil {
		u.log.Warnf("Failed to count bookings: %+v", err)
		return nil, err
	}
	if timing.MaxBookings > 0 && booked >= int64(timing.MaxBookings) {
		return nil, ErrDayFullyBooked
	}

	appointment := &entity.Appointment{
		DoctorID:  req.DoctorID,
		PatientID: patient.UserID,
		Date:      day,
		Time:      req.Time,
		Status:    entity.AppointmentStatusScheduled,
		Notes:     req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_date_time") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.notificationService.NotifyNewAppointment(tx, req.DoctorID, appointment, patient.User.FullName)

	if err := u.auditService.LogCreate(ctx, tx, &patient.UserID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id": req.DoctorID.String(),
		"date":      req.Date,
		"time":      req.Time,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return appointment, nil
}

// Cancel transitions a scheduled or confirmed appointment to cancelled and
// returns the slot to the day's capacity. Callers own the authorization
// check; patients may only cancel their own appointments.
func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if roleID == entity.RoleIDPatient && appointment.PatientID != userID {
		return nil, ErrNotAppointmentOwner
	}

	affected, err := u.appointmentRepo.UpdateStatusIf(tx, appointmentID,
		entity.WaitingAppointmentStatuses, entity.AppointmentStatusCancelled, nil)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidAppointmentState
	}
	appointment.Status = entity.AppointmentStatusCancelled

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), nil, map[string]interface{}{
		"status": string(entity.AppointmentStatusCancelled),
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.dayQuotaService.Release(ctx, appointment.DoctorID, appointment.Date)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, filter *repository.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.Find(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appointments)

	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func containsSlot(slots []string, t string) bool {
	for _, slot := range slots {
		if slot == t {
			return true
		}
	}
	return false
}

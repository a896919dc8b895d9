package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-clinic-queue/internal/delivery/http/middleware"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/domain/repository"
	"go-clinic-queue/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// errDuplicateTiming mimics the unique violation raised by the
// doctor_timings (doctor_id, day_of_week) index.
var errDuplicateTiming = &pgconn.PgError{
	Code:           "23505",
	ConstraintName: "idx_doctor_timings_doctor_day",
}

// newTestDB returns a gorm handle backed by sqlmock that accepts any number
// of transactions. Repositories are faked in these tests, so the only SQL
// that reaches the driver is Begin/Commit.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 16; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

// testDayQuota builds a quota service on a redis client that cannot connect.
// Reserve and Release degrade to no-ops on redis errors, so the transactional
// checks carry the booking flow, same as when redis is down in production.
func testDayQuota(db *gorm.DB) *service.DayQuotaService {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return service.NewDayQuotaService(db, client, testLogger())
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func authedContext(userID uuid.UUID, roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

// fakeAppointmentRepo is an in-memory AppointmentRepository.
type fakeAppointmentRepo struct {
	appointments []*entity.Appointment
	createErr    error
	conflict     *entity.Appointment
}

func (f *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.CreatedAt = time.Now()
	f.appointments = append(f.appointments, appointment)
	return nil
}

func (f *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	for _, appt := range f.appointments {
		if appt.ID == id {
			return appt, nil
		}
	}
	return nil, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func statusIn(status entity.AppointmentStatus, statuses []entity.AppointmentStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) Find(db *gorm.DB, filter *repository.AppointmentFilter) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, appt := range f.appointments {
		if filter.DoctorID != nil && appt.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && appt.PatientID != *filter.PatientID {
			continue
		}
		if filter.Date != nil && !sameDay(appt.Date, *filter.Date) {
			continue
		}
		if len(filter.Statuses) > 0 && !statusIn(appt.Status, filter.Statuses) {
			continue
		}
		result = append(result, *appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	return f.Find(db, &repository.AppointmentFilter{
		DoctorID: &doctorID,
		Date:     &date,
		Statuses: entity.ActiveAppointmentStatuses,
	})
}

func (f *fakeAppointmentRepo) FindNonCancelledByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, appt := range f.appointments {
		if appt.DoctorID != doctorID || !sameDay(appt.Date, date) {
			continue
		}
		if appt.Status == entity.AppointmentStatusCancelled {
			continue
		}
		result = append(result, *appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) FindActiveByPatientDoctorAndDate(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time) (*entity.Appointment, error) {
	for _, appt := range f.appointments {
		if appt.PatientID == patientID && appt.DoctorID == doctorID &&
			sameDay(appt.Date, date) && statusIn(appt.Status, entity.ActiveAppointmentStatuses) {
			return appt, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindConflictForUpdate(db *gorm.DB, doctorID uuid.UUID, date time.Time, slot string) (*entity.Appointment, error) {
	if f.conflict != nil {
		return f.conflict, nil
	}
	for _, appt := range f.appointments {
		if appt.DoctorID == doctorID && sameDay(appt.Date, date) && appt.Time == slot &&
			appt.Status != entity.AppointmentStatusCancelled {
			return appt, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus, stamps map[string]interface{}) (int64, error) {
	for _, appt := range f.appointments {
		if appt.ID != id {
			continue
		}
		if !statusIn(appt.Status, from) {
			return 0, nil
		}
		appt.Status = to
		return 1, nil
	}
	return 0, nil
}

func (f *fakeAppointmentRepo) TouchLastNotified(db *gorm.DB, id uuid.UUID, at time.Time) error {
	for _, appt := range f.appointments {
		if appt.ID == id {
			appt.LastNotifiedAt = &at
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) CountByDoctorDateAndStatus(db *gorm.DB, doctorID uuid.UUID, date time.Time, statuses []entity.AppointmentStatus) (int64, error) {
	var count int64
	for _, appt := range f.appointments {
		if appt.DoctorID == doctorID && sameDay(appt.Date, date) && statusIn(appt.Status, statuses) {
			count++
		}
	}
	return count, nil
}

// fakeTimingRepo is an in-memory DoctorTimingRepository.
type fakeTimingRepo struct {
	timings []*entity.DoctorTiming
	nextID  int
}

func (f *fakeTimingRepo) Create(db *gorm.DB, timing *entity.DoctorTiming) error {
	for _, existing := range f.timings {
		if existing.DoctorID == timing.DoctorID && existing.DayOfWeek == timing.DayOfWeek {
			return errDuplicateTiming
		}
	}
	f.nextID++
	timing.ID = f.nextID
	f.timings = append(f.timings, timing)
	return nil
}

func (f *fakeTimingRepo) FindByID(db *gorm.DB, id int) (*entity.DoctorTiming, error) {
	for _, timing := range f.timings {
		if timing.ID == id {
			return timing, nil
		}
	}
	return nil, nil
}

func (f *fakeTimingRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorTiming, error) {
	var result []entity.DoctorTiming
	for _, timing := range f.timings {
		if timing.DoctorID == doctorID {
			result = append(result, *timing)
		}
	}
	return result, nil
}

func (f *fakeTimingRepo) FindActiveByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.DoctorTiming, error) {
	for _, timing := range f.timings {
		if timing.DoctorID == doctorID && timing.DayOfWeek == dayOfWeek && timing.Active() {
			return timing, nil
		}
	}
	return nil, nil
}

func (f *fakeTimingRepo) Update(db *gorm.DB, timing *entity.DoctorTiming) error {
	for i, existing := range f.timings {
		if existing.ID == timing.ID {
			f.timings[i] = timing
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTimingRepo) Deactivate(db *gorm.DB, id int) (int64, error) {
	for _, timing := range f.timings {
		if timing.ID == id && timing.Active() {
			inactive := false
			timing.IsActive = &inactive
			return 1, nil
		}
	}
	return 0, nil
}

// fakeDoctorProfileRepo is an in-memory DoctorProfileRepository.
type fakeDoctorProfileRepo struct {
	profiles []*entity.DoctorProfile
}

func (f *fakeDoctorProfileRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	f.profiles = append(f.profiles, profile)
	return nil
}

func (f *fakeDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorProfileRepo) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	result := make([]entity.DoctorProfile, len(f.profiles))
	for i, profile := range f.profiles {
		result[i] = *profile
	}
	return result, nil
}

func (f *fakeDoctorProfileRepo) FindActiveWithFilter(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	var result []entity.DoctorProfile
	for _, profile := range f.profiles {
		if filter.Specialization != "" && !strings.EqualFold(profile.Specialization, filter.Specialization) {
			continue
		}
		if filter.City != "" && !strings.EqualFold(profile.ClinicCity, filter.City) {
			continue
		}
		result = append(result, *profile)
	}
	return result, nil
}

func (f *fakeDoctorProfileRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	for i, existing := range f.profiles {
		if existing.UserID == profile.UserID {
			f.profiles[i] = profile
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeDoctorProfileRepo) Delete(db *gorm.DB, userID uuid.UUID) error {
	for i, profile := range f.profiles {
		if profile.UserID == userID {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakePatientProfileRepo is an in-memory PatientProfileRepository.
type fakePatientProfileRepo struct {
	profiles []*entity.PatientProfile
}

func (f *fakePatientProfileRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	f.profiles = append(f.profiles, profile)
	return nil
}

func (f *fakePatientProfileRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	for _, profile := range f.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, nil
}

func (f *fakePatientProfileRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.PatientProfile, error) {
	result := make([]entity.PatientProfile, len(f.profiles))
	for i, profile := range f.profiles {
		result[i] = *profile
	}
	return result, nil
}

func (f *fakePatientProfileRepo) Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	for i, existing := range f.profiles {
		if existing.UserID == profile.UserID {
			f.profiles[i] = profile
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePatientProfileRepo) Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	for i, profile := range f.profiles {
		if profile.UserID == userID {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeStatusRepo is an in-memory DoctorStatusRepository.
type fakeStatusRepo struct {
	statuses []*entity.DoctorStatus
}

func (f *fakeStatusRepo) Create(db *gorm.DB, status *entity.DoctorStatus) error {
	status.ID = len(f.statuses) + 1
	status.CreatedAt = time.Now()
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeStatusRepo) FindLatestByDoctor(db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorStatus, error) {
	for i := len(f.statuses) - 1; i >= 0; i-- {
		if f.statuses[i].DoctorID == doctorID {
			return f.statuses[i], nil
		}
	}
	return nil, nil
}

// fakeNotificationService records every notification instead of persisting it.
type fakeNotificationService struct {
	notifications []*entity.Notification
}

func (f *fakeNotificationService) Notify(tx *gorm.DB, notification *entity.Notification) error {
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationService) NotifyReadyForConsultation(tx *gorm.DB, appointment *entity.Appointment) {
	f.notifications = append(f.notifications, &entity.Notification{
		RecipientID:   appointment.PatientID,
		RecipientType: entity.RecipientPatient,
		Type:          entity.NotificationReadyForConsultation,
	})
}

func (f *fakeNotificationService) NotifyDoctorDelay(tx *gorm.DB, appointment *entity.Appointment, doctorName string, delayMinutes int, doctorMessage string) error {
	f.notifications = append(f.notifications, &entity.Notification{
		RecipientID:   appointment.PatientID,
		RecipientType: entity.RecipientPatient,
		Type:          entity.NotificationAppointmentDelay,
		Message:       doctorMessage,
	})
	return nil
}

func (f *fakeNotificationService) NotifyQueueUpdate(tx *gorm.DB, appointment *entity.Appointment, message string) error {
	f.notifications = append(f.notifications, &entity.Notification{
		RecipientID:   appointment.PatientID,
		RecipientType: entity.RecipientPatient,
		Type:          entity.NotificationQueueUpdate,
		Message:       message,
	})
	return nil
}

func (f *fakeNotificationService) NotifyNewAppointment(tx *gorm.DB, doctorID uuid.UUID, appointment *entity.Appointment, patientName string) {
	f.notifications = append(f.notifications, &entity.Notification{
		RecipientID:   doctorID,
		RecipientType: entity.RecipientDoctor,
		Type:          entity.NotificationNewAppointment,
	})
}

func (f *fakeNotificationService) ofType(notificationType string) []*entity.Notification {
	var result []*entity.Notification
	for _, n := range f.notifications {
		if n.Type == notificationType {
			result = append(result, n)
		}
	}
	return result
}

// fakeAuditService drops audit entries; flows must not depend on them.
type fakeAuditService struct {
	entries int
}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	f.entries++
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	f.entries++
	return nil
}

func (f *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	f.entries++
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByRoleID(db *gorm.DB, roleID int) ([]entity.User, error) {
	var result []entity.User
	for _, user := range f.users {
		if user.RoleID == roleID {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	for i, existing := range f.users {
		if existing.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	for i, user := range f.users {
		if user.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

package repository

import (
	"testing"
	"time"

	"go-clinic-queue/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestUpdateStatusIfReportsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()
	id := uuid.New()

	mock.ExpectExec(`UPDATE "appointments" SET .+ WHERE id = \$\d+ AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateStatusIf(db, id,
		entity.ActiveAppointmentStatuses, entity.AppointmentStatusCompleted,
		map[string]interface{}{"completed_at": time.Now()})

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIfLosesRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectExec(`UPDATE "appointments" SET .+ WHERE id = \$\d+ AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.UpdateStatusIf(db, uuid.New(),
		entity.WaitingAppointmentStatuses, entity.AppointmentStatusCancelled, nil)

	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflictForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()
	doctorID := uuid.New()
	conflictID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "time", "status"}).
			AddRow(conflictID, doctorID, "09:30", "scheduled"))

	appointment, err := repo.FindConflictForUpdate(db, doctorID, time.Now(), "09:30")

	require.NoError(t, err)
	require.NotNil(t, appointment)
	assert.Equal(t, conflictID, appointment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflictForUpdateNoConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	appointment, err := repo.FindConflictForUpdate(db, uuid.New(), time.Now(), "09:30")

	require.NoError(t, err)
	assert.Nil(t, appointment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByDoctorDateAndStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE doctor_id = \$\d+ AND date = \$\d+ AND status IN`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByDoctorDateAndStatus(db, uuid.New(), time.Now(), entity.ActiveAppointmentStatuses)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTouchLastNotified(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectExec(`UPDATE "appointments" SET "last_notified_at"=\$\d+,"updated_at"=\$\d+ WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.TouchLastNotified(db, uuid.New(), time.Now())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package schedule

import (
	"testing"
	"time"

	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueOf(times ...string) []entity.Appointment {
	appointments := make([]entity.Appointment, len(times))
	base := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	for i, slot := range times {
		appointments[i] = entity.Appointment{
			ID:        uuid.New(),
			Time:      slot,
			Status:    entity.AppointmentStatusScheduled,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return appointments
}

func TestQueuePositionOrdering(t *testing.T) {
	queue := queueOf("09:00", "09:15", "09:30")
	target := queue[1].ID

	result, err := QueuePosition(queue, target, 15)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Position)
	assert.Equal(t, 1, result.PatientsAhead)
	assert.Equal(t, 15, result.EstimatedWaitMinutes)
	assert.False(t, result.IsCurrentPatient)
	assert.Equal(t, 3, result.TotalPatients)
}

func TestQueuePositionUnsortedInput(t *testing.T) {
	queue := queueOf("09:30", "09:00", "09:15")
	// The appointment at 09:00 must rank first regardless of input order.
	target := queue[1].ID

	result, err := QueuePosition(queue, target, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Position)
	assert.Zero(t, result.EstimatedWaitMinutes)
}

func TestQueuePositionCurrentPatient(t *testing.T) {
	queue := queueOf("09:00", "09:15")
	queue[0].Status = entity.AppointmentStatusInProgress

	result, err := QueuePosition(queue, queue[0].ID, 15)
	require.NoError(t, err)
	assert.True(t, result.IsCurrentPatient)
	assert.Equal(t, 1, result.Position)
}

func TestQueuePositionPerDoctorAverage(t *testing.T) {
	queue := queueOf("09:00", "09:15", "09:30")

	result, err := QueuePosition(queue, queue[2].ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, result.EstimatedWaitMinutes)
}

func TestQueuePositionNotFound(t *testing.T) {
	queue := queueOf("09:00")
	_, err := QueuePosition(queue, uuid.New(), 15)
	assert.ErrorIs(t, err, ErrNotInQueue)
}

func TestNextWaitingSkipsInProgress(t *testing.T) {
	queue := queueOf("09:00", "09:15", "09:30")
	queue[0].Status = entity.AppointmentStatusInProgress

	next := NextWaiting(queue)
	require.NotNil(t, next)
	assert.Equal(t, "09:15", next.Time)
}

func TestNextWaitingEmpty(t *testing.T) {
	queue := queueOf("09:00")
	queue[0].Status = entity.AppointmentStatusInProgress
	assert.Nil(t, NextWaiting(queue))

	assert.Nil(t, NextWaiting(nil))
}

func TestSortQueueStableOnEqualTimes(t *testing.T) {
	queue := queueOf("09:00", "09:00")
	first := queue[0].ID
	SortQueue(queue)
	assert.Equal(t, first, queue[0].ID, "earlier creation keeps its place")
}

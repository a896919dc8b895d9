package schedule

import (
	"testing"

	"go-clinic-queue/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeTiming(start, end string, duration, maxBookings int) *entity.DoctorTiming {
	active := true
	return &entity.DoctorTiming{
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: duration,
		MaxBookings:         maxBookings,
		IsActive:            &active,
	}
}

func TestResolveAvailabilityNoTiming(t *testing.T) {
	result, err := ResolveAvailability("2026-09-07", 1, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.AllSlots)
	assert.Empty(t, result.AvailableSlots)
	assert.Zero(t, result.TotalSlots)
	assert.False(t, result.IsFullyBooked)
}

func TestResolveAvailabilityInactiveTiming(t *testing.T) {
	timing := activeTiming("09:00", "10:00", 15, 4)
	inactive := false
	timing.IsActive = &inactive

	result, err := ResolveAvailability("2026-09-07", 1, timing, nil)
	require.NoError(t, err)
	assert.Empty(t, result.AllSlots)
	assert.False(t, result.IsFullyBooked)
}

func TestResolveAvailabilityMarksBookedSlots(t *testing.T) {
	timing := activeTiming("09:00", "11:00", 30, 10)

	result, err := ResolveAvailability("2026-09-07", 1, timing, []string{"10:00"})
	require.NoError(t, err)

	require.Len(t, result.AllSlots, 4)
	for _, slot := range result.AllSlots {
		if slot.Time == "10:00" {
			assert.False(t, slot.IsAvailable)
		} else {
			assert.True(t, slot.IsAvailable, "slot %s should be free", slot.Time)
		}
	}
	assert.Equal(t, 1, result.BookedSlots)
}

func TestResolveAvailabilitySecondsTruncated(t *testing.T) {
	// Time columns come back from Postgres as HH:MM:SS.
	timing := activeTiming("09:00:00", "10:00:00", 30, 4)

	result, err := ResolveAvailability("2026-09-07", 1, timing, []string{"09:30:00"})
	require.NoError(t, err)

	require.Len(t, result.AllSlots, 2)
	assert.Equal(t, "09:00", result.AllSlots[0].Time)
	assert.True(t, result.AllSlots[0].IsAvailable)
	assert.False(t, result.AllSlots[1].IsAvailable)
}

func TestResolveAvailabilityCapacityCap(t *testing.T) {
	// maxBookings caps the day: with 2 of 3 used, at most 1 slot is offered.
	timing := activeTiming("09:00", "12:00", 15, 3)

	result, err := ResolveAvailability("2026-09-07", 1, timing, []string{"09:00", "09:15"})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.AvailableSlots), 1)
	assert.Equal(t, "09:30", result.AvailableSlots[0].Time)
	assert.False(t, result.IsFullyBooked)
}

func TestResolveAvailabilityFullyBooked(t *testing.T) {
	timing := activeTiming("09:00", "10:00", 15, 4)

	result, err := ResolveAvailability("2026-09-07", 1, timing,
		[]string{"09:00", "09:15", "09:30", "09:45"})
	require.NoError(t, err)

	assert.True(t, result.IsFullyBooked)
	assert.Empty(t, result.AvailableSlots)
	assert.Equal(t, 4, result.BookedSlots)
	assert.Equal(t, 4, result.TotalSlots)
}

func TestResolveAvailabilityZeroMaxBookingsDefaultsToSlotCount(t *testing.T) {
	timing := activeTiming("09:00", "10:00", 15, 0)

	result, err := ResolveAvailability("2026-09-07", 1, timing, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, result.MaxBookings)
	assert.Len(t, result.AvailableSlots, 4)
}

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		want     []string
	}{
		{"full hour in 15s", "09:00", "10:00", 15, []string{"09:00", "09:15", "09:30", "09:45"}},
		{"trailing remainder dropped", "09:00", "09:31", 30, []string{"09:00"}},
		{"exact fit", "09:00", "09:30", 30, []string{"09:00"}},
		{"duration larger than window", "09:00", "09:20", 30, []string{}},
		{"inverted window is empty", "10:00", "09:00", 15, []string{}},
		{"equal bounds empty", "09:00", "09:00", 15, []string{}},
		{"across midday", "11:30", "13:00", 45, []string{"11:30", "12:15"}},
		{"zero padded output", "08:05", "08:35", 10, []string{"08:05", "08:15", "08:25"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateTimeSlots(tt.start, tt.end, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateTimeSlotsDeterministic(t *testing.T) {
	first, err := GenerateTimeSlots("09:00", "12:00", 20)
	require.NoError(t, err)
	second, err := GenerateTimeSlots("09:00", "12:00", 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateTimeSlotsErrors(t *testing.T) {
	_, err := GenerateTimeSlots("09:00", "10:00", 0)
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)

	_, err = GenerateTimeSlots("09:00", "10:00", -15)
	assert.ErrorIs(t, err, ErrInvalidSlotDuration)

	_, err = GenerateTimeSlots("9am", "10:00", 15)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = GenerateTimeSlots("09:00", "25:00", 15)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestParseMinutes(t *testing.T) {
	m, err := ParseMinutes("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ParseMinutes("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, m)

	// Database time values carry seconds; the hour/minute parts still parse.
	m, err = ParseMinutes("10:30:00")
	require.NoError(t, err)
	assert.Equal(t, 10*60+30, m)

	_, err = ParseMinutes("24:00")
	assert.ErrorIs(t, err, ErrInvalidTime)
	_, err = ParseMinutes("12:60")
	assert.ErrorIs(t, err, ErrInvalidTime)
	_, err = ParseMinutes("noon")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestAddMinutes(t *testing.T) {
	got, err := AddMinutes("09:45", 30)
	require.NoError(t, err)
	assert.Equal(t, "10:15", got)

	got, err = AddMinutes("23:50", 20)
	require.NoError(t, err)
	assert.Equal(t, "00:10", got)

	got, err = AddMinutes("10:00:00", 5)
	require.NoError(t, err)
	assert.Equal(t, "10:05", got)
}

func TestTruncateToMinute(t *testing.T) {
	assert.Equal(t, "10:00", TruncateToMinute("10:00:00"))
	assert.Equal(t, "10:00", TruncateToMinute("10:00"))
	assert.Equal(t, "9:00", TruncateToMinute("9:00"))
}

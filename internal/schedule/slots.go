package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTime is returned when a time string is not zero-padded HH:MM.
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
	// ErrInvalidSlotDuration is returned for non-positive slot durations.
	ErrInvalidSlotDuration = errors.New("slot duration must be positive")
)

// ParseMinutes converts an HH:MM string to minutes since midnight.
func ParseMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0, ErrInvalidTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTime
	}
	return hour*60 + minute, nil
}

// FormatMinutes converts minutes since midnight back to zero-padded HH:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// TruncateToMinute normalizes a database time value ("10:00:00") to HH:MM.
func TruncateToMinute(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// AddMinutes shifts an HH:MM time forward by delta minutes, wrapping at
// midnight the way a wall clock would.
func AddMinutes(t string, delta int) (string, error) {
	m, err := ParseMinutes(t)
	if err != nil {
		return "", err
	}
	m = (m + delta) % (24 * 60)
	if m < 0 {
		m += 24 * 60
	}
	return FormatMinutes(m), nil
}

// GenerateTimeSlots produces the ordered candidate slot start times inside a
// working window. A slot is emitted only when it fits entirely before the end
// of the window; a trailing partial remainder is dropped. An inverted window
// (start >= end) yields an empty list, not an error.
func GenerateTimeSlots(startTime, endTime string, slotDurationMinutes int) ([]string, error) {
	if slotDurationMinutes <= 0 {
		return nil, ErrInvalidSlotDuration
	}

	start, err := ParseMinutes(startTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseMinutes(endTime)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for current := start; current+slotDurationMinutes <= end; current += slotDurationMinutes {
		slots = append(slots, FormatMinutes(current))
	}

	return slots, nil
}

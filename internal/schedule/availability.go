package schedule

import (
	"go-clinic-queue/internal/domain/entity"
)

// Slot is a single candidate appointment start time for one day.
type Slot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

// Availability is the resolved slot picture for one doctor on one date.
//
// AvailableSlots is AllSlots filtered to free ones and truncated to the
// remaining day capacity: MaxBookings caps the day as a whole, so once
// bookedCount reaches it the list is empty even if raw free slots remain.
type Availability struct {
	Date           string `json:"date"` // YYYY-MM-DD
	DayOfWeek      int    `json:"day_of_week"`
	AllSlots       []Slot `json:"all_slots"`
	AvailableSlots []Slot `json:"available_slots"`
	TotalSlots     int    `json:"total_slots"`
	BookedSlots    int    `json:"booked_slots"`
	MaxBookings    int    `json:"max_bookings"`
	IsFullyBooked  bool   `json:"is_fully_booked"`
}

// ResolveAvailability combines a doctor's working window with the day's
// existing bookings. A nil or inactive timing is a valid empty state (the
// doctor simply does not work that day), never an error. bookedTimes must be
// the HH:MM starts of the day's non-cancelled appointments.
func ResolveAvailability(date string, dayOfWeek int, timing *entity.DoctorTiming, bookedTimes []string) (*Availability, error) {
	result := &Availability{
		Date:           date,
		DayOfWeek:      dayOfWeek,
		AllSlots:       []Slot{},
		AvailableSlots: []Slot{},
	}

	if timing == nil || !timing.Active() {
		return result, nil
	}

	slots, err := GenerateTimeSlots(
		TruncateToMinute(timing.StartTime),
		TruncateToMinute(timing.EndTime),
		timing.SlotDurationMinutes,
	)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[TruncateToMinute(t)] = true
	}

	for _, slot := range slots {
		result.AllSlots = append(result.AllSlots, Slot{
			Time:        slot,
			IsAvailable: !booked[slot],
		})
	}

	maxBookings := timing.MaxBookings
	if maxBookings <= 0 {
		maxBookings = len(slots)
	}
	bookedCount := len(bookedTimes)

	remaining := maxBookings - bookedCount
	if remaining < 0 {
		remaining = 0
	}

	for _, slot := range result.AllSlots {
		if !slot.IsAvailable {
			continue
		}
		if len(result.AvailableSlots) >= remaining {
			break
		}
		result.AvailableSlots = append(result.AvailableSlots, slot)
	}

	result.TotalSlots = len(slots)
	result.BookedSlots = bookedCount
	result.MaxBookings = maxBookings
	result.IsFullyBooked = bookedCount >= maxBookings

	return result, nil
}

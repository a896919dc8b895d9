package usecase

import (
	"context"
	"testing"
	"time"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	usecase AvailabilityUsecase
	appts   *fakeAppointmentRepo
	timings *fakeTimingRepo
	doctors *fakeDoctorProfileRepo
	day     time.Time
	date    string
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()

	db := newTestDB(t)
	day := time.Now().UTC().AddDate(0, 0, 7)

	appts := &fakeAppointmentRepo{}
	timings := &fakeTimingRepo{}
	doctors := &fakeDoctorProfileRepo{}

	uc := NewAvailabilityUsecase(db, testLogger(), timings, appts, doctors)

	return &availabilityFixture{
		usecase: uc,
		appts:   appts,
		timings: timings,
		doctors: doctors,
		day:     day,
		date:    day.Format("2006-01-02"),
	}
}

// addDoctor registers a doctor with a 09:00-11:00 window on the fixture day.
func (f *availabilityFixture) addDoctor(t *testing.T, name string, maxBookings int) uuid.UUID {
	t.Helper()

	doctorID := uuid.New()
	f.doctors.profiles = append(f.doctors.profiles, &entity.DoctorProfile{
		UserID:         doctorID,
		STRNumber:      "STR-" + doctorID.String()[:8],
		Specialization: "General Practice",
		ClinicCity:     "Jakarta",
		User:           entity.User{ID: doctorID, FullName: name},
	})

	active := true
	require.NoError(t, f.timings.Create(nil, &entity.DoctorTiming{
		DoctorID:            doctorID,
		DayOfWeek:           int(f.day.Weekday()),
		StartTime:           "09:00",
		EndTime:             "11:00",
		SlotDurationMinutes: 30,
		MaxBookings:         maxBookings,
		IsActive:            &active,
	}))
	return doctorID
}

func (f *availabilityFixture) book(doctorID uuid.UUID, slot string, status entity.AppointmentStatus) {
	f.appts.appointments = append(f.appts.appointments, &entity.Appointment{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		PatientID: uuid.New(),
		Date:      f.day,
		Time:      slot,
		Status:    status,
	})
}

func TestGetAvailabilityRejectsMalformedDate(t *testing.T) {
	f := newAvailabilityFixture(t)
	doctorID := f.addDoctor(t, "Dr. Ratna Sari", 4)

	_, err := f.usecase.GetAvailability(context.Background(), doctorID, "next tuesday")

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetAvailabilityUnknownDoctor(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.usecase.GetAvailability(context.Background(), uuid.New(), f.date)

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetAvailabilityGeneratesSlotGrid(t *testing.T) {
	f := newAvailabilityFixture(t)
	doctorID := f.addDoctor(t, "Dr. Ratna Sari", 4)
	f.book(doctorID, "09:30", entity.AppointmentStatusScheduled)

	resp, err := f.usecase.GetAvailability(context.Background(), doctorID, f.date)

	require.NoError(t, err)
	assert.Equal(t, 4, resp.TotalSlots)
	assert.Equal(t, 1, resp.BookedSlots)
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, resp.AvailableSlots)
	assert.False(t, resp.IsFullyBooked)

	require.Len(t, resp.AllSlots, 4)
	assert.True(t, resp.AllSlots[0].IsAvailable)
	assert.False(t, resp.AllSlots[1].IsAvailable)
}

func TestGetAvailabilityIgnoresCancelledBookings(t *testing.T) {
	f := newAvailabilityFixture(t)
	doctorID := f.addDoctor(t, "Dr. Ratna Sari", 4)
	f.book(doctorID, "09:30", entity.AppointmentStatusCancelled)

	resp, err := f.usecase.GetAvailability(context.Background(), doctorID, f.date)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.BookedSlots)
	assert.Len(t, resp.AvailableSlots, 4)
}

func TestGetAvailabilityNoShowKeepsSlotOccupied(t *testing.T) {
	f := newAvailabilityFixture(t)
	doctorID := f.addDoctor(t, "Dr. Ratna Sari", 2)
	f.book(doctorID, "09:00", entity.AppointmentStatusNoShow)

	resp, err := f.usecase.GetAvailability(context.Background(), doctorID, f.date)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.BookedSlots)
	require.Len(t, resp.AllSlots, 4)
	assert.False(t, resp.AllSlots[0].IsAvailable)
	assert.NotContains(t, resp.AvailableSlots, "09:00")
}

func TestGetAvailabilityDayCapLimitsFreeSlots(t *testing.T) {
	f := newAvailabilityFixture(t)
	doctorID := f.addDoctor(t, "Dr. Ratna Sari", 2)
	f.book(doctorID, "09:00", entity.AppointmentStatusScheduled)

	resp, err := f.usecase.GetAvailability(context.Background(), doctorID, f.date)

	require.NoError(t, err)
	// One booking left under the cap, even though three slots are free.
	assert.Equal(t, []string{"09:30"}, resp.AvailableSlots)
	assert.False(t, resp.IsFullyBooked)
}

func TestGetAvailabilityFullyBookedDay(t *testing.T) {
	f := newAvailabilityFixture(t)
	doctorID := f.addDoctor(t, "Dr. Ratna Sari", 2)
	f.book(doctorID, "09:00", entity.AppointmentStatusScheduled)
	f.book(doctorID, "09:30", entity.AppointmentStatusCompleted)

	resp, err := f.usecase.GetAvailability(context.Background(), doctorID, f.date)

	require.NoError(t, err)
	assert.True(t, resp.IsFullyBooked)
	assert.Empty(t, resp.AvailableSlots)
}

func TestGetAvailabilityDayWithoutTiming(t *testing.T) {
	f := newAvailabilityFixture(t)
	doctorID := f.addDoctor(t, "Dr. Ratna Sari", 4)

	offDay := f.day.AddDate(0, 0, 1)
	resp, err := f.usecase.GetAvailability(context.Background(), doctorID, offDay.Format("2006-01-02"))

	require.NoError(t, err)
	assert.Zero(t, resp.TotalSlots)
	assert.Empty(t, resp.AvailableSlots)
	assert.Equal(t, "Doctor is not available on this day", resp.Message)
}

func TestSearchAvailabilityRejectsMalformedDate(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.usecase.SearchAvailability(context.Background(), "2026/09/01", &dto.SearchDoctorRequest{})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSearchAvailabilityOrdersByFreeSlots(t *testing.T) {
	f := newAvailabilityFixture(t)
	busy := f.addDoctor(t, "Dr. Andi Wijaya", 4)
	free := f.addDoctor(t, "Dr. Ratna Sari", 4)
	f.book(busy, "09:00", entity.AppointmentStatusScheduled)
	f.book(busy, "09:30", entity.AppointmentStatusScheduled)

	resp, err := f.usecase.SearchAvailability(context.Background(), f.date, &dto.SearchDoctorRequest{})

	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, free, resp.Results[0].DoctorID)
	assert.Equal(t, 4, resp.Results[0].FreeSlotCount)
	assert.Equal(t, busy, resp.Results[1].DoctorID)
	assert.Equal(t, 2, resp.Results[1].FreeSlotCount)
}

func TestSearchAvailabilitySkipsFullyBookedDoctors(t *testing.T) {
	f := newAvailabilityFixture(t)
	full := f.addDoctor(t, "Dr. Andi Wijaya", 1)
	open := f.addDoctor(t, "Dr. Ratna Sari", 4)
	f.book(full, "09:00", entity.AppointmentStatusScheduled)

	resp, err := f.usecase.SearchAvailability(context.Background(), f.date, &dto.SearchDoctorRequest{})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, open, resp.Results[0].DoctorID)
}

package usecase

import (
	"testing"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timingFixture struct {
	usecase  DoctorTimingUsecase
	timings  *fakeTimingRepo
	doctorID uuid.UUID
}

func newTimingFixture(t *testing.T) *timingFixture {
	t.Helper()

	db := newTestDB(t)
	doctorID := uuid.New()

	doctors := &fakeDoctorProfileRepo{}
	doctors.profiles = append(doctors.profiles, &entity.DoctorProfile{
		UserID:         doctorID,
		STRNumber:      "STR-5521",
		Specialization: "Neurology",
		User:           entity.User{ID: doctorID, FullName: "Dr. Bayu Pratama"},
	})

	timings := &fakeTimingRepo{}
	uc := NewDoctorTimingUsecase(db, testLogger(), timings, doctors, &fakeAuditService{})

	return &timingFixture{
		usecase:  uc,
		timings:  timings,
		doctorID: doctorID,
	}
}

func validTimingRequest() *dto.CreateTimingRequest {
	return &dto.CreateTimingRequest{
		DayOfWeek:           1,
		StartTime:           "08:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 20,
		MaxBookings:         10,
	}
}

func TestCreateTimingRejectsMalformedTime(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	req := validTimingRequest()
	req.StartTime = "8 o'clock"
	_, err := f.usecase.CreateTiming(ctx, f.doctorID, req)

	assert.ErrorIs(t, err, ErrInvalidTimingFormat)
}

func TestCreateTimingRejectsInvertedWindow(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	req := validTimingRequest()
	req.StartTime = "14:00"
	req.EndTime = "09:00"
	_, err := f.usecase.CreateTiming(ctx, f.doctorID, req)

	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestCreateTimingUnknownDoctor(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	_, err := f.usecase.CreateTiming(ctx, uuid.New(), validTimingRequest())

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateTimingRejectsDuplicateDay(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	_, err := f.usecase.CreateTiming(ctx, f.doctorID, validTimingRequest())
	require.NoError(t, err)

	_, err = f.usecase.CreateTiming(ctx, f.doctorID, validTimingRequest())
	assert.ErrorIs(t, err, ErrTimingExists)
}

func TestCreateTimingReturnsActiveTiming(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	resp, err := f.usecase.CreateTiming(ctx, f.doctorID, validTimingRequest())

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, f.doctorID, resp.DoctorID)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, "12:00", resp.EndTime)
	require.NotNil(t, resp.IsActive)
	assert.True(t, *resp.IsActive)
}

func TestUpdateTimingOfAnotherDoctor(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	created, err := f.usecase.CreateTiming(ctx, f.doctorID, validTimingRequest())
	require.NoError(t, err)

	_, err = f.usecase.UpdateTiming(ctx, uuid.New(), created.ID, &dto.UpdateTimingRequest{
		MaxBookings: 5,
	})

	assert.ErrorIs(t, err, ErrTimingNotFound)
}

func TestUpdateTimingRejectsInvertedWindow(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	created, err := f.usecase.CreateTiming(ctx, f.doctorID, validTimingRequest())
	require.NoError(t, err)

	_, err = f.usecase.UpdateTiming(ctx, f.doctorID, created.ID, &dto.UpdateTimingRequest{
		EndTime: "07:00",
	})

	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestUpdateTimingAppliesPartialChanges(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	created, err := f.usecase.CreateTiming(ctx, f.doctorID, validTimingRequest())
	require.NoError(t, err)

	resp, err := f.usecase.UpdateTiming(ctx, f.doctorID, created.ID, &dto.UpdateTimingRequest{
		EndTime:     "13:00",
		MaxBookings: 12,
	})

	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, "13:00", resp.EndTime)
	assert.Equal(t, 12, resp.MaxBookings)
	assert.Equal(t, 20, resp.SlotDurationMinutes)
}

func TestDeactivateTiming(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	created, err := f.usecase.CreateTiming(ctx, f.doctorID, validTimingRequest())
	require.NoError(t, err)

	require.NoError(t, f.usecase.DeactivateTiming(ctx, f.doctorID, created.ID))

	stored, err := f.timings.FindByID(nil, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active())

	// Already inactive, nothing left to deactivate.
	assert.ErrorIs(t, f.usecase.DeactivateTiming(ctx, f.doctorID, created.ID), ErrTimingNotFound)
}

func TestGetTimingsListsAllDays(t *testing.T) {
	f := newTimingFixture(t)
	ctx := authedContext(f.doctorID, entity.RoleIDDoctor)

	for day := 1; day <= 3; day++ {
		req := validTimingRequest()
		req.DayOfWeek = day
		_, err := f.usecase.CreateTiming(ctx, f.doctorID, req)
		require.NoError(t, err)
	}

	resp, err := f.usecase.GetTimings(ctx, f.doctorID)

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
}

package usecase

import (
	"context"
	"testing"

	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type staffFixture struct {
	usecase StaffUsecase
	users   *fakeUserRepo
	audit   *fakeAuditService
}

func newStaffFixture(t *testing.T) *staffFixture {
	t.Helper()

	users := &fakeUserRepo{}
	audit := &fakeAuditService{}
	return &staffFixture{
		usecase: NewStaffUsecase(newTestDB(t), testLogger(), users, audit),
		users:   users,
		audit:   audit,
	}
}

func (f *staffFixture) seedStaff(email, fullName string) *entity.User {
	user := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDStaff,
		Email:    email,
		FullName: fullName,
	}
	f.users.users = append(f.users.users, user)
	return user
}

func TestCreateStaffHashesPasswordAndAssignsRole(t *testing.T) {
	f := newStaffFixture(t)

	resp, err := f.usecase.CreateStaff(context.Background(), &dto.CreateStaffRequest{
		Email:    "desk@clinic.test",
		Password: "secret123",
		FullName: "Rina Front Desk",
	})

	require.NoError(t, err)
	assert.Equal(t, "desk@clinic.test", resp.Email)
	assert.Equal(t, "Rina Front Desk", resp.FullName)
	assert.True(t, resp.IsActive)

	require.Len(t, f.users.users, 1)
	created := f.users.users[0]
	assert.Equal(t, entity.RoleIDStaff, created.RoleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
	assert.Equal(t, 1, f.audit.entries)
}

func TestCreateStaffRejectsDuplicateEmail(t *testing.T) {
	f := newStaffFixture(t)
	f.seedStaff("desk@clinic.test", "Rina Front Desk")

	_, err := f.usecase.CreateStaff(context.Background(), &dto.CreateStaffRequest{
		Email:    "desk@clinic.test",
		Password: "secret123",
		FullName: "Another Rina",
	})

	assert.ErrorIs(t, err, ErrStaffEmailExists)
}

func TestGetStaffRejectsNonStaffUser(t *testing.T) {
	f := newStaffFixture(t)
	doctor := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDDoctor,
		Email:    "doc@clinic.test",
		FullName: "Dr. Andi",
	}
	f.users.users = append(f.users.users, doctor)

	_, err := f.usecase.GetStaff(context.Background(), doctor.ID)

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestGetAllStaffListsOnlyStaffRole(t *testing.T) {
	f := newStaffFixture(t)
	f.seedStaff("desk1@clinic.test", "Rina")
	f.seedStaff("desk2@clinic.test", "Sari")
	f.users.users = append(f.users.users, &entity.User{
		ID:     uuid.New(),
		RoleID: entity.RoleIDPatient,
		Email:  "budi@clinic.test",
	})

	resp, err := f.usecase.GetAllStaff(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Staff, 2)
}

func TestUpdateStaffDeactivatesAccount(t *testing.T) {
	f := newStaffFixture(t)
	staff := f.seedStaff("desk@clinic.test", "Rina")

	inactive := false
	resp, err := f.usecase.UpdateStaff(context.Background(), staff.ID, &dto.UpdateStaffRequest{
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, 1, f.audit.entries)
}

func TestDeleteStaffRemovesUser(t *testing.T) {
	f := newStaffFixture(t)
	staff := f.seedStaff("desk@clinic.test", "Rina")

	err := f.usecase.DeleteStaff(context.Background(), staff.ID)

	require.NoError(t, err)
	assert.Empty(t, f.users.users)

	err = f.usecase.DeleteStaff(context.Background(), staff.ID)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

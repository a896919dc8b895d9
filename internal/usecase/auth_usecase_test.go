package usecase

import (
	"context"
	"testing"
	"time"

	"go-clinic-queue/config"
	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	usecase AuthUsecase
	users   *fakeUserRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := &fakeUserRepo{}
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
	redisClient := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})

	return &authFixture{
		usecase: NewAuthUsecase(newTestDB(t), testLogger(), users, nil, nil, nil, jwtService, redisClient),
		users:   users,
	}
}

func (f *authFixture) seedUser(t *testing.T, email, password string, active bool) *entity.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDPatient,
		Email:    email,
		Password: string(hashed),
		FullName: "Budi Santoso",
		IsActive: &active,
	}
	f.users.users = append(f.users.users, user)
	return user
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@clinic.test",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "budi@clinic.test", "correct-horse", true)

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{
		Email:    "budi@clinic.test",
		Password: "wrong-horse",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "budi@clinic.test", "correct-horse", false)

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{
		Email:    "budi@clinic.test",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, ErrAccountInactive)
}

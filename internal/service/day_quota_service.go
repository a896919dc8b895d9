package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-clinic-queue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrDayQuotaFull is returned when a doctor's day has no booking capacity left.
var ErrDayQuotaFull = errors.New("doctor day quota is full")

// reserveQuotaScript decrements the remaining-capacity counter and rolls the
// decrement back when it would go negative. Runs atomically inside Redis so
// concurrent bookings never double-spend the last slot.
var reserveQuotaScript = redis.NewScript(`
	local remaining = redis.call('DECR', KEYS[1])
	if remaining < 0 then
		redis.call('INCR', KEYS[1])
		return -1
	end
	return remaining
`)

const (
	// Redis key prefix for per-doctor per-day booking capacity
	dayQuotaKeyPrefix = "appt:quota:"

	dayQuotaTimeout = 5 * time.Second
)

// DayQuotaService keeps a Redis counter of remaining booking capacity per
// doctor per day, mirroring the max_bookings cap in doctor_timings. The
// database unique index stays the source of truth; the counter is a cheap
// front gate that rejects bookings for an already-full day before opening
// a transaction.
//
// Sync-on-miss: when a key is absent the counter is rebuilt from the
// appointments table under the doctor's current cap. Keys expire 24 hours
// after the day they guard.
type DayQuotaService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewDayQuotaService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *DayQuotaService {
	return &DayQuotaService{
		db:          db,
		redisClient: redisClient,
		log:         log,
	}
}

// Reserve takes one unit of the doctor's capacity for the given day.
// Returns ErrDayQuotaFull when the day is full. Redis being unreachable is
// NOT a booking failure; the transaction-level checks still hold, so the
// reservation degrades to a no-op with a warning.
func (s *DayQuotaService) Reserve(ctx context.Context, doctorID uuid.UUID, date time.Time, maxBookings int) error {
	if maxBookings <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, dayQuotaTimeout)
	defer cancel()

	key := s.quotaKey(doctorID, date)

	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil {
		s.log.Warnf("Failed to check quota key %s, skipping quota gate: %+v", key, err)
		return nil
	}
	if exists == 0 {
		if err := s.syncFromDatabase(ctx, doctorID, date, maxBookings); err != nil {
			s.log.Warnf("Failed to sync quota for %s, skipping quota gate: %+v", key, err)
			return nil
		}
	}

	result, err := reserveQuotaScript.Run(ctx, s.redisClient, []string{key}).Int()
	if err != nil {
		s.log.Warnf("Failed to reserve quota for %s, skipping quota gate: %+v", key, err)
		return nil
	}

	if result == -1 {
		return ErrDayQuotaFull
	}

	s.log.Debugf("Reserved quota for %s: remaining=%d", key, result)
	return nil
}

// Release returns one unit of capacity after a cancellation. Only touches the
// counter when the key exists; a missing key will be rebuilt from the
// database on the next Reserve.
func (s *DayQuotaService) Release(ctx context.Context, doctorID uuid.UUID, date time.Time) {
	ctx, cancel := context.WithTimeout(ctx, dayQuotaTimeout)
	defer cancel()

	key := s.quotaKey(doctorID, date)

	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return
	}

	if err := s.redisClient.Incr(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to release quota for %s: %+v", key, err)
	}
}

func (s *DayQuotaService) quotaKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", dayQuotaKeyPrefix, doctorID, date.Format("2006-01-02"))
}

func (s *DayQuotaService) syncFromDatabase(ctx context.Context, doctorID uuid.UUID, date time.Time, maxBookings int) error {
	var booked int64
	err := s.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status NOT IN ?",
			doctorID, date.Format("2006-01-02"),
			[]entity.AppointmentStatus{entity.AppointmentStatusCancelled, entity.AppointmentStatusNoShow}).
		Count(&booked).Error
	if err != nil {
		return fmt.Errorf("count booked appointments: %w", err)
	}

	remaining := maxBookings - int(booked)
	if remaining < 0 {
		remaining = 0
	}

	key := s.quotaKey(doctorID, date)
	ttl := time.Until(date.AddDate(0, 0, 1))
	if ttl <= 0 {
		ttl = time.Minute
	}

	// SetNX so a concurrent Reserve that already rebuilt the key wins.
	if err := s.redisClient.SetNX(ctx, key, remaining, ttl).Err(); err != nil {
		return fmt.Errorf("seed quota key %s: %w", key, err)
	}

	s.log.Debugf("Seeded quota key %s: remaining=%d ttl=%v", key, remaining, ttl)
	return nil
}

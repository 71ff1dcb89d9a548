package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another in-flight booking already holds the slot
var ErrSlotHeld = errors.New("slot is already held")

const (
	// Redis key prefix for slot holds: one key per (doctor, date, slot)
	slotHoldKeyPrefix = "appointment:slot:"

	// Holds outlive any realistic booking window; terminal transitions
	// release them explicitly, the TTL only reaps leftovers.
	slotHoldTTL = 48 * time.Hour
)

// SlotHoldService serializes concurrent bookings for the same
// (doctor, date, slot) triple in front of the database. Two sessions racing
// on book() meet here first: exactly one acquires the hold, the loser gets
// ErrSlotHeld before any row is written. The database unique index on active
// slots remains the authoritative guarantee; the hold keeps the common race
// out of the DB entirely.
type SlotHoldService interface {
	Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) error
	Release(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) error
}

type redisSlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger) SlotHoldService {
	return &redisSlotHoldService{
		redisClient: redisClient,
		log:         log,
	}
}

// Acquire takes the hold with SET NX; the whole check-and-set is one atomic
// Redis command, so concurrent callers cannot both succeed.
func (s *redisSlotHoldService) Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) error {
	key := slotHoldKey(doctorID, date, timeSlot)

	ok, err := s.redisClient.SetNX(ctx, key, "held", slotHoldTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire slot hold %s: %+v", key, err)
		return err
	}
	if !ok {
		return ErrSlotHeld
	}
	return nil
}

// Release frees the hold. Callers treat failures as non-fatal: the TTL
// bounds how long a leaked hold can block the slot.
func (s *redisSlotHoldService) Release(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) error {
	key := slotHoldKey(doctorID, date, timeSlot)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to release slot hold %s: %+v", key, err)
		return err
	}
	return nil
}

func slotHoldKey(doctorID uuid.UUID, date time.Time, timeSlot string) string {
	return fmt.Sprintf("%s%s:%s:%s", slotHoldKeyPrefix, doctorID, date.Format("2006-01-02"), timeSlot)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	domainRepo "clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for doctor slot templates
	templateKeyPrefix = "doctor:slots:"

	// Templates change rarely (only on doctor create/update), so a modest
	// TTL bounds staleness even if an invalidation is lost.
	templateTTL = 15 * time.Minute
)

// TemplateCache serves doctor slot templates from Redis, falling back to the
// relational store on miss or Redis failure. Availability resolution hits
// this on every request, while templates only change on doctor mutation.
type TemplateCache struct {
	redisClient *redis.Client
	doctorRepo  domainRepo.DoctorRepository
	log         *logrus.Logger
}

func NewTemplateCache(redisClient *redis.Client, doctorRepo domainRepo.DoctorRepository, log *logrus.Logger) *TemplateCache {
	return &TemplateCache{
		redisClient: redisClient,
		doctorRepo:  doctorRepo,
		log:         log,
	}
}

// AvailableTimes returns the doctor's recurring slot template. Unknown
// doctors yield an empty template, not an error.
func (c *TemplateCache) AvailableTimes(ctx context.Context, doctorID uuid.UUID) ([]string, error) {
	key := templateKeyPrefix + doctorID.String()

	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err == nil {
		var slots []string
		if json.Unmarshal(data, &slots) == nil {
			return slots, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Redis being down must not take availability down with it.
		c.log.Warnf("Template cache read failed for doctor %s: %v", doctorID, err)
	}

	doctor, err := c.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, nil
	}

	if data, err := json.Marshal(doctor.AvailableTimes); err == nil {
		if err := c.redisClient.Set(ctx, key, data, templateTTL).Err(); err != nil {
			c.log.Warnf("Template cache write failed for doctor %s: %v", doctorID, err)
		}
	}

	return doctor.AvailableTimes, nil
}

// Invalidate drops the cached template after a doctor mutation.
func (c *TemplateCache) Invalidate(ctx context.Context, doctorID uuid.UUID) {
	key := templateKeyPrefix + doctorID.String()
	if err := c.redisClient.Del(ctx, key).Err(); err != nil {
		c.log.Warnf("Template cache invalidation failed for doctor %s: %v", doctorID, err)
	}
}

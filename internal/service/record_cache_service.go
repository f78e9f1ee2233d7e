package service

import (
	"context"
	"encoding/json"
	"time"

	"go-surgical-scheduling/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for per-day flat record lists
	recordCacheKeyPrefix = "grade:records:"

	// Cached days expire on their own even if an invalidation is missed
	recordCacheTTL = 5 * time.Minute

	// Timeout for individual Redis operations
	recordCacheTimeout = 5 * time.Second
)

// RecordCacheService caches the FLAT record list of a (hospital, day) pair.
// The reconstructed grade tree is never cached: the tree is always a pure
// function of the flat rows, and every mutation invalidates the day, so a
// stale hierarchy cannot survive a write.
//
// Cache failures are never surfaced to callers; a broken Redis degrades to
// plain store reads.
type RecordCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewRecordCacheService(redisClient *redis.Client, log *logrus.Logger) *RecordCacheService {
	return &RecordCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

func (s *RecordCacheService) dayKey(hospitalID, date string) string {
	return recordCacheKeyPrefix + hospitalID + ":" + date
}

// GetDay returns the cached records for the day, or ok=false on a miss.
func (s *RecordCacheService) GetDay(ctx context.Context, hospitalID, date string) ([]entity.ScheduleRecord, bool) {
	ctx, cancel := context.WithTimeout(ctx, recordCacheTimeout)
	defer cancel()

	payload, err := s.redisClient.Get(ctx, s.dayKey(hospitalID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Failed to read record cache: %+v", err)
		}
		return nil, false
	}

	var records []entity.ScheduleRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		s.log.Warnf("Failed to decode record cache entry: %+v", err)
		return nil, false
	}
	return records, true
}

// SetDay stores the day's records with a TTL.
func (s *RecordCacheService) SetDay(ctx context.Context, hospitalID, date string, records []entity.ScheduleRecord) {
	payload, err := json.Marshal(records)
	if err != nil {
		s.log.Warnf("Failed to encode record cache entry: %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, recordCacheTimeout)
	defer cancel()

	if err := s.redisClient.Set(ctx, s.dayKey(hospitalID, date), payload, recordCacheTTL).Err(); err != nil {
		s.log.Warnf("Failed to write record cache: %+v", err)
	}
}

// InvalidateDay drops the day's cache entry. Called after every mutation
// touching the day.
func (s *RecordCacheService) InvalidateDay(ctx context.Context, hospitalID, date string) {
	ctx, cancel := context.WithTimeout(ctx, recordCacheTimeout)
	defer cancel()

	if err := s.redisClient.Del(ctx, s.dayKey(hospitalID, date)).Err(); err != nil {
		s.log.Warnf("Failed to invalidate record cache: %+v", err)
	}
}

package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"daily-reconciliation/internal/domain"
	"daily-reconciliation/internal/usecase"
)

const lastRatesKey = "rates:last_used"

// HintedRepository is a DayRecordRepository that can also answer rate hints.
type HintedRepository interface {
	usecase.DayRecordRepository
	usecase.RateHintSource
}

// cachedRates is the value stored under lastRatesKey.
type cachedRates struct {
	Date  string         `json:"date"`
	Rates domain.RateSet `json:"rates"`
}

// RedisRateHintCache remembers the rates of the last saved real day in redis
// so new days do not have to scan the store. Redis failures are logged and
// the inner repository answers instead.
type RedisRateHintCache struct {
	HintedRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisRateHintCache wraps inner. A zero ttl keeps the hint until overwritten.
func NewRedisRateHintCache(inner HintedRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisRateHintCache {
	return &RedisRateHintCache{HintedRepository: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *RedisRateHintCache) Save(ctx context.Context, rec *domain.DayRecord) error {
	if err := c.HintedRepository.Save(ctx, rec); err != nil {
		return err
	}
	if rec.Mode != domain.ModeReal || rec.Delivery.RateSnapshot == nil {
		return nil
	}

	payload, _ := json.Marshal(cachedRates{
		Date:  rec.Date.Format(domain.DateLayout),
		Rates: *rec.Delivery.RateSnapshot,
	})
	if err := c.rdb.Set(ctx, lastRatesKey, payload, c.ttl).Err(); err != nil {
		c.logger.WithFields(logrus.Fields{
			"key":   lastRatesKey,
			"error": err.Error(),
		}).Warn("could not cache last used rates")
	}
	return nil
}

func (c *RedisRateHintCache) LastUsedRates(ctx context.Context, exclude time.Time) (*domain.RateSet, error) {
	raw, err := c.rdb.Get(ctx, lastRatesKey).Bytes()
	switch {
	case err == nil:
		var cached cachedRates
		if jerr := json.Unmarshal(raw, &cached); jerr == nil && cached.Date != domain.TruncateDate(exclude).Format(domain.DateLayout) {
			rates := cached.Rates
			return &rates, nil
		}
	case err != redis.Nil:
		c.logger.WithFields(logrus.Fields{
			"key":   lastRatesKey,
			"error": err.Error(),
		}).Warn("rate hint cache unavailable")
	}
	return c.HintedRepository.LastUsedRates(ctx, exclude)
}

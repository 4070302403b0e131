package gateway

import (
	"context"
	"sync"
	"time"

	"daily-reconciliation/internal/domain"
)

// MemoryDayRecordRepository keeps day records in process memory.
// Records are cloned on the way in and out.
type MemoryDayRecordRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.DayRecord
}

func NewMemoryDayRecordRepository() *MemoryDayRecordRepository {
	return &MemoryDayRecordRepository{records: make(map[string]*domain.DayRecord)}
}

func (r *MemoryDayRecordRepository) Load(_ context.Context, date time.Time, mode domain.Mode) (*domain.DayRecord, error) {
	blank := domain.NewDayRecord(date, mode)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec, ok := r.records[blank.Key()]; ok {
		return rec.Clone(), nil
	}
	return blank, nil
}

func (r *MemoryDayRecordRepository) Save(_ context.Context, rec *domain.DayRecord) error {
	stored := rec.Clone()
	stored.Date = domain.TruncateDate(stored.Date)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[stored.Key()] = stored
	return nil
}

func (r *MemoryDayRecordRepository) LastUsedRates(_ context.Context, exclude time.Time) (*domain.RateSet, error) {
	exclude = domain.TruncateDate(exclude)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.DayRecord
	for _, rec := range r.records {
		if rec.Mode != domain.ModeReal || rec.Date.Equal(exclude) || rec.Delivery.RateSnapshot == nil {
			continue
		}
		if latest == nil || rec.UpdatedAt.After(latest.UpdatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, nil
	}
	snap := *latest.Delivery.RateSnapshot
	return &snap, nil
}

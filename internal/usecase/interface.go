package usecase

import (
	"context"
	"time"

	"daily-reconciliation/internal/domain"
)

// DayRecordRepository loads and saves whole day records.
// The usecase layer depends on this interface, not on a concrete store.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type DayRecordRepository interface {
	// Load returns the stored record, or the empty default when none exists.
	Load(ctx context.Context, date time.Time, mode domain.Mode) (*domain.DayRecord, error)
	// Save upserts the full record keyed by (date, mode).
	Save(ctx context.Context, rec *domain.DayRecord) error
}

// RateHintSource answers the most recently saved delivery rates of any other real day.
type RateHintSource interface {
	LastUsedRates(ctx context.Context, exclude time.Time) (*domain.RateSet, error)
}

// DateLocker grants one editor at a time a lease on a calendar date.
type DateLocker interface {
	Lock(ctx context.Context, date time.Time) (Lease, error)
}

// Lease is held while a date is being edited.
type Lease interface {
	// Refresh extends the lease. It returns ErrDateLocked once the lease
	// is no longer held.
	Refresh(ctx context.Context) error
	Release(ctx context.Context) error
}

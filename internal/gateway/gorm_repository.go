package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daily-reconciliation/internal/domain"
)

// GormDayRecordRepository stores day records in a SQL database.
type GormDayRecordRepository struct {
	db *gorm.DB
}

// NewGormDayRecordRepository creates a new repository instance.
func NewGormDayRecordRepository(db *gorm.DB) *GormDayRecordRepository {
	return &GormDayRecordRepository{db: db}
}

// Load returns the record for (date, mode), or the empty default on a miss.
func (r *GormDayRecordRepository) Load(ctx context.Context, date time.Time, mode domain.Mode) (*domain.DayRecord, error) {
	day := domain.TruncateDate(date)

	var m DayRecordModel
	err := r.db.WithContext(ctx).
		Where("date = ? AND mode = ?", day, string(mode)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewDayRecord(day, mode), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load day record %s/%s: %w", day.Format(domain.DateLayout), mode, err)
	}
	return m.toDomain(), nil
}

// Save upserts the whole record; every column is overwritten.
func (r *GormDayRecordRepository) Save(ctx context.Context, rec *domain.DayRecord) error {
	m := toModel(rec)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to save day record %s: %w", rec.Key(), err)
	}
	return nil
}

// LastUsedRates returns the rate snapshot of the most recently saved real day
// other than exclude. It returns nil when no such day exists.
func (r *GormDayRecordRepository) LastUsedRates(ctx context.Context, exclude time.Time) (*domain.RateSet, error) {
	var m DayRecordModel
	err := r.db.WithContext(ctx).
		Where("mode = ? AND date <> ? AND snapshot_commission_ht IS NOT NULL", string(domain.ModeReal), domain.TruncateDate(exclude)).
		Order("updated_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last used rates: %w", err)
	}
	return m.snapshot(), nil
}

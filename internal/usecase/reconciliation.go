package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"daily-reconciliation/internal/calc"
	"daily-reconciliation/internal/domain"
)

// SessionView is a read-only copy of the day being edited.
type SessionView struct {
	ID     uuid.UUID            `json:"session_id"`
	Date   string               `json:"date"`
	Mode   domain.Mode          `json:"mode"`
	Seeded bool                 `json:"seeded"`
	Dirty  bool                 `json:"dirty"`
	Rates  domain.RateSet       `json:"rates"`
	Record *domain.DayRecord    `json:"record"`
	Totals domain.DerivedTotals `json:"totals"`
}

// session holds the working copy of one open day. The working copy is the
// only place raw values live; totals are always recomputed from it.
type session struct {
	id          uuid.UUID
	working     *domain.DayRecord
	rates       domain.RateSet
	ratesEdited bool
	editor      editor
	seed        *domain.DayRecord
	dirty       bool
	lease       Lease
}

func (s *session) totals() domain.DerivedTotals {
	return calc.Compute(s.working, s.rates)
}

func (s *session) view() *SessionView {
	return &SessionView{
		ID:     s.id,
		Date:   s.working.Date.Format(domain.DateLayout),
		Mode:   s.working.Mode,
		Seeded: s.seed != nil,
		Dirty:  s.dirty,
		Rates:  s.rates,
		Record: s.working.Clone(),
		Totals: s.totals(),
	}
}

// ReconciliationUseCase is the edit session controller for business days.
// It keeps at most one day open; opening another day saves pending edits first.
type ReconciliationUseCase struct {
	repo     DayRecordRepository
	hints    RateHintSource
	locker   DateLocker
	resolver *calc.Resolver
	coef     domain.Coefficients
	logger   *logrus.Logger
	now      func() time.Time

	mu      sync.Mutex
	current *session
}

// Option customizes a ReconciliationUseCase.
type Option func(*ReconciliationUseCase)

// WithDateLocker guards each open day with a lease.
func WithDateLocker(l DateLocker) Option {
	return func(uc *ReconciliationUseCase) { uc.locker = l }
}

// WithRateHints sets where last-used delivery rates are read from.
func WithRateHints(h RateHintSource) Option {
	return func(uc *ReconciliationUseCase) { uc.hints = h }
}

// WithDefaultCoefficients sets the coefficients given to days that never had any.
func WithDefaultCoefficients(c domain.Coefficients) Option {
	return func(uc *ReconciliationUseCase) { uc.coef = c }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *ReconciliationUseCase) { uc.now = now }
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo DayRecordRepository, resolver *calc.Resolver, logger *logrus.Logger, opts ...Option) *ReconciliationUseCase {
	uc := &ReconciliationUseCase{
		repo:     repo,
		resolver: resolver,
		coef:     domain.DefaultCoefficients(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Open loads a day for editing. Pending edits of a different open day are
// saved as a draft before the new day is loaded; if that save fails the
// previous day stays open and the error is returned.
func (uc *ReconciliationUseCase) Open(ctx context.Context, date time.Time, mode domain.Mode) (*SessionView, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	date = domain.TruncateDate(date)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if cur := uc.current; cur != nil {
		if cur.working.Date.Equal(date) && cur.working.Mode == mode {
			return cur.view(), nil
		}
		if cur.dirty {
			if err := uc.save(ctx, cur, true, nil); err != nil {
				return nil, fmt.Errorf("could not flush pending edits of %s: %w", cur.working.Key(), err)
			}
		}
		uc.release(ctx, cur)
		uc.current = nil
	}

	var lease Lease
	if uc.locker != nil {
		var err error
		lease, err = uc.locker.Lock(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("could not lock %s: %w", date.Format(domain.DateLayout), err)
		}
	}

	s, err := uc.build(ctx, date, mode)
	if err != nil {
		if lease != nil {
			_ = lease.Release(ctx)
		}
		return nil, err
	}
	s.id = uuid.New()
	s.lease = lease
	uc.current = s

	uc.logger.WithFields(logrus.Fields{
		"session_id": s.id,
		"date":       date.Format(domain.DateLayout),
		"mode":       mode,
		"seeded":     s.seed != nil,
		"legacy":     s.working.Delivery.IsLegacy(),
	}).Info("day opened for editing")

	return s.view(), nil
}

// Preview loads and computes a day without opening it for editing.
func (uc *ReconciliationUseCase) Preview(ctx context.Context, date time.Time, mode domain.Mode) (*SessionView, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	s, err := uc.build(ctx, domain.TruncateDate(date), mode)
	if err != nil {
		return nil, err
	}
	return s.view(), nil
}

// Current returns the open day.
func (uc *ReconciliationUseCase) Current() (*SessionView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.current == nil {
		return nil, ErrNoSession
	}
	return uc.current.view(), nil
}

// Totals recomputes the derived totals of the open day from its raw fields.
func (uc *ReconciliationUseCase) Totals() (domain.DerivedTotals, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.current == nil {
		return domain.DerivedTotals{}, ErrNoSession
	}
	return uc.current.totals(), nil
}

// CommitEdit writes one raw field into the working copy and returns the
// refreshed totals. Unparseable values are stored as zero. The edit is
// refused when the date lease has been lost.
func (uc *ReconciliationUseCase) CommitEdit(ctx context.Context, field domain.Field, value string) (domain.DerivedTotals, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := uc.current
	if s == nil {
		return domain.DerivedTotals{}, ErrNoSession
	}
	if err := uc.refresh(ctx, s); err != nil {
		return domain.DerivedTotals{}, err
	}
	if err := s.editor.apply(s, field, value); err != nil {
		return domain.DerivedTotals{}, err
	}
	s.dirty = true
	return s.totals(), nil
}

// Save finalizes the open day and persists it. A draft save marks the record
// ready; a non-draft save marks it synced and stamps the sync time. When
// target is set the day is stored under that date and the session follows it.
//
// On failure the working copy is kept so the operator can retry.
func (uc *ReconciliationUseCase) Save(ctx context.Context, draft bool, target *time.Time) (*SessionView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := uc.current
	if s == nil {
		return nil, ErrNoSession
	}
	if err := uc.save(ctx, s, draft, target); err != nil {
		return nil, err
	}
	return s.view(), nil
}

// Sync recomputes, marks the open day synced and overwrites the stored record.
// Syncing an already synced day is a re-sync with a fresh timestamp.
func (uc *ReconciliationUseCase) Sync(ctx context.Context) (*SessionView, error) {
	return uc.Save(ctx, false, nil)
}

// Close discards the working copy without saving.
func (uc *ReconciliationUseCase) Close(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s := uc.current
	if s == nil {
		return
	}
	uc.release(ctx, s)
	uc.current = nil

	uc.logger.WithFields(logrus.Fields{
		"session_id": s.id,
		"date":       s.working.Date.Format(domain.DateLayout),
		"mode":       s.working.Mode,
		"discarded":  s.dirty,
	}).Info("day closed")
}

func (uc *ReconciliationUseCase) build(ctx context.Context, date time.Time, mode domain.Mode) (*session, error) {
	if mode == domain.ModeDeclared {
		return uc.buildDeclared(ctx, date)
	}

	rec, err := uc.repo.Load(ctx, date, domain.ModeReal)
	if err != nil {
		return nil, fmt.Errorf("could not load %s/%s: %w", date.Format(domain.DateLayout), domain.ModeReal, err)
	}
	working := rec.Clone()
	if !working.Persisted() || working.Coefficients.IsZero() {
		working.Coefficients = uc.coef
	}
	return &session{
		working: working,
		rates:   uc.resolve(ctx, working),
		editor:  realEditor{},
	}, nil
}

func (uc *ReconciliationUseCase) buildDeclared(ctx context.Context, date time.Time) (*session, error) {
	realRec, err := uc.repo.Load(ctx, date, domain.ModeReal)
	if err != nil {
		return nil, fmt.Errorf("could not load %s/%s: %w", date.Format(domain.DateLayout), domain.ModeReal, err)
	}
	stored, err := uc.repo.Load(ctx, date, domain.ModeDeclared)
	if err != nil {
		return nil, fmt.Errorf("could not load %s/%s: %w", date.Format(domain.DateLayout), domain.ModeDeclared, err)
	}

	if !realRec.Persisted() {
		working := stored.Clone()
		working.Mode = domain.ModeDeclared
		if working.Coefficients.IsZero() {
			working.Coefficients = uc.coef
		}
		return &session{
			working: working,
			rates:   uc.resolve(ctx, working),
			editor:  declaredEditor{seeded: false},
		}, nil
	}

	// A saved declared day keeps the coefficients it was saved with; an
	// unsaved one starts from the real day's.
	coef := realRec.Coefficients
	if stored.Persisted() && !stored.Coefficients.IsZero() {
		coef = stored.Coefficients
	}
	if coef.IsZero() {
		coef = uc.coef
	}

	working := calc.ProjectDeclared(realRec, coef)
	if stored.Persisted() {
		working.OpenTime = stored.OpenTime
		working.CloseTime = stored.CloseTime
		working.SyncStatus = stored.SyncStatus
		working.LastSyncAt = stored.LastSyncAt
		working.UpdatedAt = stored.UpdatedAt
	}

	return &session{
		working: working,
		rates:   uc.resolver.Resolve(working.Delivery, nil),
		editor:  declaredEditor{seeded: true},
		seed:    realRec.Clone(),
	}, nil
}

// resolve picks the delivery rates of rec, asking for a hint only when the
// day has never seen delivery revenue. A failing hint source is not fatal.
func (uc *ReconciliationUseCase) resolve(ctx context.Context, rec *domain.DayRecord) domain.RateSet {
	var hint *domain.RateSet
	if uc.hints != nil && calc.NeedsHint(rec.Delivery) {
		h, err := uc.hints.LastUsedRates(ctx, rec.Date)
		if err != nil {
			uc.logger.WithFields(logrus.Fields{
				"date":  rec.Date.Format(domain.DateLayout),
				"error": err.Error(),
			}).Warn("last used rates unavailable; using defaults")
		} else {
			hint = h
		}
	}
	return uc.resolver.Resolve(rec.Delivery, hint)
}

func (uc *ReconciliationUseCase) save(ctx context.Context, s *session, draft bool, target *time.Time) error {
	rec := s.working.Clone()

	if draft && rec.Mode == domain.ModeReal && rec.SyncStatus == domain.SyncStatusSynced {
		return ErrRecordSynced
	}
	if err := uc.refresh(ctx, s); err != nil {
		return err
	}

	var newLease Lease
	if target != nil {
		day := domain.TruncateDate(*target)
		if !day.Equal(rec.Date) {
			if s.seed != nil {
				return ErrTargetInvalid
			}
			if uc.locker != nil {
				l, err := uc.locker.Lock(ctx, day)
				if err != nil {
					return fmt.Errorf("could not lock %s: %w", day.Format(domain.DateLayout), err)
				}
				newLease = l
			}
			if err := uc.checkTarget(ctx, day, rec.Mode, draft); err != nil {
				if newLease != nil {
					_ = newLease.Release(ctx)
				}
				return err
			}
			rec.Date = day
		}
	}

	now := uc.now()
	if draft {
		rec.SyncStatus = domain.SyncStatusReady
	} else {
		rec.SyncStatus = domain.SyncStatusSynced
		rec.LastSyncAt = &now
	}
	if s.seed == nil && (!rec.Delivery.GrossAmount.IsZero() || rec.Delivery.RateSnapshot != nil || s.ratesEdited) {
		snap := s.rates
		rec.Delivery.RateSnapshot = &snap
	}

	// Totals are rebuilt from the raw fields of this copy, never reused.
	calc.Finalize(rec, s.rates)
	rec.UpdatedAt = now

	if err := uc.repo.Save(ctx, rec); err != nil {
		if newLease != nil {
			_ = newLease.Release(ctx)
		}
		uc.logger.WithFields(logrus.Fields{
			"session_id": s.id,
			"record":     rec.Key(),
			"error":      err.Error(),
		}).Error("could not save day record")
		return fmt.Errorf("could not save %s: %w", rec.Key(), err)
	}

	if newLease != nil {
		uc.release(ctx, s)
		s.lease = newLease
	}
	s.working = rec
	s.dirty = false
	s.ratesEdited = false

	uc.logger.WithFields(logrus.Fields{
		"session_id":  s.id,
		"date":        rec.Date.Format(domain.DateLayout),
		"mode":        rec.Mode,
		"sync_status": rec.SyncStatus,
	}).Info("day saved")
	return nil
}

// checkTarget refuses a draft save that would replace a synced real day
// stored under another date. Only a sync may overwrite it.
func (uc *ReconciliationUseCase) checkTarget(ctx context.Context, day time.Time, mode domain.Mode, draft bool) error {
	if !draft || mode != domain.ModeReal {
		return nil
	}
	existing, err := uc.repo.Load(ctx, day, mode)
	if err != nil {
		return fmt.Errorf("could not load %s/%s: %w", day.Format(domain.DateLayout), mode, err)
	}
	if existing.SyncStatus == domain.SyncStatusSynced {
		return fmt.Errorf("%w: %s", ErrRecordSynced, existing.Key())
	}
	return nil
}

// refresh extends the date lease of s. A lease that expired and was taken
// by another editor reports ErrDateLocked.
func (uc *ReconciliationUseCase) refresh(ctx context.Context, s *session) error {
	if s.lease == nil {
		return nil
	}
	if err := s.lease.Refresh(ctx); err != nil {
		uc.logger.WithFields(logrus.Fields{
			"session_id": s.id,
			"date":       s.working.Date.Format(domain.DateLayout),
			"error":      err.Error(),
		}).Warn("date lease lost")
		if errors.Is(err, ErrDateLocked) {
			return err
		}
		return fmt.Errorf("could not refresh lease of %s: %w", s.working.Date.Format(domain.DateLayout), err)
	}
	return nil
}

func (uc *ReconciliationUseCase) release(ctx context.Context, s *session) {
	if s.lease == nil {
		return
	}
	if err := s.lease.Release(ctx); err != nil && !errors.Is(err, context.Canceled) {
		uc.logger.WithFields(logrus.Fields{
			"session_id": s.id,
			"error":      err.Error(),
		}).Warn("could not release date lease")
	}
	s.lease = nil
}

// Compare computes the real and declared versions of a day side by side
// without opening either for editing.
func (uc *ReconciliationUseCase) Compare(ctx context.Context, date time.Time) (*domain.ComparisonReport, error) {
	date = domain.TruncateDate(date)

	realSession, err := uc.build(ctx, date, domain.ModeReal)
	if err != nil {
		return nil, err
	}
	declaredSession, err := uc.buildDeclared(ctx, date)
	if err != nil {
		return nil, err
	}

	report := domain.NewComparisonReport(date.Format(domain.DateLayout), realSession.totals(), declaredSession.totals())
	report.RealSaved = realSession.working.Persisted()
	report.DeclaredSaved = declaredSession.working.Persisted()
	report.Coefficients = declaredSession.working.Coefficients
	return report, nil
}

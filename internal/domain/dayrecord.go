package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode selects which version of a business day a record holds.
type Mode string

const (
	ModeReal     Mode = "real"
	ModeDeclared Mode = "declared"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeReal || m == ModeDeclared
}

// SyncStatus tracks how far a record has travelled towards the fiscal export.
type SyncStatus string

const (
	SyncStatusDraft  SyncStatus = "draft"
	SyncStatusReady  SyncStatus = "ready"
	SyncStatusSynced SyncStatus = "synced"
)

// CategoryKey is a business-defined sales category code.
type CategoryKey string

const (
	CategoryBread     CategoryKey = "BREAD"
	CategoryPastry    CategoryKey = "PASTRY"
	CategorySnacking  CategoryKey = "SNACKING"
	CategoryBeverages CategoryKey = "BEVERAGES"
	CategoryGrocery   CategoryKey = "GROCERY"

	// ExemptCategory is the only category sold without VAT.
	ExemptCategory = CategoryBread
)

// KnownCategories lists the category codes an operator may enter.
var KnownCategories = []CategoryKey{
	CategoryBread,
	CategoryPastry,
	CategorySnacking,
	CategoryBeverages,
	CategoryGrocery,
}

// IsKnownCategory reports whether key is one of KnownCategories.
func IsKnownCategory(key CategoryKey) bool {
	for _, k := range KnownCategories {
		if k == key {
			return true
		}
	}
	return false
}

// DateLayout is the ISO calendar date used for record keys.
const DateLayout = time.DateOnly

// Supplements are manual real-mode adjustments added on top of the manual subtotal.
type Supplements struct {
	Caterers decimal.Decimal `json:"caterers"`
	Register decimal.Decimal `json:"register"`
}

// Payments holds the non-cash settlement channels of the day.
type Payments struct {
	CardCount   int             `json:"card_count"`
	CardAmount  decimal.Decimal `json:"card_amount"`
	CheckCount  int             `json:"check_count"`
	CheckAmount decimal.Decimal `json:"check_amount"`
}

// ClockTime is a wall-clock hour and minute. Values are not range checked.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Coefficients scale real category revenue into declared revenue.
type Coefficients struct {
	Exempt  decimal.Decimal `json:"exempt"`
	Taxable decimal.Decimal `json:"taxable"`
}

// IsZero reports whether neither coefficient was ever set.
func (c Coefficients) IsZero() bool {
	return c.Exempt.IsZero() && c.Taxable.IsZero()
}

// DefaultCoefficients are used when a real record carries no coefficients.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		Exempt:  decimal.RequireFromString("1.11"),
		Taxable: decimal.RequireFromString("0.60"),
	}
}

// DeliveryBreakdown is the third-party delivery platform channel.
// TaxableShare and ExemptShare are always derived from GrossAmount.
type DeliveryBreakdown struct {
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	TaxableShare  decimal.Decimal `json:"taxable_share"`
	ExemptShare   decimal.Decimal `json:"exempt_share"`
	Incidents     decimal.Decimal `json:"incidents"`
	CashCollected decimal.Decimal `json:"cash_collected"`
	RateSnapshot  *RateSet        `json:"rate_snapshot,omitempty"`
}

// IsLegacy reports whether delivery revenue was entered before rates were snapshotted.
func (d DeliveryBreakdown) IsLegacy() bool {
	return !d.GrossAmount.IsZero() && d.RateSnapshot == nil
}

// DayRecord is one business day in one mode. It is the unit of persistence.
type DayRecord struct {
	Date           time.Time                       `json:"date"`
	Mode           Mode                            `json:"mode"`
	CategorySales  map[CategoryKey]decimal.Decimal `json:"category_sales"`
	Supplements    Supplements                     `json:"supplements"`
	Payments       Payments                        `json:"payments"`
	ManualSubtotal decimal.Decimal                 `json:"manual_subtotal"`
	TicketCount    int                             `json:"ticket_count"`
	Delivery       DeliveryBreakdown               `json:"delivery"`
	OpenTime       ClockTime                       `json:"open_time"`
	CloseTime      ClockTime                       `json:"close_time"`
	Coefficients   Coefficients                    `json:"declared_coefficients"`
	SyncStatus     SyncStatus                      `json:"sync_status"`
	LastSyncAt     *time.Time                      `json:"last_sync_at,omitempty"`

	// UpdatedAt is zero for a record that was never saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDayRecord returns the empty default record for a date.
func NewDayRecord(date time.Time, mode Mode) *DayRecord {
	return &DayRecord{
		Date:          TruncateDate(date),
		Mode:          mode,
		CategorySales: make(map[CategoryKey]decimal.Decimal),
		Coefficients:  DefaultCoefficients(),
		SyncStatus:    SyncStatusDraft,
	}
}

// Persisted reports whether the record was loaded from the store.
func (r *DayRecord) Persisted() bool {
	return !r.UpdatedAt.IsZero()
}

// Key formats the (date, mode) identity, e.g. "2025-01-31/real".
func (r *DayRecord) Key() string {
	return r.Date.Format(DateLayout) + "/" + string(r.Mode)
}

// Clone returns a deep copy so callers can mutate it freely.
func (r *DayRecord) Clone() *DayRecord {
	c := *r
	c.CategorySales = make(map[CategoryKey]decimal.Decimal, len(r.CategorySales))
	for k, v := range r.CategorySales {
		c.CategorySales[k] = v
	}
	if r.Delivery.RateSnapshot != nil {
		snap := *r.Delivery.RateSnapshot
		c.Delivery.RateSnapshot = &snap
	}
	if r.LastSyncAt != nil {
		at := *r.LastSyncAt
		c.LastSyncAt = &at
	}
	return &c
}

// TruncateDate drops the time of day, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateDate(t), nil
}

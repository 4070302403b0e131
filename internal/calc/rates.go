package calc

import (
	"github.com/shopspring/decimal"

	"daily-reconciliation/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	// vatDivisor turns a tax-inclusive amount at the single 20 % rate into its net value.
	vatDivisor = decimal.RequireFromString("1.2")
)

// DefaultRates is the rate table used for brand-new days when no hint exists.
func DefaultRates() domain.RateTable {
	return domain.RateTable{
		CommissionHT:    decimal.NewFromInt(15),
		TaxableSharePct: decimal.NewFromInt(90),
		ExemptSharePct:  decimal.NewFromInt(10),
	}
}

// Resolver decides which delivery rates apply to a day.
type Resolver struct {
	defaults domain.RateTable
}

// NewResolver creates a resolver falling back to defaults for brand-new days.
func NewResolver(defaults domain.RateTable) *Resolver {
	return &Resolver{defaults: defaults}
}

// Defaults returns the table used for brand-new days.
func (r *Resolver) Defaults() domain.RateTable {
	return r.defaults
}

// Resolve returns the rates for a delivery channel. It never fails.
//
// A stored snapshot always wins. A channel with revenue but no snapshot is a
// legacy day and gets the historic constants, hint or not. Only a day with no
// delivery revenue at all takes the last-used hint, then the defaults.
func (r *Resolver) Resolve(delivery domain.DeliveryBreakdown, hint *domain.RateSet) domain.RateSet {
	switch {
	case delivery.RateSnapshot != nil:
		return fromStored(*delivery.RateSnapshot, nil)
	case !delivery.GrossAmount.IsZero():
		return fromTable(domain.HistoricRates)
	case hint != nil:
		return fromStored(*hint, &r.defaults)
	default:
		return fromTable(r.defaults)
	}
}

// NeedsHint reports whether Resolve would consult a hint for this channel.
func NeedsHint(delivery domain.DeliveryBreakdown) bool {
	return delivery.RateSnapshot == nil && delivery.GrossAmount.IsZero()
}

// Normalize turns a fraction stored by mistake (0.15) into a percentage (15).
// Values at or above 1, zero and negatives are returned unchanged.
func Normalize(p decimal.Decimal) decimal.Decimal {
	for p.IsPositive() && p.LessThan(decimal.NewFromInt(1)) {
		p = p.Mul(hundred)
	}
	return p
}

// CommissionTTC is the tax-inclusive commission for a tax-exclusive one.
func CommissionTTC(ht decimal.Decimal) decimal.Decimal {
	return ht.Mul(vatDivisor)
}

// CompleteRates normalizes rs and re-derives its TTC commission.
func CompleteRates(rs domain.RateSet) domain.RateSet {
	return fromStored(rs, nil)
}

func fromTable(t domain.RateTable) domain.RateSet {
	ht := Normalize(t.CommissionHT)
	return domain.RateSet{
		CommissionHT:    ht,
		CommissionTTC:   CommissionTTC(ht),
		TaxableSharePct: Normalize(t.TaxableSharePct),
		ExemptSharePct:  Normalize(t.ExemptSharePct),
	}
}

// fromStored reads a snapshot or hint. When fallback is set, missing (zero)
// fields are filled from it; snapshots are taken verbatim.
func fromStored(s domain.RateSet, fallback *domain.RateTable) domain.RateSet {
	ht := Normalize(s.CommissionHT)
	if ht.IsZero() {
		if ttc := Normalize(s.CommissionTTC); !ttc.IsZero() {
			ht = ttc.Div(vatDivisor)
		}
	}
	taxable := Normalize(s.TaxableSharePct)
	exempt := Normalize(s.ExemptSharePct)

	if fallback != nil {
		if ht.IsZero() {
			ht = Normalize(fallback.CommissionHT)
		}
		if taxable.IsZero() {
			taxable = Normalize(fallback.TaxableSharePct)
		}
		if exempt.IsZero() {
			exempt = Normalize(fallback.ExemptSharePct)
		}
	}

	return domain.RateSet{
		CommissionHT:    ht,
		CommissionTTC:   CommissionTTC(ht),
		TaxableSharePct: taxable,
		ExemptSharePct:  exempt,
	}
}

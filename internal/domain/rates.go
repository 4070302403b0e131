package domain

import "github.com/shopspring/decimal"

// RateSet holds the delivery platform percentages in effect for a day.
// All values are percentages (15 means 15 %).
type RateSet struct {
	CommissionHT    decimal.Decimal `json:"commission_ht"`
	CommissionTTC   decimal.Decimal `json:"commission_ttc"`
	TaxableSharePct decimal.Decimal `json:"taxable_share_pct"`
	ExemptSharePct  decimal.Decimal `json:"exempt_share_pct"`
}

// Equal compares every percentage numerically.
func (r RateSet) Equal(o RateSet) bool {
	return r.CommissionHT.Equal(o.CommissionHT) &&
		r.CommissionTTC.Equal(o.CommissionTTC) &&
		r.TaxableSharePct.Equal(o.TaxableSharePct) &&
		r.ExemptSharePct.Equal(o.ExemptSharePct)
}

// RateTable is a named set of fallback percentages.
type RateTable struct {
	CommissionHT    decimal.Decimal
	TaxableSharePct decimal.Decimal
	ExemptSharePct  decimal.Decimal
}

// HistoricRates are the constants in force before rates were snapshotted.
// Legacy records always resolve to these, whatever the current defaults are.
var HistoricRates = RateTable{
	CommissionHT:    decimal.NewFromInt(15),
	TaxableSharePct: decimal.NewFromInt(90),
	ExemptSharePct:  decimal.NewFromInt(10),
}

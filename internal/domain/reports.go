package domain

import "github.com/shopspring/decimal"

// TotalsDifference holds declared minus real for the figures filed with the tax office.
type TotalsDifference struct {
	ExemptRevenue decimal.Decimal `json:"exempt_revenue"`
	TaxableGross  decimal.Decimal `json:"taxable_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	CashDerived   decimal.Decimal `json:"cash_derived"`
}

// ComparisonReport puts the real and declared versions of one day side by side.
type ComparisonReport struct {
	Date          string           `json:"date"`
	Real          DerivedTotals    `json:"real"`
	Declared      DerivedTotals    `json:"declared"`
	Difference    TotalsDifference `json:"difference"`
	RealSaved     bool             `json:"real_saved"`
	DeclaredSaved bool             `json:"declared_saved"`
	Coefficients  Coefficients     `json:"coefficients"`
}

// NewComparisonReport builds the report from unrounded totals; every figure
// is rounded to cents afterwards.
func NewComparisonReport(date string, realTotals, declaredTotals DerivedTotals) *ComparisonReport {
	return &ComparisonReport{
		Date:     date,
		Real:     realTotals.Rounded(),
		Declared: declaredTotals.Rounded(),
		Difference: TotalsDifference{
			ExemptRevenue: declaredTotals.ExemptRevenue.Sub(realTotals.ExemptRevenue).Round(2),
			TaxableGross:  declaredTotals.TaxableGross.Sub(realTotals.TaxableGross).Round(2),
			TotalNet:      declaredTotals.TotalNet.Sub(realTotals.TotalNet).Round(2),
			TotalGross:    declaredTotals.TotalGross.Sub(realTotals.TotalGross).Round(2),
			CashDerived:   declaredTotals.CashDerived.Sub(realTotals.CashDerived).Round(2),
		},
	}
}

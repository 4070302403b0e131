package domain

import "github.com/shopspring/decimal"

// DerivedTotals is every figure computed from a record's raw fields.
// Values keep full precision; use Rounded for display.
type DerivedTotals struct {
	Mode Mode `json:"mode"`

	ExemptRevenue    decimal.Decimal `json:"exempt_revenue"`
	TaxableGross     decimal.Decimal `json:"taxable_gross"`
	TaxableNet       decimal.Decimal `json:"taxable_net"`
	TotalNet         decimal.Decimal `json:"total_net"`
	TheoreticalGross decimal.Decimal `json:"theoretical_gross"`
	TotalGross       decimal.Decimal `json:"total_gross"`
	Discount         decimal.Decimal `json:"discount"`

	CommissionHT         decimal.Decimal `json:"commission_ht"`
	CommissionTTC        decimal.Decimal `json:"commission_ttc"`
	DeliveryTaxableShare decimal.Decimal `json:"delivery_taxable_share"`
	DeliveryExemptShare  decimal.Decimal `json:"delivery_exempt_share"`
	DeliveryNet          decimal.Decimal `json:"delivery_net"`

	CashDerived decimal.Decimal `json:"cash_derived"`
}

// Rounded returns a copy with every figure rounded to two decimal places.
func (t DerivedTotals) Rounded() DerivedTotals {
	r := func(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
	return DerivedTotals{
		Mode:                 t.Mode,
		ExemptRevenue:        r(t.ExemptRevenue),
		TaxableGross:         r(t.TaxableGross),
		TaxableNet:           r(t.TaxableNet),
		TotalNet:             r(t.TotalNet),
		TheoreticalGross:     r(t.TheoreticalGross),
		TotalGross:           r(t.TotalGross),
		Discount:             r(t.Discount),
		CommissionHT:         r(t.CommissionHT),
		CommissionTTC:        r(t.CommissionTTC),
		DeliveryTaxableShare: r(t.DeliveryTaxableShare),
		DeliveryExemptShare:  r(t.DeliveryExemptShare),
		DeliveryNet:          r(t.DeliveryNet),
		CashDerived:          r(t.CashDerived),
	}
}

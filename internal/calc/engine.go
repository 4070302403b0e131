package calc

import (
	"github.com/shopspring/decimal"

	"daily-reconciliation/internal/domain"
)

// DeliveryFigures are the derived values of the delivery platform channel.
type DeliveryFigures struct {
	TaxableShare decimal.Decimal
	ExemptShare  decimal.Decimal
	Net          decimal.Decimal
}

// ComputeDelivery splits the platform gross amount and nets out the commission.
func ComputeDelivery(d domain.DeliveryBreakdown, rates domain.RateSet) DeliveryFigures {
	gross := d.GrossAmount
	ttc := CommissionTTC(rates.CommissionHT)
	return DeliveryFigures{
		TaxableShare: gross.Mul(rates.TaxableSharePct).Div(hundred).Div(vatDivisor),
		ExemptShare:  gross.Mul(rates.ExemptSharePct).Div(hundred),
		Net: gross.Mul(decimal.NewFromInt(1).Sub(ttc.Div(hundred))).
			Sub(d.Incidents).
			Sub(d.CashCollected),
	}
}

// Compute derives every total of a record from its raw fields.
// It has no side effects and is safe to call on every keystroke.
func Compute(rec *domain.DayRecord, rates domain.RateSet) domain.DerivedTotals {
	exempt := decimal.Zero
	taxableGross := decimal.Zero
	for key, amount := range rec.CategorySales {
		if key == domain.ExemptCategory {
			exempt = exempt.Add(amount)
			continue
		}
		taxableGross = taxableGross.Add(amount)
	}

	taxableNet := taxableGross.Div(vatDivisor)
	theoretical := exempt.Add(taxableGross)

	var totalGross, discount decimal.Decimal
	if rec.Mode == domain.ModeDeclared {
		totalGross = theoretical
		discount = decimal.Zero
	} else {
		totalGross = rec.ManualSubtotal.
			Add(rec.Supplements.Caterers).
			Add(rec.Supplements.Register)
		discount = theoretical.Sub(rec.ManualSubtotal)
	}

	delivery := ComputeDelivery(rec.Delivery, rates)

	cash := totalGross.
		Sub(rec.Payments.CardAmount).
		Sub(rec.Payments.CheckAmount).
		Sub(rec.Delivery.GrossAmount).
		Add(rec.Delivery.CashCollected)

	return domain.DerivedTotals{
		Mode:                 rec.Mode,
		ExemptRevenue:        exempt,
		TaxableGross:         taxableGross,
		TaxableNet:           taxableNet,
		TotalNet:             taxableNet.Add(exempt),
		TheoreticalGross:     theoretical,
		TotalGross:           totalGross,
		Discount:             discount,
		CommissionHT:         rates.CommissionHT,
		CommissionTTC:        CommissionTTC(rates.CommissionHT),
		DeliveryTaxableShare: delivery.TaxableShare,
		DeliveryExemptShare:  delivery.ExemptShare,
		DeliveryNet:          delivery.Net,
		CashDerived:          cash,
	}
}

// Finalize writes the derived delivery shares back onto rec and returns the totals.
func Finalize(rec *domain.DayRecord, rates domain.RateSet) domain.DerivedTotals {
	totals := Compute(rec, rates)
	rec.Delivery.TaxableShare = totals.DeliveryTaxableShare
	rec.Delivery.ExemptShare = totals.DeliveryExemptShare
	return totals
}

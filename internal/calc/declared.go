package calc

import (
	"github.com/shopspring/decimal"

	"daily-reconciliation/internal/domain"
)

// ProjectDeclared derives the declared version of a real day.
//
// Only category revenue is scaled. Payments, ticket count, opening hours and
// the delivery channel are copied from the real record, since card, check and
// platform statements can be checked against them.
func ProjectDeclared(realDay *domain.DayRecord, coef domain.Coefficients) *domain.DayRecord {
	out := domain.NewDayRecord(realDay.Date, domain.ModeDeclared)
	out.Coefficients = coef

	for key, amount := range realDay.CategorySales {
		factor := coef.Taxable
		if key == domain.ExemptCategory {
			factor = coef.Exempt
		}
		out.CategorySales[key] = amount.Mul(factor)
	}

	out.Payments = realDay.Payments
	out.TicketCount = realDay.TicketCount
	out.OpenTime = realDay.OpenTime
	out.CloseTime = realDay.CloseTime
	out.Supplements = domain.Supplements{}
	out.ManualSubtotal = decimal.Zero

	out.Delivery = realDay.Delivery
	if realDay.Delivery.RateSnapshot != nil {
		snap := *realDay.Delivery.RateSnapshot
		out.Delivery.RateSnapshot = &snap
	}
	rates := NewResolver(domain.HistoricRates).Resolve(realDay.Delivery, nil)
	figures := ComputeDelivery(out.Delivery, rates)
	out.Delivery.TaxableShare = figures.TaxableShare
	out.Delivery.ExemptShare = figures.ExemptShare

	return out
}

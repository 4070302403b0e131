package usecase

import (
	"fmt"

	"daily-reconciliation/internal/calc"
	"daily-reconciliation/internal/domain"
)

// editor applies one raw edit to a session's working copy. Each mode has its
// own editor so that the set of writable fields is fixed per mode.
type editor interface {
	apply(s *session, f domain.Field, value string) error
}

// realEditor accepts every raw input of a real day.
type realEditor struct{}

func (realEditor) apply(s *session, f domain.Field, value string) error {
	rec := s.working
	switch f {
	case domain.FieldCaterers:
		rec.Supplements.Caterers = domain.ParseAmount(value)
	case domain.FieldRegister:
		rec.Supplements.Register = domain.ParseAmount(value)
	case domain.FieldManualSubtotal:
		rec.ManualSubtotal = domain.ParseAmount(value)
	case domain.FieldCoefExempt:
		rec.Coefficients.Exempt = domain.ParseAmount(value)
	case domain.FieldCoefTaxable:
		rec.Coefficients.Taxable = domain.ParseAmount(value)
	default:
		return applyShared(s, f, value)
	}
	return nil
}

// declaredEditor only adjusts the coefficients and opening hours of a day
// projected from a real record. When no real record exists the declared day
// is entered by hand like a real one, minus the real-only adjustments.
type declaredEditor struct {
	seeded bool
}

func (e declaredEditor) apply(s *session, f domain.Field, value string) error {
	rec := s.working
	switch f {
	case domain.FieldCoefExempt:
		rec.Coefficients.Exempt = domain.ParseAmount(value)
		e.reproject(s)
		return nil
	case domain.FieldCoefTaxable:
		rec.Coefficients.Taxable = domain.ParseAmount(value)
		e.reproject(s)
		return nil
	case domain.FieldOpenTime, domain.FieldCloseTime:
		return applyShared(s, f, value)
	case domain.FieldCaterers, domain.FieldRegister, domain.FieldManualSubtotal:
		return fmt.Errorf("%w: %s", ErrFieldLocked, f)
	}

	if e.seeded {
		if !isKnownField(f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		return fmt.Errorf("%w: %s", ErrFieldLocked, f)
	}
	return applyShared(s, f, value)
}

func (e declaredEditor) reproject(s *session) {
	if !e.seeded || s.seed == nil {
		return
	}
	projected := calc.ProjectDeclared(s.seed, s.working.Coefficients)
	s.working.CategorySales = projected.CategorySales
}

// applyShared handles the inputs both modes write the same way.
func applyShared(s *session, f domain.Field, value string) error {
	rec := s.working
	if key, ok := f.Category(); ok {
		if !domain.IsKnownCategory(key) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		rec.CategorySales[key] = domain.ParseAmount(value)
		return nil
	}

	switch f {
	case domain.FieldCardCount:
		rec.Payments.CardCount = domain.ParseCount(value)
	case domain.FieldCardAmount:
		rec.Payments.CardAmount = domain.ParseAmount(value)
	case domain.FieldCheckCount:
		rec.Payments.CheckCount = domain.ParseCount(value)
	case domain.FieldCheckAmount:
		rec.Payments.CheckAmount = domain.ParseAmount(value)
	case domain.FieldTicketCount:
		rec.TicketCount = domain.ParseCount(value)
	case domain.FieldDeliveryGross:
		rec.Delivery.GrossAmount = domain.ParseAmount(value)
	case domain.FieldDeliveryIncidents:
		rec.Delivery.Incidents = domain.ParseAmount(value)
	case domain.FieldDeliveryCash:
		rec.Delivery.CashCollected = domain.ParseAmount(value)
	case domain.FieldCommissionHT:
		s.rates.CommissionHT = calc.Normalize(domain.ParsePercent(value))
		s.rates.CommissionTTC = calc.CommissionTTC(s.rates.CommissionHT)
		s.ratesEdited = true
	case domain.FieldTaxableSharePct:
		s.rates.TaxableSharePct = calc.Normalize(domain.ParsePercent(value))
		s.ratesEdited = true
	case domain.FieldExemptSharePct:
		s.rates.ExemptSharePct = calc.Normalize(domain.ParsePercent(value))
		s.ratesEdited = true
	case domain.FieldOpenTime:
		rec.OpenTime = domain.ParseClock(value)
	case domain.FieldCloseTime:
		rec.CloseTime = domain.ParseClock(value)
	case domain.FieldDeliveryTaxableShare, domain.FieldDeliveryExemptShare, domain.FieldCommissionTTC:
		return fmt.Errorf("%w: %s is computed", ErrFieldLocked, f)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}

var knownFields = map[domain.Field]struct{}{
	domain.FieldCaterers:          {},
	domain.FieldRegister:          {},
	domain.FieldCardCount:         {},
	domain.FieldCardAmount:        {},
	domain.FieldCheckCount:        {},
	domain.FieldCheckAmount:       {},
	domain.FieldManualSubtotal:    {},
	domain.FieldTicketCount:       {},
	domain.FieldDeliveryGross:     {},
	domain.FieldDeliveryIncidents: {},
	domain.FieldDeliveryCash:      {},
	domain.FieldCommissionHT:      {},
	domain.FieldTaxableSharePct:   {},
	domain.FieldExemptSharePct:    {},
	domain.FieldOpenTime:          {},
	domain.FieldCloseTime:         {},
	domain.FieldCoefExempt:        {},
	domain.FieldCoefTaxable:       {},
}

func isKnownField(f domain.Field) bool {
	if key, ok := f.Category(); ok {
		return domain.IsKnownCategory(key)
	}
	_, ok := knownFields[f]
	return ok || f.IsDerived()
}

package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-reconciliation/internal/calc"
	"daily-reconciliation/internal/domain"
)

func realDay() *domain.DayRecord {
	rec := domain.NewDayRecord(dec0Date, domain.ModeReal)
	rec.CategorySales[domain.ExemptCategory] = dec("1000")
	rec.CategorySales[domain.CategoryPastry] = dec("500")
	rec.CategorySales[domain.CategoryBeverages] = dec("250")
	rec.Supplements = domain.Supplements{Caterers: dec("80"), Register: dec("5")}
	rec.ManualSubtotal = dec("1700")
	rec.TicketCount = 212
	rec.Payments = domain.Payments{CardCount: 40, CardAmount: dec("640"), CheckCount: 2, CheckAmount: dec("35")}
	rec.OpenTime = domain.ClockTime{Hour: 6, Minute: 30}
	rec.CloseTime = domain.ClockTime{Hour: 19, Minute: 45}
	rec.Delivery = domain.DeliveryBreakdown{
		GrossAmount:   dec("300"),
		Incidents:     dec("4"),
		CashCollected: dec("20"),
		RateSnapshot:  rateSet("15", "90", "10"),
	}
	return rec
}

func TestProjectDeclared(t *testing.T) {
	src := realDay()
	coef := domain.DefaultCoefficients()

	got := calc.ProjectDeclared(src, coef)

	require.NotNil(t, got)
	assert.Equal(t, domain.ModeDeclared, got.Mode)
	assert.Equal(t, src.Date, got.Date)
	assertDecimal(t, "1110", got.CategorySales[domain.ExemptCategory])
	assertDecimal(t, "300", got.CategorySales[domain.CategoryPastry])
	assertDecimal(t, "150", got.CategorySales[domain.CategoryBeverages])

	assert.Equal(t, src.Payments, got.Payments)
	assert.Equal(t, src.TicketCount, got.TicketCount)
	assert.Equal(t, src.OpenTime, got.OpenTime)
	assert.Equal(t, src.CloseTime, got.CloseTime)
	assert.True(t, got.Supplements.Caterers.IsZero())
	assert.True(t, got.Supplements.Register.IsZero())
	assert.True(t, got.ManualSubtotal.IsZero())
	assert.Equal(t, coef, got.Coefficients)
	assert.Equal(t, domain.SyncStatusDraft, got.SyncStatus)

	assertDecimal(t, "300", got.Delivery.GrossAmount)
	assertDecimal(t, "225", got.Delivery.TaxableShare)
	assertDecimal(t, "30", got.Delivery.ExemptShare)
	require.NotNil(t, got.Delivery.RateSnapshot)
	assert.NotSame(t, src.Delivery.RateSnapshot, got.Delivery.RateSnapshot)
}

func TestProjectDeclared_IsDeterministic(t *testing.T) {
	src := realDay()
	coef := domain.Coefficients{Exempt: dec("1.05"), Taxable: dec("0.75")}

	first := calc.ProjectDeclared(src, coef)
	second := calc.ProjectDeclared(src, coef)

	assert.Equal(t, first, second)
}

func TestProjectDeclared_TaxableCoefficientLeavesExemptAlone(t *testing.T) {
	src := realDay()
	base := calc.ProjectDeclared(src, domain.Coefficients{Exempt: dec("1.11"), Taxable: dec("0.60")})
	changed := calc.ProjectDeclared(src, domain.Coefficients{Exempt: dec("1.11"), Taxable: dec("0.95")})

	assert.True(t, base.CategorySales[domain.ExemptCategory].Equal(changed.CategorySales[domain.ExemptCategory]))
	assert.False(t, base.CategorySales[domain.CategoryPastry].Equal(changed.CategorySales[domain.CategoryPastry]))
}

func TestProjectDeclared_DoesNotTouchSource(t *testing.T) {
	src := realDay()
	before := src.Clone()

	calc.ProjectDeclared(src, domain.DefaultCoefficients())

	assert.Equal(t, before, src)
}

func TestProjectDeclared_LegacyDeliveryUsesHistoricRates(t *testing.T) {
	src := realDay()
	src.Delivery.RateSnapshot = nil

	got := calc.ProjectDeclared(src, domain.DefaultCoefficients())

	assert.Nil(t, got.Delivery.RateSnapshot)
	assertDecimal(t, "225", got.Delivery.TaxableShare)
	assertDecimal(t, "30", got.Delivery.ExemptShare)
}

func TestProjectDeclared_TotalsFollowDeclaredFormula(t *testing.T) {
	got := calc.ProjectDeclared(realDay(), domain.DefaultCoefficients())
	totals := calc.Compute(got, calc.CompleteRates(*got.Delivery.RateSnapshot))

	// 1110 + 300 + 150
	assertDecimal(t, "1560", totals.TotalGross)
	assertDecimal(t, "0", totals.Discount)
}

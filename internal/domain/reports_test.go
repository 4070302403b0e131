package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewComparisonReport(t *testing.T) {
	d := decimal.RequireFromString
	realTotals := DerivedTotals{
		Mode:          ModeReal,
		ExemptRevenue: d("1000"),
		TaxableGross:  d("600.004"),
		TotalNet:      d("1500"),
		TotalGross:    d("1600.004"),
		CashDerived:   d("1120"),
	}
	declaredTotals := DerivedTotals{
		Mode:          ModeDeclared,
		ExemptRevenue: d("1100"),
		TaxableGross:  d("360.006"),
		TotalNet:      d("1400"),
		TotalGross:    d("1460.006"),
		CashDerived:   d("980"),
	}

	report := NewComparisonReport("2025-03-14", realTotals, declaredTotals)

	assert.Equal(t, "2025-03-14", report.Date)
	assert.Equal(t, "600.00", report.Real.TaxableGross.StringFixed(2))
	assert.Equal(t, "360.01", report.Declared.TaxableGross.StringFixed(2))
	assert.Equal(t, ModeDeclared, report.Declared.Mode)

	assert.Equal(t, "100.00", report.Difference.ExemptRevenue.StringFixed(2))
	assert.Equal(t, "-240.00", report.Difference.TaxableGross.StringFixed(2))
	assert.Equal(t, "-100.00", report.Difference.TotalNet.StringFixed(2))
	assert.Equal(t, "-140.00", report.Difference.TotalGross.StringFixed(2))
	assert.Equal(t, "-140.00", report.Difference.CashDerived.StringFixed(2))
	assert.False(t, report.RealSaved)
	assert.False(t, report.DeclaredSaved)
}

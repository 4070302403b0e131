package calc_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"daily-reconciliation/internal/calc"
	"daily-reconciliation/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	msg := fmt.Sprintf("want %s, got %s", want, got.String())
	if len(msgAndArgs) > 0 {
		msg += " (" + fmt.Sprint(msgAndArgs...) + ")"
	}
	assert.True(t, dec(want).Equal(got), msg)
}

func rateSet(ht, taxable, exempt string) *domain.RateSet {
	return &domain.RateSet{
		CommissionHT:    dec(ht),
		TaxableSharePct: dec(taxable),
		ExemptSharePct:  dec(exempt),
	}
}

func TestResolver_Resolve(t *testing.T) {
	resolver := calc.NewResolver(domain.RateTable{
		CommissionHT:    dec("20"),
		TaxableSharePct: dec("80"),
		ExemptSharePct:  dec("20"),
	})

	tests := []struct {
		name        string
		delivery    domain.DeliveryBreakdown
		hint        *domain.RateSet
		wantHT      string
		wantTTC     string
		wantTaxable string
		wantExempt  string
	}{
		{
			name:        "empty day without hint uses configured defaults",
			delivery:    domain.DeliveryBreakdown{},
			wantHT:      "20",
			wantTTC:     "24",
			wantTaxable: "80",
			wantExempt:  "20",
		},
		{
			name:        "empty day takes the last used hint",
			delivery:    domain.DeliveryBreakdown{},
			hint:        rateSet("17", "85", "15"),
			wantHT:      "17",
			wantTTC:     "20.4",
			wantTaxable: "85",
			wantExempt:  "15",
		},
		{
			name:        "hint stored as fractions is normalized",
			delivery:    domain.DeliveryBreakdown{},
			hint:        rateSet("0.15", "0.9", "0.1"),
			wantHT:      "15",
			wantTTC:     "18",
			wantTaxable: "90",
			wantExempt:  "10",
		},
		{
			name:        "missing hint fields fall back to defaults",
			delivery:    domain.DeliveryBreakdown{},
			hint:        rateSet("12", "0", "0"),
			wantHT:      "12",
			wantTTC:     "14.4",
			wantTaxable: "80",
			wantExempt:  "20",
		},
		{
			name:        "legacy day ignores the hint and the defaults",
			delivery:    domain.DeliveryBreakdown{GrossAmount: dec("250")},
			hint:        rateSet("30", "50", "50"),
			wantHT:      "15",
			wantTTC:     "18",
			wantTaxable: "90",
			wantExempt:  "10",
		},
		{
			name: "snapshot is used verbatim",
			delivery: domain.DeliveryBreakdown{
				GrossAmount:  dec("250"),
				RateSnapshot: rateSet("22.5", "70", "0"),
			},
			hint:        rateSet("30", "50", "50"),
			wantHT:      "22.5",
			wantTTC:     "27",
			wantTaxable: "70",
			wantExempt:  "0",
		},
		{
			name: "snapshot wins even once the gross amount was cleared",
			delivery: domain.DeliveryBreakdown{
				RateSnapshot: rateSet("10", "95", "5"),
			},
			hint:        rateSet("30", "50", "50"),
			wantHT:      "10",
			wantTTC:     "12",
			wantTaxable: "95",
			wantExempt:  "5",
		},
		{
			name: "snapshot holding only the tax-inclusive commission",
			delivery: domain.DeliveryBreakdown{
				GrossAmount: dec("100"),
				RateSnapshot: &domain.RateSet{
					CommissionTTC:   dec("0.18"),
					TaxableSharePct: dec("90"),
					ExemptSharePct:  dec("10"),
				},
			},
			wantHT:      "15",
			wantTTC:     "18",
			wantTaxable: "90",
			wantExempt:  "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(tt.delivery, tt.hint)
			assertDecimal(t, tt.wantHT, got.CommissionHT, "commission HT")
			assertDecimal(t, tt.wantTTC, got.CommissionTTC, "commission TTC")
			assertDecimal(t, tt.wantTaxable, got.TaxableSharePct, "taxable share")
			assertDecimal(t, tt.wantExempt, got.ExemptSharePct, "exempt share")
		})
	}
}

func TestResolver_LegacyDetectionIgnoresEveryHint(t *testing.T) {
	resolver := calc.NewResolver(calc.DefaultRates())
	legacy := domain.DeliveryBreakdown{GrossAmount: dec("0.01")}

	hints := []*domain.RateSet{
		nil,
		rateSet("1", "1", "1"),
		rateSet("99", "0.5", "0.5"),
		{CommissionTTC: dec("36")},
	}
	for _, hint := range hints {
		got := resolver.Resolve(legacy, hint)
		assertDecimal(t, "15", got.CommissionHT)
		assertDecimal(t, "90", got.TaxableSharePct)
		assertDecimal(t, "10", got.ExemptSharePct)
	}
}

func TestCommissionTTCDerivation(t *testing.T) {
	resolver := calc.NewResolver(calc.DefaultRates())
	for _, ht := range []string{"0", "0.15", "1", "7.25", "15", "33.333", "100"} {
		rates := resolver.Resolve(domain.DeliveryBreakdown{RateSnapshot: &domain.RateSet{CommissionHT: dec(ht)}}, nil)
		totals := calc.Compute(domain.NewDayRecord(dec0Date, domain.ModeReal), rates)

		want := rates.CommissionHT.Mul(dec("1.2")).Round(2)
		assert.True(t, want.Equal(totals.CommissionTTC.Round(2)), "ht=%s want %s got %s", ht, want, totals.CommissionTTC)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.15", "15"},
		{"15", "15"},
		{"0", "0"},
		{"1", "1"},
		{"0.9", "90"},
		{"0.005", "50"},
		{"-0.5", "-0.5"},
		{"150", "150"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			once := calc.Normalize(dec(tt.in))
			assertDecimal(t, tt.want, once)
			assertDecimal(t, once.String(), calc.Normalize(once), "normalize must be idempotent")
		})
	}
}

func TestNeedsHint(t *testing.T) {
	assert.True(t, calc.NeedsHint(domain.DeliveryBreakdown{}))
	assert.False(t, calc.NeedsHint(domain.DeliveryBreakdown{GrossAmount: dec("1")}))
	assert.False(t, calc.NeedsHint(domain.DeliveryBreakdown{RateSnapshot: rateSet("15", "90", "10")}))
}

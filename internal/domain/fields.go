package domain

import "strings"

// Field names the raw inputs an operator can edit.
type Field string

const (
	FieldCaterers       Field = "supplements.caterers"
	FieldRegister       Field = "supplements.register"
	FieldCardCount      Field = "payments.cardCount"
	FieldCardAmount     Field = "payments.cardAmount"
	FieldCheckCount     Field = "payments.checkCount"
	FieldCheckAmount    Field = "payments.checkAmount"
	FieldManualSubtotal Field = "manualSubtotal"
	FieldTicketCount    Field = "ticketCount"

	FieldDeliveryGross     Field = "delivery.grossAmount"
	FieldDeliveryIncidents Field = "delivery.incidents"
	FieldDeliveryCash      Field = "delivery.cashCollected"
	FieldCommissionHT      Field = "delivery.commissionHT"
	FieldTaxableSharePct   Field = "delivery.taxableSharePct"
	FieldExemptSharePct    Field = "delivery.exemptSharePct"

	// Derived fields, never writable.
	FieldDeliveryTaxableShare Field = "delivery.taxableShare"
	FieldDeliveryExemptShare  Field = "delivery.exemptShare"
	FieldCommissionTTC        Field = "delivery.commissionTTC"

	FieldOpenTime  Field = "openTime"
	FieldCloseTime Field = "closeTime"

	FieldCoefExempt  Field = "coefficients.exempt"
	FieldCoefTaxable Field = "coefficients.taxable"

	categoryPrefix = "category."
)

// CategoryField returns the field addressing one category's sales.
func CategoryField(key CategoryKey) Field {
	return Field(categoryPrefix + string(key))
}

// Category extracts the category key from a "category.<KEY>" field.
func (f Field) Category() (CategoryKey, bool) {
	if !strings.HasPrefix(string(f), categoryPrefix) {
		return "", false
	}
	key := CategoryKey(strings.ToUpper(strings.TrimPrefix(string(f), categoryPrefix)))
	return key, key != ""
}

// IsRate reports whether f edits a delivery rate percentage.
func (f Field) IsRate() bool {
	return f == FieldCommissionHT || f == FieldTaxableSharePct || f == FieldExemptSharePct
}

// IsDerived reports whether f names a computed value.
func (f Field) IsDerived() bool {
	return f == FieldDeliveryTaxableShare || f == FieldDeliveryExemptShare || f == FieldCommissionTTC
}

// FieldEdit is one raw edit as typed by the operator.
type FieldEdit struct {
	Field Field  `json:"field"`
	Value string `json:"value"`
}

package gateway

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"daily-reconciliation/internal/domain"
)

// CategoryAmounts stores category sales as a JSON object column.
type CategoryAmounts map[domain.CategoryKey]decimal.Decimal

func (a *CategoryAmounts) Scan(value interface{}) error {
	if value == nil {
		*a = CategoryAmounts{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan CategoryAmounts: %v", value)
	}

	out := CategoryAmounts{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*a = out
	return nil
}

func (a CategoryAmounts) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// DayRecordModel is the persisted shape of a day record, keyed by (date, mode).
// The snapshot columns are all null for a day saved without delivery rates.
// Decimals are stored as text so coefficients and derived rates such as
// TTC/1.2 come back with every digit they were saved with.
type DayRecordModel struct {
	Date          time.Time       `gorm:"column:date;type:date;primaryKey"`
	Mode          string          `gorm:"column:mode;size:16;primaryKey"`
	CategorySales CategoryAmounts `gorm:"column:category_sales;type:text"`

	Caterers       decimal.Decimal `gorm:"column:caterers;type:varchar(64)"`
	Register       decimal.Decimal `gorm:"column:register;type:varchar(64)"`
	CardCount      int             `gorm:"column:card_count"`
	CardAmount     decimal.Decimal `gorm:"column:card_amount;type:varchar(64)"`
	CheckCount     int             `gorm:"column:check_count"`
	CheckAmount    decimal.Decimal `gorm:"column:check_amount;type:varchar(64)"`
	ManualSubtotal decimal.Decimal `gorm:"column:manual_subtotal;type:varchar(64)"`
	TicketCount    int             `gorm:"column:ticket_count"`

	DeliveryGross        decimal.Decimal `gorm:"column:delivery_gross;type:varchar(64)"`
	DeliveryTaxableShare decimal.Decimal `gorm:"column:delivery_taxable_share;type:varchar(64)"`
	DeliveryExemptShare  decimal.Decimal `gorm:"column:delivery_exempt_share;type:varchar(64)"`
	DeliveryIncidents    decimal.Decimal `gorm:"column:delivery_incidents;type:varchar(64)"`
	DeliveryCash         decimal.Decimal `gorm:"column:delivery_cash;type:varchar(64)"`

	SnapshotCommissionHT  decimal.NullDecimal `gorm:"column:snapshot_commission_ht;type:varchar(64)"`
	SnapshotCommissionTTC decimal.NullDecimal `gorm:"column:snapshot_commission_ttc;type:varchar(64)"`
	SnapshotTaxablePct    decimal.NullDecimal `gorm:"column:snapshot_taxable_pct;type:varchar(64)"`
	SnapshotExemptPct     decimal.NullDecimal `gorm:"column:snapshot_exempt_pct;type:varchar(64)"`

	OpenHour    int `gorm:"column:open_hour"`
	OpenMinute  int `gorm:"column:open_minute"`
	CloseHour   int `gorm:"column:close_hour"`
	CloseMinute int `gorm:"column:close_minute"`

	CoefExempt  decimal.Decimal `gorm:"column:coef_exempt;type:varchar(64)"`
	CoefTaxable decimal.Decimal `gorm:"column:coef_taxable;type:varchar(64)"`

	SyncStatus string     `gorm:"column:sync_status;size:16"`
	LastSyncAt *time.Time `gorm:"column:last_sync_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime:false;index"`
}

func (DayRecordModel) TableName() string {
	return "day_records"
}

func toModel(rec *domain.DayRecord) DayRecordModel {
	m := DayRecordModel{
		Date:          domain.TruncateDate(rec.Date),
		Mode:          string(rec.Mode),
		CategorySales: CategoryAmounts{},

		Caterers:       rec.Supplements.Caterers,
		Register:       rec.Supplements.Register,
		CardCount:      rec.Payments.CardCount,
		CardAmount:     rec.Payments.CardAmount,
		CheckCount:     rec.Payments.CheckCount,
		CheckAmount:    rec.Payments.CheckAmount,
		ManualSubtotal: rec.ManualSubtotal,
		TicketCount:    rec.TicketCount,

		DeliveryGross:        rec.Delivery.GrossAmount,
		DeliveryTaxableShare: rec.Delivery.TaxableShare,
		DeliveryExemptShare:  rec.Delivery.ExemptShare,
		DeliveryIncidents:    rec.Delivery.Incidents,
		DeliveryCash:         rec.Delivery.CashCollected,

		OpenHour:    rec.OpenTime.Hour,
		OpenMinute:  rec.OpenTime.Minute,
		CloseHour:   rec.CloseTime.Hour,
		CloseMinute: rec.CloseTime.Minute,

		CoefExempt:  rec.Coefficients.Exempt,
		CoefTaxable: rec.Coefficients.Taxable,

		SyncStatus: string(rec.SyncStatus),
		LastSyncAt: rec.LastSyncAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	for k, v := range rec.CategorySales {
		m.CategorySales[k] = v
	}
	if snap := rec.Delivery.RateSnapshot; snap != nil {
		m.SnapshotCommissionHT = decimal.NewNullDecimal(snap.CommissionHT)
		m.SnapshotCommissionTTC = decimal.NewNullDecimal(snap.CommissionTTC)
		m.SnapshotTaxablePct = decimal.NewNullDecimal(snap.TaxableSharePct)
		m.SnapshotExemptPct = decimal.NewNullDecimal(snap.ExemptSharePct)
	}
	return m
}

func (m DayRecordModel) toDomain() *domain.DayRecord {
	rec := domain.NewDayRecord(m.Date, domain.Mode(m.Mode))
	for k, v := range m.CategorySales {
		rec.CategorySales[k] = v
	}
	rec.Supplements = domain.Supplements{Caterers: m.Caterers, Register: m.Register}
	rec.Payments = domain.Payments{
		CardCount:   m.CardCount,
		CardAmount:  m.CardAmount,
		CheckCount:  m.CheckCount,
		CheckAmount: m.CheckAmount,
	}
	rec.ManualSubtotal = m.ManualSubtotal
	rec.TicketCount = m.TicketCount
	rec.Delivery = domain.DeliveryBreakdown{
		GrossAmount:   m.DeliveryGross,
		TaxableShare:  m.DeliveryTaxableShare,
		ExemptShare:   m.DeliveryExemptShare,
		Incidents:     m.DeliveryIncidents,
		CashCollected: m.DeliveryCash,
		RateSnapshot:  m.snapshot(),
	}
	rec.OpenTime = domain.ClockTime{Hour: m.OpenHour, Minute: m.OpenMinute}
	rec.CloseTime = domain.ClockTime{Hour: m.CloseHour, Minute: m.CloseMinute}
	rec.Coefficients = domain.Coefficients{Exempt: m.CoefExempt, Taxable: m.CoefTaxable}
	rec.SyncStatus = domain.SyncStatus(m.SyncStatus)
	rec.LastSyncAt = m.LastSyncAt
	rec.UpdatedAt = m.UpdatedAt
	return rec
}

func (m DayRecordModel) snapshot() *domain.RateSet {
	if !m.SnapshotCommissionHT.Valid && !m.SnapshotCommissionTTC.Valid &&
		!m.SnapshotTaxablePct.Valid && !m.SnapshotExemptPct.Valid {
		return nil
	}
	return &domain.RateSet{
		CommissionHT:    m.SnapshotCommissionHT.Decimal,
		CommissionTTC:   m.SnapshotCommissionTTC.Decimal,
		TaxableSharePct: m.SnapshotTaxablePct.Decimal,
		ExemptSharePct:  m.SnapshotExemptPct.Decimal,
	}
}

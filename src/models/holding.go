package models

import (
	"strings"
	"time"
)

// InstrumentType classifies what kind of instrument a holding represents.
type InstrumentType string

const (
	InstrumentStock    InstrumentType = "stock"
	InstrumentBond     InstrumentType = "bond"
	InstrumentFund     InstrumentType = "fund"
	InstrumentGold     InstrumentType = "gold"
	InstrumentCurrency InstrumentType = "currency"
)

// IsManualPriced reports whether the type requires a caller-supplied price
// instead of a provider quote.
func (t InstrumentType) IsManualPriced() bool {
	return t == InstrumentGold || t == InstrumentCurrency
}

func (t InstrumentType) Valid() bool {
	switch t {
	case InstrumentStock, InstrumentBond, InstrumentFund, InstrumentGold, InstrumentCurrency:
		return true
	}
	return false
}

// ClassifyInstrumentType maps a provider's free-text instrument description
// to one of the enum values. Matching is case-insensitive and ordered: the
// "common stock" check must run before the bare "stock" fallback would.
func ClassifyInstrumentType(description string) InstrumentType {
	s := strings.ToLower(description)
	switch {
	case strings.Contains(s, "bond"):
		return InstrumentBond
	case strings.Contains(s, "common stock"), strings.Contains(s, "stock"):
		return InstrumentStock
	case strings.Contains(s, "fund"), strings.Contains(s, "etf"):
		return InstrumentFund
	case strings.Contains(s, "gold"):
		return InstrumentGold
	case strings.Contains(s, "currency"):
		return InstrumentCurrency
	default:
		return InstrumentStock
	}
}

// Holding is one user's position in one ticker. At most one row exists per
// (user, ticker); quantity is always positive for a persisted row.
type Holding struct {
	RecordID   int            `db:"record_id"`
	UserID     int            `db:"user_id"`
	Type       InstrumentType `db:"type"`
	Ticker     string         `db:"ticker"`
	Name       string         `db:"name"`
	BuyinPrice float64        `db:"buyin_price"`
	Quantity   float64        `db:"quantity"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

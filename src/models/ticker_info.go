package models

import "time"

// TickerInfo is the durable metadata cache entry for one ticker: the display
// name and instrument type last resolved from the market data provider.
type TickerInfo struct {
	ID        int            `db:"stock_id"`
	Ticker    string         `db:"ticker"`
	Name      string         `db:"name"`
	Type      InstrumentType `db:"type"`
	UpdatedAt time.Time      `db:"updated_at"`
}

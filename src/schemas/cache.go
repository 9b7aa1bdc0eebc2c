package schemas

import (
	"time"

	"portfolio/src/models"
)

// MetadataEntry is one durable cache row with its derived staleness flag.
type MetadataEntry struct {
	Ticker    string                `json:"ticker"`
	Name      string                `json:"name"`
	Type      models.InstrumentType `json:"type"`
	UpdatedAt time.Time             `json:"updated_at"`
	Stale     bool                  `json:"stale"`
}

// PriceEntry is one in-memory quote with its derived staleness flag.
type PriceEntry struct {
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	FetchedAt time.Time `json:"fetched_at"`
	Stale     bool      `json:"stale"`
}

type CacheStatusResponse struct {
	Message       string          `json:"message"`
	CachedTickers int             `json:"cached_tickers"`
	Metadata      []MetadataEntry `json:"metadata"`
	Prices        []PriceEntry    `json:"prices"`
}

type RefreshCacheResponse struct {
	Message string        `json:"message"`
	Data    TickerDetails `json:"data"`
}

// TickerDetails is the resolved name/type pair for one ticker.
type TickerDetails struct {
	Ticker string                `json:"ticker"`
	Name   string                `json:"name"`
	Type   models.InstrumentType `json:"type"`
}

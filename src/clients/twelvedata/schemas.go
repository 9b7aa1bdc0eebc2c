package twelvedata

// GetPriceResponse is the provider's /price payload. On failure the numeric
// fields are empty and Code/Status/Message describe the error instead.
type GetPriceResponse struct {
	Price   string `json:"price"`
	Code    int    `json:"code,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// IsError reports whether the payload is error-shaped rather than a quote.
func (r *GetPriceResponse) IsError() bool {
	return r.Status == "error" || r.Price == ""
}

// GetQuoteResponse is the subset of the provider's /quote payload the
// service consumes.
type GetQuoteResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
	Close    string `json:"close"`
	Code     int    `json:"code,omitempty"`
	Status   string `json:"status,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (r *GetQuoteResponse) IsError() bool {
	return r.Status == "error"
}

// SymbolMatch is one /symbol_search result row.
type SymbolMatch struct {
	Symbol         string `json:"symbol"`
	InstrumentName string `json:"instrument_name"`
	Exchange       string `json:"exchange"`
	Country        string `json:"country"`
	InstrumentType string `json:"instrument_type"`
}

type SymbolSearchResponse struct {
	Data   []SymbolMatch `json:"data"`
	Status string        `json:"status,omitempty"`
}

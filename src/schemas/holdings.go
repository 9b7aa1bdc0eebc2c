package schemas

import (
	"time"

	"portfolio/src/models"
)

// BuyRequest carries a buy order. Price, type and name are optional: a
// missing field, empty string or zero all mean "resolve this for me", and
// are collapsed to the zero value on decode.
type BuyRequest struct {
	Ticker   string  `json:"ticker"`
	Type     string  `json:"type,omitempty"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Quantity float64 `json:"quantity"`
}

type BuyResponse struct {
	Message      string                `json:"message"`
	RecordID     int                   `json:"record_id"`
	NewQuantity  float64               `json:"new_quantity"`
	NewAvgPrice  float64               `json:"new_avg_price"`
	UsedPrice    float64               `json:"used_price"`
	DetectedType models.InstrumentType `json:"detected_type"`
	Created      bool                  `json:"created"`
}

type SellRequest struct {
	Ticker   string  `json:"ticker"`
	Price    float64 `json:"price,omitempty"`
	Quantity float64 `json:"quantity"`
}

type SellResponse struct {
	Message           string  `json:"message"`
	RecordID          int     `json:"record_id,omitempty"`
	SoldQuantity      float64 `json:"sold_quantity"`
	RemainingQuantity float64 `json:"remaining_quantity"`
	SellPrice         float64 `json:"sell_price"`
	SellValue         float64 `json:"sell_value"`
}

// HoldingRequest is the raw CRUD payload; every field is required.
type HoldingRequest struct {
	Type       string  `json:"type"`
	Ticker     string  `json:"ticker"`
	Name       string  `json:"name"`
	BuyinPrice float64 `json:"buyin_price"`
	Quantity   float64 `json:"quantity"`
}

type HoldingResponse struct {
	RecordID   int                   `json:"record_id"`
	UserID     int                   `json:"user_id"`
	Type       models.InstrumentType `json:"type"`
	Ticker     string                `json:"ticker"`
	Name       string                `json:"name"`
	BuyinPrice float64               `json:"buyin_price"`
	Quantity   float64               `json:"quantity"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

func NewHoldingResponse(h *models.Holding) *HoldingResponse {
	return &HoldingResponse{
		RecordID:   h.RecordID,
		UserID:     h.UserID,
		Type:       h.Type,
		Ticker:     h.Ticker,
		Name:       h.Name,
		BuyinPrice: h.BuyinPrice,
		Quantity:   h.Quantity,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}

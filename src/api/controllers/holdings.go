package controllers

import (
	"context"

	"portfolio/src/models"
	"portfolio/src/schemas"
	"portfolio/src/services"
)

func (c *Controller) Buy(ctx context.Context, userID int, req *schemas.BuyRequest) (*schemas.BuyResponse, error) {
	return c.Ledger.Buy(ctx, userID, req)
}

func (c *Controller) Sell(ctx context.Context, userID int, req *schemas.SellRequest) (*schemas.SellResponse, error) {
	return c.Ledger.Sell(ctx, userID, req)
}

func (c *Controller) ListHoldings(ctx context.Context, userID int) ([]schemas.HoldingResponse, error) {
	holdings, err := c.HoldingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.HoldingResponse, 0, len(holdings))
	for i := range holdings {
		responses = append(responses, *schemas.NewHoldingResponse(&holdings[i]))
	}
	return responses, nil
}

func (c *Controller) InsertHolding(ctx context.Context, userID int, req *schemas.HoldingRequest) (*schemas.HoldingResponse, error) {
	holding, err := holdingFromRequest(userID, 0, req)
	if err != nil {
		return nil, err
	}
	if err := c.HoldingRepo.Create(ctx, holding); err != nil {
		return nil, err
	}
	return schemas.NewHoldingResponse(holding), nil
}

func (c *Controller) UpdateHolding(ctx context.Context, userID, recordID int, req *schemas.HoldingRequest) error {
	holding, err := holdingFromRequest(userID, recordID, req)
	if err != nil {
		return err
	}
	updated, err := c.HoldingRepo.Update(ctx, holding)
	if err != nil {
		return err
	}
	if !updated {
		return services.NewError(services.KindPositionNotFound, "Holding not found")
	}
	return nil
}

func (c *Controller) DeleteHolding(ctx context.Context, userID, recordID int) (bool, error) {
	return c.HoldingRepo.Delete(ctx, userID, recordID)
}

// holdingFromRequest validates the raw CRUD payload; every field is required.
func holdingFromRequest(userID, recordID int, req *schemas.HoldingRequest) (*models.Holding, error) {
	instrumentType := models.InstrumentType(req.Type)
	if req.Ticker == "" || req.Name == "" || req.BuyinPrice <= 0 || req.Quantity <= 0 || !instrumentType.Valid() {
		return nil, services.NewError(services.KindInvalidInput, "All fields are required")
	}
	return &models.Holding{
		RecordID:   recordID,
		UserID:     userID,
		Type:       instrumentType,
		Ticker:     services.NormalizeTicker(req.Ticker),
		Name:       req.Name,
		BuyinPrice: req.BuyinPrice,
		Quantity:   req.Quantity,
	}, nil
}

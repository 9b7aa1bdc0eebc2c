package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"portfolio/src/models"
	"portfolio/src/repositories"
	"portfolio/src/schemas"
	"portfolio/src/utils"
)

type LedgerServiceI interface {
	Buy(ctx context.Context, userID int, req *schemas.BuyRequest) (*schemas.BuyResponse, error)
	Sell(ctx context.Context, userID int, req *schemas.SellRequest) (*schemas.SellResponse, error)
}

// LedgerService applies buys and sells to a user's holdings with
// quantity-weighted average cost accounting, consulting the market data
// service only for fields the caller omitted. Mutations for the same
// (user, ticker) are serialized so the average cost is always computed
// from a consistent prior state.
type LedgerService struct {
	holdingRepo repositories.HoldingRepository
	marketData  MarketDataServiceI

	positionLocks sync.Map // position key -> *sync.Mutex
}

func NewLedgerService(holdingRepo repositories.HoldingRepository, marketData MarketDataServiceI) *LedgerService {
	return &LedgerService{
		holdingRepo: holdingRepo,
		marketData:  marketData,
	}
}

func (s *LedgerService) lockPosition(userID int, ticker string) func() {
	key := fmt.Sprintf("%d:%s", userID, ticker)
	value, _ := s.positionLocks.LoadOrStore(key, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

func (s *LedgerService) Buy(ctx context.Context, userID int, req *schemas.BuyRequest) (*schemas.BuyResponse, error) {
	logger := utils.LoggerFromContext(ctx)

	ticker := NormalizeTicker(req.Ticker)
	if ticker == "" {
		return nil, NewError(KindTickerRequired, "Ticker is required")
	}
	if req.Quantity <= 0 {
		return nil, NewError(KindInvalidQuantity, "Quantity must be positive")
	}

	instrumentType := normalizeType(req.Type)
	name := strings.TrimSpace(req.Name)
	price := req.Price

	if instrumentType.IsManualPriced() {
		// Gold and currency never touch the provider: the ticker itself
		// serves as the name and the price must be supplied manually.
		if name == "" {
			name = ticker
		}
		if price <= 0 {
			return nil, NewError(KindManualPriceRequired,
				"Price is required for currency and gold transactions. Please provide the price field manually.")
		}
	} else {
		needsType := instrumentType == ""
		needsName := name == ""

		if needsType && needsName {
			metadata, err := s.marketData.ResolveMetadata(ctx, ticker)
			if err != nil {
				// Type alone could fall back to stock, but a missing name
				// fails the whole operation.
				logger.WithField("ticker", ticker).Warnf("Failed to resolve ticker metadata: %v", err)
				return nil, NewError(KindNameUnavailable,
					"Unable to auto-detect name. Please provide the name field manually.")
			}
			instrumentType = metadata.Type
			name = metadata.Name
		} else if needsType {
			resolvedType, err := s.marketData.ResolveType(ctx, ticker)
			if err != nil {
				logger.WithField("ticker", ticker).Warnf("Failed to resolve type, defaulting to stock: %v", err)
				resolvedType = models.InstrumentStock
			}
			instrumentType = resolvedType
		} else if needsName {
			resolvedName, err := s.marketData.ResolveName(ctx, ticker)
			if err != nil {
				return nil, NewError(KindNameUnavailable,
					"Unable to auto-detect name. Please provide the name field manually.")
			}
			name = resolvedName
		}

		if price <= 0 {
			resolvedPrice, err := s.marketData.ResolvePrice(ctx, ticker)
			if err != nil {
				return nil, NewError(KindPriceUnavailable,
					"Unable to auto-detect price. Please provide the price field manually.")
			}
			price = resolvedPrice
		}
	}

	if price <= 0 {
		return nil, NewError(KindInvalidPrice, "Price must be positive")
	}

	unlock := s.lockPosition(userID, ticker)
	defer unlock()

	existing, err := s.holdingRepo.GetByUserAndTicker(ctx, userID, ticker)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		newQuantity := existing.Quantity + req.Quantity
		totalValue := existing.Quantity*existing.BuyinPrice + req.Quantity*price
		newAvgPrice := totalValue / newQuantity

		updated, err := s.holdingRepo.UpdatePosition(ctx, userID, existing.RecordID, newQuantity, newAvgPrice)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, NewError(KindPositionNotFound, "Holding not found")
		}
		return &schemas.BuyResponse{
			Message:      "Holdings updated successfully",
			RecordID:     existing.RecordID,
			NewQuantity:  newQuantity,
			NewAvgPrice:  newAvgPrice,
			UsedPrice:    price,
			DetectedType: existing.Type,
		}, nil
	}

	holding := &models.Holding{
		UserID:     userID,
		Type:       instrumentType,
		Ticker:     ticker,
		Name:       name,
		BuyinPrice: price,
		Quantity:   req.Quantity,
	}
	if err := s.holdingRepo.Create(ctx, holding); err != nil {
		return nil, err
	}
	return &schemas.BuyResponse{
		Message:      "New holding created successfully",
		RecordID:     holding.RecordID,
		NewQuantity:  req.Quantity,
		NewAvgPrice:  price,
		UsedPrice:    price,
		DetectedType: instrumentType,
		Created:      true,
	}, nil
}

func (s *LedgerService) Sell(ctx context.Context, userID int, req *schemas.SellRequest) (*schemas.SellResponse, error) {
	ticker := NormalizeTicker(req.Ticker)
	if ticker == "" {
		return nil, NewError(KindTickerRequired, "Ticker is required")
	}
	if req.Quantity <= 0 {
		return nil, NewError(KindInvalidQuantity, "Quantity must be positive")
	}

	price := req.Price
	if price <= 0 {
		resolvedPrice, err := s.marketData.ResolvePrice(ctx, ticker)
		if err != nil {
			return nil, NewError(KindPriceUnavailable,
				"Unable to auto-detect price. Please provide the price field manually.")
		}
		price = resolvedPrice
	}
	if price <= 0 {
		return nil, NewError(KindInvalidPrice, "Price must be positive")
	}

	unlock := s.lockPosition(userID, ticker)
	defer unlock()

	existing, err := s.holdingRepo.GetByUserAndTicker(ctx, userID, ticker)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, NewError(KindPositionNotFound, "Holding not found")
	}
	if existing.Quantity < req.Quantity {
		return nil, NewError(KindInsufficientQuantity, "Insufficient quantity to sell")
	}

	remaining := existing.Quantity - req.Quantity
	sellValue := req.Quantity * price

	if remaining == 0 {
		deleted, err := s.holdingRepo.Delete(ctx, userID, existing.RecordID)
		if err != nil {
			return nil, err
		}
		if !deleted {
			return nil, NewError(KindPositionNotFound, "Holding not found")
		}
		return &schemas.SellResponse{
			Message:           "Holding sold completely and removed",
			SoldQuantity:      req.Quantity,
			RemainingQuantity: 0,
			SellPrice:         price,
			SellValue:         sellValue,
		}, nil
	}

	// Partial sell reduces quantity only; the average cost basis is
	// intentionally left unchanged.
	updated, err := s.holdingRepo.UpdateQuantity(ctx, userID, existing.RecordID, remaining)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, NewError(KindPositionNotFound, "Holding not found")
	}
	return &schemas.SellResponse{
		Message:           "Holdings sold successfully",
		RecordID:          existing.RecordID,
		SoldQuantity:      req.Quantity,
		RemainingQuantity: remaining,
		SellPrice:         price,
		SellValue:         sellValue,
	}, nil
}

// normalizeType collapses the caller's type field: empty means "resolve",
// an enum value passes through, and anything else goes through the keyword
// classifier so descriptions like "Common Stock" still map.
func normalizeType(raw string) models.InstrumentType {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if t := models.InstrumentType(trimmed); t.Valid() {
		return t
	}
	return models.ClassifyInstrumentType(trimmed)
}

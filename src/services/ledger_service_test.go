package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/src/models"
	"portfolio/src/schemas"
	"portfolio/src/services"
)

// fakeHoldingRepo is an in-memory stand-in for the holdings store.
type fakeHoldingRepo struct {
	nextID   int
	holdings map[int]*models.Holding
}

func newFakeHoldingRepo() *fakeHoldingRepo {
	return &fakeHoldingRepo{nextID: 1, holdings: map[int]*models.Holding{}}
}

func (f *fakeHoldingRepo) GetByUserID(_ context.Context, userID int) ([]models.Holding, error) {
	var result []models.Holding
	for _, h := range f.holdings {
		if h.UserID == userID {
			result = append(result, *h)
		}
	}
	return result, nil
}

func (f *fakeHoldingRepo) GetByUserAndTicker(_ context.Context, userID int, ticker string) (*models.Holding, error) {
	for _, h := range f.holdings {
		if h.UserID == userID && h.Ticker == ticker {
			copied := *h
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeHoldingRepo) Create(_ context.Context, h *models.Holding) error {
	h.RecordID = f.nextID
	f.nextID++
	h.CreatedAt = time.Now()
	h.UpdatedAt = h.CreatedAt
	copied := *h
	f.holdings[h.RecordID] = &copied
	return nil
}

func (f *fakeHoldingRepo) Update(_ context.Context, h *models.Holding) (bool, error) {
	existing, ok := f.holdings[h.RecordID]
	if !ok || existing.UserID != h.UserID {
		return false, nil
	}
	copied := *h
	copied.CreatedAt = existing.CreatedAt
	f.holdings[h.RecordID] = &copied
	return true, nil
}

func (f *fakeHoldingRepo) UpdatePosition(_ context.Context, userID, recordID int, quantity, buyinPrice float64) (bool, error) {
	h, ok := f.holdings[recordID]
	if !ok || h.UserID != userID {
		return false, nil
	}
	h.Quantity = quantity
	h.BuyinPrice = buyinPrice
	h.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeHoldingRepo) UpdateQuantity(_ context.Context, userID, recordID int, quantity float64) (bool, error) {
	h, ok := f.holdings[recordID]
	if !ok || h.UserID != userID {
		return false, nil
	}
	h.Quantity = quantity
	h.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeHoldingRepo) Delete(_ context.Context, userID, recordID int) (bool, error) {
	h, ok := f.holdings[recordID]
	if !ok || h.UserID != userID {
		return false, nil
	}
	delete(f.holdings, recordID)
	return true, nil
}

// fakeMarketData counts resolver calls so tests can assert which fields were
// looked up and which were taken from the request.
type fakeMarketData struct {
	price    float64
	priceErr error
	metadata *services.TickerMetadata
	metaErr  error

	priceCalls    int
	metadataCalls int
	nameCalls     int
	typeCalls     int
}

func (f *fakeMarketData) ResolvePrice(_ context.Context, _ string) (float64, error) {
	f.priceCalls++
	return f.price, f.priceErr
}

func (f *fakeMarketData) ResolveMetadata(_ context.Context, _ string) (*services.TickerMetadata, error) {
	f.metadataCalls++
	return f.metadata, f.metaErr
}

func (f *fakeMarketData) ResolveName(_ context.Context, _ string) (string, error) {
	f.nameCalls++
	if f.metaErr != nil {
		return "", f.metaErr
	}
	return f.metadata.Name, nil
}

func (f *fakeMarketData) ResolveType(_ context.Context, _ string) (models.InstrumentType, error) {
	f.typeCalls++
	if f.metaErr != nil {
		return "", f.metaErr
	}
	return f.metadata.Type, nil
}

func (f *fakeMarketData) RefreshMetadata(_ context.Context, _ string) (*services.TickerMetadata, error) {
	return f.metadata, f.metaErr
}

func (f *fakeMarketData) RefreshStaleMetadata(_ context.Context) (int, error) {
	return 0, nil
}

func (f *fakeMarketData) CacheSnapshot(_ context.Context) (*schemas.CacheStatusResponse, error) {
	return &schemas.CacheStatusResponse{}, nil
}

func (f *fakeMarketData) totalCalls() int {
	return f.priceCalls + f.metadataCalls + f.nameCalls + f.typeCalls
}

func newLedgerFixture() (*services.LedgerService, *fakeHoldingRepo, *fakeMarketData) {
	repo := newFakeHoldingRepo()
	marketData := &fakeMarketData{}
	return services.NewLedgerService(repo, marketData), repo, marketData
}

func TestBuy(t *testing.T) {
	ctx := context.Background()
	const userID = 1

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		ledger, _, _ := newLedgerFixture()

		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Ticker: "AAPL", Quantity: 0, Price: 100})
		require.Error(t, err)
		assert.Equal(t, services.KindInvalidQuantity, services.KindOf(err))
	})

	t.Run("rejects missing ticker", func(t *testing.T) {
		ledger, _, _ := newLedgerFixture()

		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Quantity: 5, Price: 100})
		require.Error(t, err)
		assert.Equal(t, services.KindTickerRequired, services.KindOf(err))
	})

	t.Run("creates a new holding with explicit fields", func(t *testing.T) {
		ledger, repo, marketData := newLedgerFixture()

		result, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{
			Ticker: "aapl", Type: "stock", Name: "Apple Inc.", Price: 150, Quantity: 10,
		})
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.Equal(t, 10.0, result.NewQuantity)
		assert.Equal(t, 150.0, result.NewAvgPrice)
		assert.Equal(t, 150.0, result.UsedPrice)
		assert.Equal(t, models.InstrumentStock, result.DetectedType)
		assert.Equal(t, 0, marketData.totalCalls())

		stored, err := repo.GetByUserAndTicker(ctx, userID, "AAPL")
		require.NoError(t, err)
		require.NotNil(t, stored, "ticker should be stored upper-cased")
	})

	t.Run("accumulates quantity-weighted average cost", func(t *testing.T) {
		ledger, _, marketData := newLedgerFixture()
		marketData.metadata = &services.TickerMetadata{Name: "Apple Inc.", Type: models.InstrumentStock}

		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Ticker: "AAPL", Type: "stock", Name: "Apple Inc.", Price: 150, Quantity: 10})
		require.NoError(t, err)

		result, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Ticker: "AAPL", Price: 200, Quantity: 10})
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, 20.0, result.NewQuantity)
		assert.Equal(t, 175.0, result.NewAvgPrice)
		assert.Equal(t, 200.0, result.UsedPrice)
	})

	t.Run("final average cost is order-independent", func(t *testing.T) {
		buys := []struct{ price, quantity float64 }{
			{100, 5}, {250, 2}, {80, 10},
		}
		reversed := []struct{ price, quantity float64 }{
			{80, 10}, {250, 2}, {100, 5},
		}

		run := func(orders []struct{ price, quantity float64 }) float64 {
			ledger, repo, _ := newLedgerFixture()
			for _, order := range orders {
				_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{
					Ticker: "MSFT", Type: "stock", Name: "Microsoft", Price: order.price, Quantity: order.quantity,
				})
				require.NoError(t, err)
			}
			holding, err := repo.GetByUserAndTicker(ctx, userID, "MSFT")
			require.NoError(t, err)
			require.NotNil(t, holding)
			assert.Equal(t, 17.0, holding.Quantity)
			return holding.BuyinPrice
		}

		assert.InDelta(t, run(buys), run(reversed), 1e-9)
	})

	t.Run("resolves name and type together when both are missing", func(t *testing.T) {
		ledger, _, marketData := newLedgerFixture()
		marketData.metadata = &services.TickerMetadata{Name: "SPDR S&P 500 ETF Trust", Type: models.InstrumentFund}
		marketData.price = 420.15

		result, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Ticker: "SPY", Quantity: 12})
		require.NoError(t, err)
		assert.Equal(t, models.InstrumentFund, result.DetectedType)
		assert.Equal(t, 420.15, result.UsedPrice)
		assert.Equal(t, 1, marketData.metadataCalls, "both fields should come from one combined call")
		assert.Equal(t, 0, marketData.nameCalls)
		assert.Equal(t, 0, marketData.typeCalls)
		assert.Equal(t, 1, marketData.priceCalls)
	})

	t.Run("fails with NameUnavailable when metadata resolution fails", func(t *testing.T) {
		ledger, repo, marketData := newLedgerFixture()
		marketData.metaErr = services.NewError(services.KindMetadataUnavailable, "provider down")

		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Ticker: "SPY", Quantity: 12})
		require.Error(t, err)
		assert.Equal(t, services.KindNameUnavailable, services.KindOf(err))

		holding, err := repo.GetByUserAndTicker(ctx, userID, "SPY")
		require.NoError(t, err)
		assert.Nil(t, holding, "failed buy must not create a holding")
	})

	t.Run("type resolution failure alone falls back to stock", func(t *testing.T) {
		ledger, _, marketData := newLedgerFixture()
		marketData.metaErr = services.NewError(services.KindMetadataUnavailable, "provider down")

		result, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{
			Ticker: "SPY", Name: "SPDR S&P 500 ETF Trust", Price: 420, Quantity: 12,
		})
		require.NoError(t, err)
		assert.Equal(t, models.InstrumentStock, result.DetectedType)
		assert.Equal(t, 1, marketData.typeCalls)
	})

	t.Run("resolves price when omitted", func(t *testing.T) {
		ledger, _, marketData := newLedgerFixture()
		marketData.price = 150.25

		result, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{
			Ticker: "AAPL", Type: "stock", Name: "Apple Inc.", Quantity: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 150.25, result.UsedPrice)
		assert.Equal(t, 1, marketData.priceCalls)
	})

	t.Run("fails with PriceUnavailable when the resolver cannot price", func(t *testing.T) {
		ledger, _, marketData := newLedgerFixture()
		marketData.priceErr = services.NewError(services.KindPriceUnavailable, "no quote")

		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{
			Ticker: "AAPL", Type: "stock", Name: "Apple Inc.", Quantity: 10,
		})
		require.Error(t, err)
		assert.Equal(t, services.KindPriceUnavailable, services.KindOf(err))
	})

	t.Run("gold buys never touch the provider", func(t *testing.T) {
		ledger, _, marketData := newLedgerFixture()

		result, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{
			Ticker: "xau", Type: "gold", Price: 1850.50, Quantity: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, models.InstrumentGold, result.DetectedType)
		assert.Equal(t, 1850.50, result.UsedPrice)
		assert.Equal(t, 0, marketData.totalCalls())
	})

	t.Run("gold buy without a price requires manual input", func(t *testing.T) {
		ledger, _, marketData := newLedgerFixture()

		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Ticker: "XAU", Type: "gold", Quantity: 2})
		require.Error(t, err)
		assert.Equal(t, services.KindManualPriceRequired, services.KindOf(err))
		assert.Equal(t, 0, marketData.totalCalls())
	})

	t.Run("currency buy defaults name to the ticker", func(t *testing.T) {
		ledger, repo, marketData := newLedgerFixture()

		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Ticker: "usd", Type: "currency", Price: 1, Quantity: 5000})
		require.NoError(t, err)
		assert.Equal(t, 0, marketData.totalCalls())

		holding, err := repo.GetByUserAndTicker(ctx, userID, "USD")
		require.NoError(t, err)
		require.NotNil(t, holding)
		assert.Equal(t, "USD", holding.Name)
	})
}

func TestSell(t *testing.T) {
	ctx := context.Background()
	const userID = 1

	seed := func(t *testing.T, ledger *services.LedgerService, quantity, price float64) {
		t.Helper()
		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{
			Ticker: "AAPL", Type: "stock", Name: "Apple Inc.", Price: price, Quantity: quantity,
		})
		require.NoError(t, err)
	}

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		ledger, _, _ := newLedgerFixture()

		_, err := ledger.Sell(ctx, userID, &schemas.SellRequest{Ticker: "AAPL", Quantity: -1, Price: 100})
		require.Error(t, err)
		assert.Equal(t, services.KindInvalidQuantity, services.KindOf(err))
	})

	t.Run("fails on a position that does not exist", func(t *testing.T) {
		ledger, _, _ := newLedgerFixture()

		_, err := ledger.Sell(ctx, userID, &schemas.SellRequest{Ticker: "AAPL", Quantity: 5, Price: 100})
		require.Error(t, err)
		assert.Equal(t, services.KindPositionNotFound, services.KindOf(err))
	})

	t.Run("oversell fails and mutates nothing", func(t *testing.T) {
		ledger, repo, _ := newLedgerFixture()
		seed(t, ledger, 10, 150)

		_, err := ledger.Sell(ctx, userID, &schemas.SellRequest{Ticker: "AAPL", Quantity: 11, Price: 160})
		require.Error(t, err)
		assert.Equal(t, services.KindInsufficientQuantity, services.KindOf(err))

		holding, err := repo.GetByUserAndTicker(ctx, userID, "AAPL")
		require.NoError(t, err)
		require.NotNil(t, holding)
		assert.Equal(t, 10.0, holding.Quantity)
		assert.Equal(t, 150.0, holding.BuyinPrice)
	})

	t.Run("partial sell reduces quantity and keeps the average cost", func(t *testing.T) {
		ledger, repo, marketData := newLedgerFixture()
		seed(t, ledger, 10, 150)
		marketData.metadata = &services.TickerMetadata{Name: "Apple Inc.", Type: models.InstrumentStock}
		_, err := ledger.Buy(ctx, userID, &schemas.BuyRequest{Ticker: "AAPL", Price: 200, Quantity: 10})
		require.NoError(t, err)

		result, err := ledger.Sell(ctx, userID, &schemas.SellRequest{Ticker: "AAPL", Quantity: 5, Price: 160})
		require.NoError(t, err)
		assert.Equal(t, 5.0, result.SoldQuantity)
		assert.Equal(t, 15.0, result.RemainingQuantity)
		assert.Equal(t, 160.0, result.SellPrice)
		assert.Equal(t, 800.0, result.SellValue)

		holding, err := repo.GetByUserAndTicker(ctx, userID, "AAPL")
		require.NoError(t, err)
		require.NotNil(t, holding)
		assert.Equal(t, 175.0, holding.BuyinPrice, "average cost must not change on a sell")
	})

	t.Run("selling the full quantity removes the holding", func(t *testing.T) {
		ledger, repo, _ := newLedgerFixture()
		seed(t, ledger, 15, 175)

		result, err := ledger.Sell(ctx, userID, &schemas.SellRequest{Ticker: "AAPL", Quantity: 15, Price: 180})
		require.NoError(t, err)
		assert.Equal(t, 0.0, result.RemainingQuantity)

		holding, err := repo.GetByUserAndTicker(ctx, userID, "AAPL")
		require.NoError(t, err)
		assert.Nil(t, holding)
	})

	t.Run("resolves the price when omitted", func(t *testing.T) {
		ledger, _, marketData := newLedgerFixture()
		seed(t, ledger, 10, 150)
		marketData.price = 155.5

		result, err := ledger.Sell(ctx, userID, &schemas.SellRequest{Ticker: "AAPL", Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, 155.5, result.SellPrice)
		assert.Equal(t, 622.0, result.SellValue)
		assert.Equal(t, 1, marketData.priceCalls)
	})
}

package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"portfolio/src/clients/twelvedata"
	"portfolio/src/models"
	"portfolio/src/repositories"
	"portfolio/src/schemas"
	"portfolio/src/utils"
)

// TickerMetadata is the resolved display name and instrument type for a ticker.
type TickerMetadata struct {
	Name string
	Type models.InstrumentType
}

type MarketDataServiceI interface {
	ResolvePrice(ctx context.Context, ticker string) (float64, error)
	ResolveMetadata(ctx context.Context, ticker string) (*TickerMetadata, error)
	ResolveName(ctx context.Context, ticker string) (string, error)
	ResolveType(ctx context.Context, ticker string) (models.InstrumentType, error)
	RefreshMetadata(ctx context.Context, ticker string) (*TickerMetadata, error)
	RefreshStaleMetadata(ctx context.Context) (int, error)
	CacheSnapshot(ctx context.Context) (*schemas.CacheStatusResponse, error)
}

// MarketDataService resolves prices and ticker metadata through a two-tier
// cache: an in-memory price cache with a short TTL and a durable metadata
// store with a long one. Provider failures degrade to the last cached value
// when one exists instead of failing the caller.
type MarketDataService struct {
	client         twelvedata.TwelveDataClientI
	tickerInfoRepo repositories.TickerInfoRepository
	priceCache     *utils.KeyedCache[float64]
	metadataTTL    time.Duration
	now            func() time.Time
}

func NewMarketDataService(
	client twelvedata.TwelveDataClientI,
	tickerInfoRepo repositories.TickerInfoRepository,
	priceTTL time.Duration,
	metadataTTL time.Duration,
) *MarketDataService {
	return &MarketDataService{
		client:         client,
		tickerInfoRepo: tickerInfoRepo,
		priceCache:     utils.NewKeyedCache[float64](priceTTL),
		metadataTTL:    metadataTTL,
		now:            time.Now,
	}
}

// WithClock overrides the service's clock and the price cache's clock at
// once. Intended for tests.
func (s *MarketDataService) WithClock(now func() time.Time) *MarketDataService {
	s.now = now
	s.priceCache.WithClock(now)
	return s
}

// NormalizeTicker canonicalizes a ticker symbol for lookups and storage keys.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ResolvePrice returns the current price for a ticker. A fresh cached quote
// is returned without a provider call; otherwise the provider is consulted
// and, when it fails or returns garbage, a stale cached quote is returned
// as a degraded response.
func (s *MarketDataService) ResolvePrice(ctx context.Context, ticker string) (float64, error) {
	ticker = NormalizeTicker(ticker)
	logger := utils.LoggerFromContext(ctx)

	if price, fresh, found := s.priceCache.Get(ticker); found && fresh {
		return price, nil
	}

	resp, err := s.client.GetPrice(ctx, ticker)
	if err == nil && !resp.IsError() {
		price, parseErr := strconv.ParseFloat(resp.Price, 64)
		if parseErr == nil && price > 0 {
			s.priceCache.Set(ticker, price)
			return price, nil
		}
		logger.WithField("ticker", ticker).Warnf("Unparseable price %q from provider", resp.Price)
	} else if err != nil {
		logger.WithField("ticker", ticker).Warnf("Price fetch failed: %v", err)
	}

	if price, _, found := s.priceCache.Get(ticker); found {
		logger.WithField("ticker", ticker).Warn("Returning stale cached price after provider failure")
		return price, nil
	}
	return 0, NewError(KindPriceUnavailable, "Unable to auto-detect price. Please provide the price field manually.")
}

// ResolveMetadata returns the display name and instrument type for a ticker.
// A metadata cache entry younger than the metadata TTL is returned without
// provider calls; on a failed re-fetch the stale entry is returned instead.
func (s *MarketDataService) ResolveMetadata(ctx context.Context, ticker string) (*TickerMetadata, error) {
	ticker = NormalizeTicker(ticker)
	logger := utils.LoggerFromContext(ctx)

	cached, err := s.tickerInfoRepo.Get(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if cached != nil && s.now().Sub(cached.UpdatedAt) < s.metadataTTL {
		return &TickerMetadata{Name: cached.Name, Type: cached.Type}, nil
	}

	metadata, fetchErr := s.fetchTickerInfo(ctx, ticker)
	if fetchErr != nil {
		if cached != nil {
			logger.WithField("ticker", ticker).Warnf("Returning stale cached metadata after provider failure: %v", fetchErr)
			return &TickerMetadata{Name: cached.Name, Type: cached.Type}, nil
		}
		return nil, fetchErr
	}

	if err := s.tickerInfoRepo.Upsert(ctx, ticker, metadata.Name, metadata.Type); err != nil {
		return nil, err
	}
	return metadata, nil
}

// ResolveName resolves only the display name of a ticker.
func (s *MarketDataService) ResolveName(ctx context.Context, ticker string) (string, error) {
	metadata, err := s.ResolveMetadata(ctx, ticker)
	if err != nil {
		return "", err
	}
	return metadata.Name, nil
}

// ResolveType resolves only the instrument type of a ticker.
func (s *MarketDataService) ResolveType(ctx context.Context, ticker string) (models.InstrumentType, error) {
	metadata, err := s.ResolveMetadata(ctx, ticker)
	if err != nil {
		return "", err
	}
	return metadata.Type, nil
}

// RefreshMetadata re-fetches and stores the metadata for a ticker regardless
// of cache freshness.
func (s *MarketDataService) RefreshMetadata(ctx context.Context, ticker string) (*TickerMetadata, error) {
	ticker = NormalizeTicker(ticker)

	metadata, err := s.fetchTickerInfo(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if err := s.tickerInfoRepo.Upsert(ctx, ticker, metadata.Name, metadata.Type); err != nil {
		return nil, err
	}
	return metadata, nil
}

// RefreshStaleMetadata re-fetches every stored ticker whose metadata is
// older than the metadata TTL, returning how many were refreshed.
// Individual failures are logged and skipped.
func (s *MarketDataService) RefreshStaleMetadata(ctx context.Context) (int, error) {
	logger := utils.LoggerFromContext(ctx)

	tickers, err := s.tickerInfoRepo.ListUpdatedBefore(ctx, s.now().Add(-s.metadataTTL))
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, ticker := range tickers {
		if _, err := s.RefreshMetadata(ctx, ticker); err != nil {
			logger.WithField("ticker", ticker).Warnf("Scheduled metadata refresh failed: %v", err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// CacheSnapshot reports the contents of both caches with derived staleness
// flags, for operational visibility.
func (s *MarketDataService) CacheSnapshot(ctx context.Context) (*schemas.CacheStatusResponse, error) {
	infos, err := s.tickerInfoRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	metadata := make([]schemas.MetadataEntry, 0, len(infos))
	for _, info := range infos {
		metadata = append(metadata, schemas.MetadataEntry{
			Ticker:    info.Ticker,
			Name:      info.Name,
			Type:      info.Type,
			UpdatedAt: info.UpdatedAt,
			Stale:     s.now().Sub(info.UpdatedAt) >= s.metadataTTL,
		})
	}

	priceEntries := s.priceCache.Snapshot()
	prices := make([]schemas.PriceEntry, 0, len(priceEntries))
	for ticker, entry := range priceEntries {
		prices = append(prices, schemas.PriceEntry{
			Ticker:    ticker,
			Price:     entry.Value,
			FetchedAt: entry.CachedAt,
			Stale:     !s.priceCache.Fresh(entry.CachedAt),
		})
	}

	return &schemas.CacheStatusResponse{
		Message:       "Cache status retrieved successfully",
		CachedTickers: len(metadata),
		Metadata:      metadata,
		Prices:        prices,
	}, nil
}

// fetchTickerInfo asks the provider for a ticker's name and type. The two
// calls are independent: a failed type lookup defaults to stock, but a
// missing name fails the fetch.
func (s *MarketDataService) fetchTickerInfo(ctx context.Context, ticker string) (*TickerMetadata, error) {
	logger := utils.LoggerFromContext(ctx)

	name := ""
	quote, err := s.client.GetQuote(ctx, ticker)
	if err == nil && !quote.IsError() {
		name = quote.Name
	} else if err != nil {
		logger.WithField("ticker", ticker).Warnf("Quote fetch failed: %v", err)
	}

	instrumentType := models.InstrumentStock
	search, err := s.client.SearchSymbol(ctx, ticker)
	if err == nil && len(search.Data) > 0 && search.Data[0].InstrumentType != "" {
		instrumentType = models.ClassifyInstrumentType(search.Data[0].InstrumentType)
	} else {
		logger.WithField("ticker", ticker).Warn("Type detection failed, defaulting to stock")
	}

	if name == "" {
		return nil, NewError(KindMetadataUnavailable, "Name not available from provider")
	}
	return &TickerMetadata{Name: name, Type: instrumentType}, nil
}

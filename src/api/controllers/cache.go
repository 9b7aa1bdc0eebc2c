package controllers

import (
	"context"
	"fmt"

	"portfolio/src/clients/twelvedata"
	"portfolio/src/schemas"
	"portfolio/src/services"
)

func (c *Controller) RefreshCache(ctx context.Context, ticker string) (*schemas.RefreshCacheResponse, error) {
	ticker = services.NormalizeTicker(ticker)
	metadata, err := c.MarketData.RefreshMetadata(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return &schemas.RefreshCacheResponse{
		Message: fmt.Sprintf("Cache refreshed successfully for %s", ticker),
		Data: schemas.TickerDetails{
			Ticker: ticker,
			Name:   metadata.Name,
			Type:   metadata.Type,
		},
	}, nil
}

func (c *Controller) CacheStatus(ctx context.Context) (*schemas.CacheStatusResponse, error) {
	return c.MarketData.CacheSnapshot(ctx)
}

// GetPrice proxies the provider's price endpoint for clients that want the
// raw quote without touching the caches.
func (c *Controller) GetPrice(ctx context.Context, ticker string) (*twelvedata.GetPriceResponse, error) {
	return c.TDClient.GetPrice(ctx, services.NormalizeTicker(ticker))
}

func (c *Controller) GetQuote(ctx context.Context, ticker string) (*twelvedata.GetQuoteResponse, error) {
	return c.TDClient.GetQuote(ctx, services.NormalizeTicker(ticker))
}

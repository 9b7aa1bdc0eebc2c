package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"portfolio/src/config"
	"portfolio/src/utils/requests"
)

type TwelveDataClientI interface {
	GetPrice(ctx context.Context, symbol string) (*GetPriceResponse, error)
	GetQuote(ctx context.Context, symbol string) (*GetQuoteResponse, error)
	SearchSymbol(ctx context.Context, symbol string) (*SymbolSearchResponse, error)
}

type TwelveDataClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	apiKey  string
}

// NewClient creates a new instance of TwelveDataClient
func NewClient(cfg *config.Config) (*TwelveDataClient, error) {
	api := requests.NewExternalAPIService()
	return &TwelveDataClient{
		API:     api,
		BaseURL: cfg.ExternalClients.TwelveData.BaseURL,
		apiKey:  cfg.ExternalClients.TwelveData.APIKey,
	}, nil
}

// GetPrice fetches the current price for a symbol
func (c *TwelveDataClient) GetPrice(ctx context.Context, symbol string) (*GetPriceResponse, error) {
	endpoint := fmt.Sprintf("%s/price", c.BaseURL)

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("apikey", c.apiKey)

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var priceResponse GetPriceResponse
	err = json.Unmarshal(responseBody, &priceResponse)
	if err != nil {
		return nil, err
	}

	return &priceResponse, nil
}

// GetQuote fetches the full quote (including the display name) for a symbol
func (c *TwelveDataClient) GetQuote(ctx context.Context, symbol string) (*GetQuoteResponse, error) {
	endpoint := fmt.Sprintf("%s/quote", c.BaseURL)

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("apikey", c.apiKey)

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var quoteResponse GetQuoteResponse
	err = json.Unmarshal(responseBody, &quoteResponse)
	if err != nil {
		return nil, err
	}

	return &quoteResponse, nil
}

// SearchSymbol fetches symbol matches, used for instrument type detection
func (c *TwelveDataClient) SearchSymbol(ctx context.Context, symbol string) (*SymbolSearchResponse, error) {
	endpoint := fmt.Sprintf("%s/symbol_search", c.BaseURL)

	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("apikey", c.apiKey)

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var searchResponse SymbolSearchResponse
	err = json.Unmarshal(responseBody, &searchResponse)
	if err != nil {
		return nil, err
	}

	return &searchResponse, nil
}

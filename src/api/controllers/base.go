package controllers

import (
	"portfolio/src/clients/twelvedata"
	"portfolio/src/repositories"
	"portfolio/src/services"
)

type Controller struct {
	Ledger      services.LedgerServiceI
	MarketData  services.MarketDataServiceI
	Users       services.UserServiceI
	HoldingRepo repositories.HoldingRepository
	TDClient    twelvedata.TwelveDataClientI
}

func NewController(
	ledger services.LedgerServiceI,
	marketData services.MarketDataServiceI,
	users services.UserServiceI,
	holdingRepo repositories.HoldingRepository,
	tdClient twelvedata.TwelveDataClientI,
) *Controller {
	return &Controller{
		Ledger:      ledger,
		MarketData:  marketData,
		Users:       users,
		HoldingRepo: holdingRepo,
		TDClient:    tdClient,
	}
}

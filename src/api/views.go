package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"portfolio/src/api/controllers"
	"portfolio/src/api/handlers"
	"portfolio/src/clients/twelvedata"
	"portfolio/src/config"
	"portfolio/src/database"
	"portfolio/src/repositories"
	"portfolio/src/services"
	"portfolio/src/utils"
)

type Server struct {
	Router     *chi.Mux
	Handler    *handlers.Handler
	MarketData services.MarketDataServiceI
	Logger     *logrus.Logger
	cfg        *config.Config
}

func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	tdClient, err := twelvedata.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	holdingRepo := repositories.NewHoldingRepository(db)
	tickerInfoRepo := repositories.NewTickerInfoRepository(db)
	userRepo := repositories.NewUserRepository(db)

	marketData := services.NewMarketDataService(
		tdClient,
		tickerInfoRepo,
		time.Duration(cfg.Cache.PriceTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.MetadataTTLHours)*time.Hour,
	)
	ledger := services.NewLedgerService(holdingRepo, marketData)
	users := services.NewUserService(userRepo)

	controller := controllers.NewController(ledger, marketData, users, holdingRepo, tdClient)

	server := &Server{
		Router:     chi.NewRouter(),
		Handler:    handlers.NewHandler(controller),
		MarketData: marketData,
		Logger:     utils.NewLogger(logrus.InfoLevel),
		cfg:        cfg,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(s.loggerMiddleware)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/users", func(r chi.Router) {
		r.Get("/", s.Handler.GetUsers)
		r.Post("/", s.Handler.CreateUser)
		r.Post("/{userID}", s.Handler.VerifyPassword)
		r.Put("/{userID}", s.Handler.UpdateUser)
		r.Delete("/{userID}", s.Handler.DeleteUser)
	})

	s.Router.Route("/api/holdings", func(r chi.Router) {
		r.Get("/{userID}", s.Handler.GetHoldings)
		r.Post("/{userID}", s.Handler.CreateHolding)
		r.Put("/{userID}/{recordID}", s.Handler.UpdateHolding)
		r.Delete("/{userID}/{recordID}", s.Handler.DeleteHolding)
		r.Post("/{userID}/buy", s.Handler.BuyHolding)
		r.Post("/{userID}/sell", s.Handler.SellHolding)
	})

	s.Router.Route("/api/cache", func(r chi.Router) {
		r.Post("/refresh/{ticker}", s.Handler.RefreshCache)
		r.Get("/status", s.Handler.GetCacheStatus)
	})

	s.Router.Route("/api/market", func(r chi.Router) {
		r.Get("/price/{ticker}", s.Handler.GetMarketPrice)
		r.Get("/quote/{ticker}", s.Handler.GetMarketQuote)
	})
}

// loggerMiddleware makes the server logger reachable from request contexts.
func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(utils.WithLogger(r.Context(), s.Logger)))
	})
}

func NewHTTPServer(server *Server) *http.Server {
	port := server.cfg.Service.Port
	if port == "" {
		port = "8000"
	}
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}

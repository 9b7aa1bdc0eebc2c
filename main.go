package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"portfolio/src/api"
	"portfolio/src/config"
	"portfolio/src/scheduler"
	"portfolio/src/utils"
	aws_handler "portfolio/src/utils/aws"
)

func main() {
	// Optional .env for the provider API key and DB credentials
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}

	if err := resolveAPIKey(cfg); err != nil {
		log.Println(err, "Error while resolving provider API key")
		return
	}

	errC, err := run(cfg)
	if err != nil {
		log.Println(err, "Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		log.Println(err, "Error while running")
	}
}

// resolveAPIKey fills in the provider credential from AWS Secrets Manager
// when it was not supplied via config or environment.
func resolveAPIKey(cfg *config.Config) error {
	td := &cfg.ExternalClients.TwelveData
	if td.APIKey != "" || td.APIKeySecret == "" {
		return nil
	}
	awsHandler, err := aws_handler.NewAWSHandler(td.AWSRegion)
	if err != nil {
		return err
	}
	key, err := awsHandler.SecretManager.GetSecretValue(td.APIKeySecret)
	if err != nil {
		return err
	}
	td.APIKey = key
	return nil
}

func run(cfg *config.Config) (<-chan error, error) {
	errC := make(chan error, 1)

	server, err := api.NewServer(cfg)
	if err != nil {
		return nil, err
	}
	httpServer := api.NewHTTPServer(server)

	if spec := cfg.Cache.RefreshCronSpec; spec != "" {
		ctx := utils.WithLogger(context.Background(), server.Logger)
		_, err := scheduler.NewScheduledTask(spec, func() {
			refreshed, err := server.MarketData.RefreshStaleMetadata(ctx)
			if err != nil {
				server.Logger.Warnf("Scheduled metadata refresh failed: %v", err)
				return
			}
			server.Logger.Infof("Refreshed metadata for %d tickers", refreshed)
		})
		if err != nil {
			return nil, err
		}
	}

	go func() {
		log.Println("Starting server on port", httpServer.Addr)

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalln("An error raised while setting up server", err)
			errC <- err
		}
	}()
	return errC, nil
}

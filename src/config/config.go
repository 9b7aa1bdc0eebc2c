package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Cache           CacheConfig          `mapstructure:"cache"`
}

type ServiceConfig struct {
	Port string `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type ExternalClientConfig struct {
	TwelveData TwelveDataConfig `mapstructure:"twelveData"`
}

type TwelveDataConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	APIKey  string `mapstructure:"apiKey"`
	// APIKeySecret names an AWS Secrets Manager secret holding the API key.
	// Consulted only when no key is set in config or environment.
	APIKeySecret string `mapstructure:"apiKeySecret"`
	AWSRegion    string `mapstructure:"awsRegion"`
}

type CacheConfig struct {
	PriceTTLSeconds  int `mapstructure:"priceTTLSeconds"`
	MetadataTTLHours int `mapstructure:"metadataTTLHours"`
	// RefreshCronSpec schedules the background metadata refresh. Empty disables it.
	RefreshCronSpec string `mapstructure:"refreshCronSpec"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// The provider credential is opaque to the service and usually injected via env.
	if key := os.Getenv("TWELVE_DATA_API_KEY"); key != "" {
		cfg.ExternalClients.TwelveData.APIKey = key
	}
	if cfg.Cache.PriceTTLSeconds <= 0 {
		cfg.Cache.PriceTTLSeconds = 300
	}
	if cfg.Cache.MetadataTTLHours <= 0 {
		cfg.Cache.MetadataTTLHours = 24
	}
	return &cfg, nil
}

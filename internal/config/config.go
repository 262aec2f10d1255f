package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Brands   BrandsConfig   `mapstructure:"brands"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// CatalogConfig holds the listing source configuration
type CatalogConfig struct {
	BaseURL              string   `mapstructure:"base_url"`
	ListingPath          string   `mapstructure:"listing_path"`
	PageSize             int      `mapstructure:"page_size"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxWorkers           int      `mapstructure:"max_workers"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	Proxies              []string `mapstructure:"proxies"`
}

// BrandsConfig holds the vendor reference source configuration
type BrandsConfig struct {
	BaseURL string `mapstructure:"base_url"`
	ListURL string `mapstructure:"list_url"`
}

// CacheConfig holds the response cache location
type CacheConfig struct {
	Path string `mapstructure:"path"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details for ingestion progress
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("catalog.base_url", "https://www.guitarcenter.com")
	viper.SetDefault("catalog.listing_path", "/Bass.gc")
	viper.SetDefault("catalog.page_size", 30)
	viper.SetDefault("catalog.timeout", 30)
	viper.SetDefault("catalog.max_retries", 3)
	viper.SetDefault("catalog.max_workers", 8)
	viper.SetDefault("catalog.max_requests_per_second", 2)

	viper.SetDefault("brands.base_url", "https://en.wikipedia.org")
	viper.SetDefault("brands.list_url", "https://en.wikipedia.org/wiki/List_of_guitar_manufacturers")

	viper.SetDefault("cache.path", "./cache.json")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "basscatalog")
	viper.SetDefault("database.user", "catalog_user")
	viper.SetDefault("database.password", "catalog_pass")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
}

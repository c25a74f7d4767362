// Package config loads the application settings from an optional YAML file
// with environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers for the durable key-value store and the catalog.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Auth     AuthConfig     `yaml:"auth"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

// AuthConfig tunes the mock authentication backend.
type AuthConfig struct {
	// Latency is the simulated network round trip of login and register.
	Latency time.Duration `yaml:"latency"`
}

// CheckoutConfig tunes payment processing and delivery pricing.
type CheckoutConfig struct {
	// Latency is the simulated payment gateway round trip.
	Latency time.Duration `yaml:"latency"`
	// DeliveryFee is charged below FreeDeliveryThreshold.
	DeliveryFee           float64 `yaml:"delivery_fee"`
	FreeDeliveryThreshold float64 `yaml:"free_delivery_threshold"`
}

// StorageConfig selects where the session snapshot persists.
type StorageConfig struct {
	// Driver is one of memory, sqlite or redis.
	Driver        string `yaml:"driver"`
	SQLitePath    string `yaml:"sqlite_path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
}

// CatalogConfig selects the product catalog backend.
type CatalogConfig struct {
	// Driver is one of memory or sqlite.
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Default reproduces the reference behavior: in-memory everything, one
// second of login latency, two seconds of payment latency, delivery free
// from 30.00 up.
func Default() Config {
	return Config{
		Auth: AuthConfig{
			Latency: time.Second,
		},
		Checkout: CheckoutConfig{
			Latency:               2 * time.Second,
			DeliveryFee:           5.00,
			FreeDeliveryThreshold: 30.00,
		},
		Storage: StorageConfig{
			Driver:     DriverMemory,
			SQLitePath: "smartdairy.db",
			RedisAddr:  "localhost:6379",
		},
		Catalog: CatalogConfig{
			Driver:     DriverMemory,
			SQLitePath: "catalog.db",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// finally environment overrides, in that precedence order. An empty path
// skips the file; a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Catalog.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unknown catalog driver %q", c.Catalog.Driver)
	}
	if c.Checkout.DeliveryFee < 0 || c.Checkout.FreeDeliveryThreshold < 0 {
		return fmt.Errorf("delivery pricing must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Auth.Latency = getEnvDuration("SMARTDAIRY_AUTH_LATENCY", cfg.Auth.Latency)
	cfg.Checkout.Latency = getEnvDuration("SMARTDAIRY_CHECKOUT_LATENCY", cfg.Checkout.Latency)
	cfg.Checkout.DeliveryFee = getEnvFloat("SMARTDAIRY_DELIVERY_FEE", cfg.Checkout.DeliveryFee)
	cfg.Checkout.FreeDeliveryThreshold = getEnvFloat("SMARTDAIRY_FREE_DELIVERY_THRESHOLD", cfg.Checkout.FreeDeliveryThreshold)
	cfg.Storage.Driver = getEnv("SMARTDAIRY_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.SQLitePath = getEnv("SMARTDAIRY_STORAGE_SQLITE_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.RedisAddr = getEnv("SMARTDAIRY_REDIS_ADDR", cfg.Storage.RedisAddr)
	cfg.Storage.RedisPassword = getEnv("SMARTDAIRY_REDIS_PASSWORD", cfg.Storage.RedisPassword)
	cfg.Catalog.Driver = getEnv("SMARTDAIRY_CATALOG_DRIVER", cfg.Catalog.Driver)
	cfg.Catalog.SQLitePath = getEnv("SMARTDAIRY_CATALOG_SQLITE_PATH", cfg.Catalog.SQLitePath)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

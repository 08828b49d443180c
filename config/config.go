package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/shopspring/decimal"
)

// defaultInitialBankroll is the bootstrap balance the ledger starts from
// and resets to on recomputation
const defaultInitialBankroll = "5000"

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// HTTP configuration
	ListenAddr string

	// Ledger configuration
	InitialBankroll decimal.Decimal

	// Environment: "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ListenAddr:  os.Getenv("LISTEN_ADDR"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}

	initial := os.Getenv("INITIAL_BANKROLL")
	if initial == "" {
		initial = defaultInitialBankroll
	}
	parsed, err := decimal.NewFromString(initial)
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_BANKROLL %q: %w", initial, err)
	}
	if !parsed.IsPositive() {
		return nil, fmt.Errorf("INITIAL_BANKROLL must be positive, got %s", parsed)
	}
	config.InitialBankroll = parsed

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

package config

import (
	"github.com/spf13/viper"

	"github.com/fugotrade/fugo/pkg/trader"
)

const (
	// DefaultSymbol is used by commands when no symbol flag is given.
	DefaultSymbol = "BTCUSDT"

	// DefaultLeverage is applied to a symbol before strategies start trading on it.
	DefaultLeverage = 10

	DefaultLogFile = "logs/trading_bot.log"
)

// Config carries the exchange credentials and the session-wide defaults.
// Values are resolved through viper, so they can come from flags,
// environment variables or a .env file interchangeably.
type Config struct {
	APIKey    string
	APISecret string

	// Testnet routes all requests to the binance futures testnet.
	// It defaults to true so that a missing flag can never touch
	// the production endpoint by accident.
	Testnet bool

	Leverage int
	LogFile  string
	Debug    bool
}

// New builds a Config from the current viper state.
func New() *Config {
	return &Config{
		APIKey:    viper.GetString("binance-api-key"),
		APISecret: viper.GetString("binance-api-secret"),
		Testnet:   viper.GetBool("testnet"),
		Leverage:  viper.GetInt("leverage"),
		LogFile:   viper.GetString("log-file"),
		Debug:     viper.GetBool("debug"),
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &trader.ValidationError{Field: "binance-api-key", Message: "api key is not set, set BINANCE_API_KEY or pass --binance-api-key"}
	}
	if c.APISecret == "" {
		return &trader.ValidationError{Field: "binance-api-secret", Message: "api secret is not set, set BINANCE_API_SECRET or pass --binance-api-secret"}
	}
	if c.Leverage < 1 || c.Leverage > trader.MaxLeverage {
		return &trader.ValidationError{Field: "leverage", Message: "leverage must be between 1 and 125"}
	}
	return nil
}

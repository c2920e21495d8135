package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		APIKey:    "key",
		APISecret: "secret",
		Testnet:   true,
		Leverage:  DefaultLeverage,
	}
	assert.NoError(t, cfg.Validate())

	cfg.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg.APIKey = "key"
	cfg.Leverage = 126
	assert.Error(t, cfg.Validate())
}

func TestNewReadsViper(t *testing.T) {
	viper.Set("binance-api-key", "key")
	viper.Set("binance-api-secret", "secret")
	viper.Set("testnet", true)
	viper.Set("leverage", 20)
	defer viper.Reset()

	cfg := New()
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "secret", cfg.APISecret)
	assert.True(t, cfg.Testnet)
	assert.Equal(t, 20, cfg.Leverage)
}

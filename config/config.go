package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FLIPRADAR_SERVER_ADDRESS
const EnvPrefix = "FLIPRADAR"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Search    SearchConfig    `mapstructure:"search"`
	TCGplayer TCGplayerConfig `mapstructure:"tcgplayer"`
	Ebay      EbayConfig      `mapstructure:"ebay"`
	Flip      FlipConfig      `mapstructure:"flip"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds the web server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Verbose bool   `mapstructure:"verbose"`
}

// SearchConfig points the terminal widget at a search backend
type SearchConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// TCGplayerConfig holds catalog API credentials and endpoints
type TCGplayerConfig struct {
	PublicKey   string        `mapstructure:"public_key"`
	PrivateKey  string        `mapstructure:"private_key"`
	AuthURL     string        `mapstructure:"auth_url"`
	APIBase     string        `mapstructure:"api_base"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SearchLimit int           `mapstructure:"search_limit"`
}

// EbayConfig holds Browse API credentials, endpoints and page sizes
type EbayConfig struct {
	ClientID      string        `mapstructure:"client_id"`
	ClientSecret  string        `mapstructure:"client_secret"`
	MarketplaceID string        `mapstructure:"marketplace_id"`
	TokenURL      string        `mapstructure:"token_url"`
	BrowseURL     string        `mapstructure:"browse_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	LiveLimit     int           `mapstructure:"live_limit"`
	SoldLimit     int           `mapstructure:"sold_limit"`
}

// FlipConfig holds resale cost assumptions and opportunity thresholds
type FlipConfig struct {
	FeeRate            float64 `mapstructure:"fee_rate"`
	RiskBufferRate     float64 `mapstructure:"risk_buffer_rate"`
	DefaultShippingUSD float64 `mapstructure:"default_shipping_usd"`
	MinConfidence      float64 `mapstructure:"min_confidence"`
	MinDiscount        float64 `mapstructure:"min_discount"`
	MinProfitUSD       float64 `mapstructure:"min_profit_usd"`
}

// CacheConfig holds the lifetime of cached tokens and listings
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

var defaults = map[string]any{
	"server.address":            ":8000",
	"server.verbose":            true,
	"search.base_url":           "http://localhost:8000",
	"tcgplayer.public_key":      "",
	"tcgplayer.private_key":     "",
	"tcgplayer.auth_url":        "https://api.tcgplayer.com/token",
	"tcgplayer.api_base":        "https://api.tcgplayer.com",
	"tcgplayer.timeout":         "20s",
	"tcgplayer.search_limit":    20,
	"ebay.client_id":            "",
	"ebay.client_secret":        "",
	"ebay.marketplace_id":       "EBAY_US",
	"ebay.token_url":            "https://api.ebay.com/identity/v1/oauth2/token",
	"ebay.browse_url":           "https://api.ebay.com/buy/browse/v1/item_summary/search",
	"ebay.timeout":              "20s",
	"ebay.live_limit":           30,
	"ebay.sold_limit":           30,
	"flip.fee_rate":             0.1325,
	"flip.risk_buffer_rate":     0.07,
	"flip.default_shipping_usd": 4.50,
	"flip.min_confidence":       0.55,
	"flip.min_discount":         0.10,
	"flip.min_profit_usd":       5.00,
	"cache.ttl":                 "30m",
	"logging.level":             "info",
}

// defaultConfigPath returns the per-user config directory
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "flipradar")
}

// Load reads config.yaml from the working directory or the user config directory,
// then applies FLIPRADAR_* environment overrides. A missing file is fine.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if p := defaultConfigPath(); p != "" {
		v.AddConfigPath(p)
	}
	return load(v)
}

// LoadFile reads configuration from an explicit file path plus environment overrides
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, serr.Wrap(err, "error reading config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, serr.Wrap(err, "error parsing config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, serr.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at request time
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return serr.New("server.address is required")
	}
	if c.Search.BaseURL == "" {
		return serr.New("search.base_url is required")
	}
	if c.TCGplayer.SearchLimit < 1 {
		return serr.New("tcgplayer.search_limit must be at least 1")
	}
	if c.TCGplayer.Timeout < 0 {
		return serr.New("tcgplayer.timeout must not be negative")
	}
	if c.Ebay.LiveLimit < 1 || c.Ebay.SoldLimit < 1 {
		return serr.New("ebay.live_limit and ebay.sold_limit must be at least 1")
	}
	if c.Ebay.Timeout < 0 {
		return serr.New("ebay.timeout must not be negative")
	}
	if c.Flip.FeeRate < 0 || c.Flip.FeeRate >= 1 || c.Flip.RiskBufferRate < 0 || c.Flip.RiskBufferRate >= 1 {
		return serr.New("flip.fee_rate and flip.risk_buffer_rate must be in [0, 1)")
	}
	if c.Flip.DefaultShippingUSD < 0 {
		return serr.New("flip.default_shipping_usd must not be negative")
	}
	if c.Flip.MinConfidence < 0 || c.Flip.MinConfidence > 1 {
		return serr.New("flip.min_confidence must be in [0, 1]")
	}
	if c.Cache.TTL <= 0 {
		return serr.New("cache.ttl must be positive")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return serr.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

// HasCatalogKeys reports whether the TCGplayer credentials are set
func (c *Config) HasCatalogKeys() bool {
	return c.TCGplayer.PublicKey != "" && c.TCGplayer.PrivateKey != ""
}

// HasEbayKeys reports whether the eBay credentials are set
func (c *Config) HasEbayKeys() bool {
	return c.Ebay.ClientID != "" && c.Ebay.ClientSecret != ""
}

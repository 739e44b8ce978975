package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"billpay-settlement/internal/model"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	Security    SecurityConfig
	Reloadly    ReloadlyConfig
	Flutterwave FlutterwaveConfig
	Markup      MarkupConfig
	Catalog     CatalogConfig
	Ledger      LedgerConfig
	WhatsApp    WhatsAppConfig `envconfig:"WA"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `split_words:"true" default:"15s"`
	WriteTimeout    time.Duration `split_words:"true" default:"60s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"30s"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `default:"INFO"`
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	APIKey string `envconfig:"API_KEY"`
}

// ReloadlyConfig holds the vendor API configuration
type ReloadlyConfig struct {
	ClientID          string        `envconfig:"CLIENT_ID" required:"true"`
	ClientSecret      string        `envconfig:"CLIENT_SECRET" required:"true"`
	AuthURL           string        `split_words:"true" default:"https://auth.reloadly.com/oauth/token"`
	TopupsURL         string        `split_words:"true" default:"https://topups.reloadly.com"`
	UtilitiesURL      string        `split_words:"true" default:"https://utilities.reloadly.com"`
	TopupsAudience    string        `split_words:"true" default:"https://topups.reloadly.com"`
	UtilitiesAudience string        `split_words:"true" default:"https://utilities.reloadly.com"`
	Timeout           time.Duration `default:"30s"`
	TokenBuffer       time.Duration `split_words:"true" default:"5m"`
	CountryISO        string        `envconfig:"COUNTRY_ISO" default:"NG"`
	DialingCode       string        `split_words:"true" default:"+234"`
}

// FlutterwaveConfig holds payment gateway configuration
type FlutterwaveConfig struct {
	SecretKey string        `envconfig:"SECRET_KEY" required:"true"`
	BaseURL   string        `split_words:"true" default:"https://api.flutterwave.com/v3"`
	Timeout   time.Duration `default:"30s"`
}

// MarkupConfig holds the resale markup fraction per category
type MarkupConfig struct {
	Airtime     decimal.Decimal `default:"0.02"`
	Data        decimal.Decimal `default:"0.05"`
	CableTV     decimal.Decimal `envconfig:"CABLE_TV" default:"0.03"`
	Electricity decimal.Decimal `default:"0.02"`
}

// ByCategory returns the markups keyed by catalog category
func (c MarkupConfig) ByCategory() map[model.Category]decimal.Decimal {
	return map[model.Category]decimal.Decimal{
		model.CategoryAirtime:     c.Airtime,
		model.CategoryData:        c.Data,
		model.CategoryCableTV:     c.CableTV,
		model.CategoryElectricity: c.Electricity,
	}
}

// CatalogConfig holds catalog synchronization configuration
type CatalogConfig struct {
	SyncOnStartup bool   `split_words:"true" default:"true"`
	SyncMode      string `split_words:"true" default:"fill"`
}

// LedgerConfig holds settlement ledger configuration
type LedgerConfig struct {
	DBPath    string        `envconfig:"DB_PATH" default:"./db/settlements.db"`
	Retention time.Duration `default:"2160h"`
}

// WhatsAppConfig holds operator alert configuration
type WhatsAppConfig struct {
	DBPath           string `envconfig:"DB_PATH" default:"./db/whatsmeow.db"`
	LogLevel         string `split_words:"true" default:"INFO"`
	AlertDestination string `split_words:"true"`
}

// Enabled reports whether operator alerts should be sent over WhatsApp
func (c WhatsAppConfig) Enabled() bool {
	return c.AlertDestination != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values envconfig cannot express
func (c *Config) Validate() error {
	if c.Reloadly.ClientID == "" || c.Reloadly.ClientSecret == "" {
		return fmt.Errorf("RELOADLY_CLIENT_ID and RELOADLY_CLIENT_SECRET are required")
	}
	if c.Flutterwave.SecretKey == "" {
		return fmt.Errorf("FLUTTERWAVE_SECRET_KEY is required")
	}

	for category, m := range c.Markup.ByCategory() {
		if m.IsNegative() {
			return fmt.Errorf("markup for %s must be >= 0, got %s", category, m)
		}
	}

	switch model.SyncMode(c.Catalog.SyncMode) {
	case model.SyncFillGaps, model.SyncFull:
	default:
		return fmt.Errorf("CATALOG_SYNC_MODE must be %q or %q, got %q", model.SyncFillGaps, model.SyncFull, c.Catalog.SyncMode)
	}

	if c.Reloadly.DialingCode == "" || c.Reloadly.DialingCode[0] != '+' {
		return fmt.Errorf("RELOADLY_DIALING_CODE must start with '+', got %q", c.Reloadly.DialingCode)
	}

	return nil
}

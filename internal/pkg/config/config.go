package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, NLU endpoint, etc.)
// - default: Values common across all environments (rates, timeouts, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	Log        LogConfig
	NLU        NLUConfig
	Redis      RedisConfig
	Broker     BrokerConfig
	Inventory  InventoryConfig
	Pricing    PricingConfig
	Dispatcher DispatcherConfig
	Dining     DiningConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Accept-Language"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tehran"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"12600"` // 3.5*60*60
}

type NLUConfig struct {
	BaseURL       string        `envconfig:"NLU_BASE_URL" required:"true"`
	APIKey        string        `envconfig:"NLU_API_KEY"`
	Timeout       time.Duration `envconfig:"NLU_TIMEOUT" default:"20s"`
	RatePerSecond float64       `envconfig:"NLU_RATE_PER_SECOND" default:"5"`
	Burst         int           `envconfig:"NLU_BURST" default:"10"`
	CacheTTL      time.Duration `envconfig:"NLU_CACHE_TTL" default:"10m"`
	DefaultLang   string        `envconfig:"NLU_DEFAULT_LANGUAGE" default:"fa"`
	RenderEnabled bool          `envconfig:"NLU_RENDER_ENABLED" default:"true"`
}

// RedisConfig is optional; an empty address disables the classification cache.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// BrokerConfig is optional; an empty URL logs events instead of publishing them.
type BrokerConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"hotel.reservations"`
}

type InventoryConfig struct {
	SeedPath string `envconfig:"INVENTORY_SEED_PATH"`
}

type PricingConfig struct {
	Currency          string `envconfig:"PRICING_CURRENCY" default:"USD"`
	TaxRateBP         int64  `envconfig:"PRICING_TAX_RATE_BP" default:"800"`
	ServiceChargeBP   int64  `envconfig:"PRICING_SERVICE_CHARGE_BP" default:"1000"`
	BulkMinQuantity   int    `envconfig:"PRICING_BULK_MIN_QUANTITY" default:"20"`
	BulkDiscountBP    int64  `envconfig:"PRICING_BULK_DISCOUNT_BP" default:"1000"`
	LoyaltyDiscountBP int64  `envconfig:"PRICING_LOYALTY_DISCOUNT_BP" default:"500"`
}

type DispatcherConfig struct {
	ClassifyMaxAttempts int           `envconfig:"DISPATCH_CLASSIFY_MAX_ATTEMPTS" default:"3"`
	ClassifyBaseBackoff time.Duration `envconfig:"DISPATCH_CLASSIFY_BASE_BACKOFF" default:"200ms"`
	ClassifyMaxBackoff  time.Duration `envconfig:"DISPATCH_CLASSIFY_MAX_BACKOFF" default:"2s"`
	TurnTimeout         time.Duration `envconfig:"DISPATCH_TURN_TIMEOUT" default:"60s"`
}

type DiningConfig struct {
	// Per-mille similarity a fuzzy menu match must reach
	FuzzyThreshold int `envconfig:"DINING_FUZZY_THRESHOLD" default:"600"`
}

func LoadConfig() (Config, error) {
	// .env is a local convenience; its absence is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Accept-Language"},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tehran",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 12600,
		},
		NLU: NLUConfig{
			BaseURL:       "http://localhost:18080",
			Timeout:       2 * time.Second,
			RatePerSecond: 100,
			Burst:         100,
			CacheTTL:      time.Minute,
			DefaultLang:   "en",
		},
		Broker: BrokerConfig{
			Exchange: "hotel.reservations.test",
		},
		Pricing: PricingConfig{
			Currency:          "USD",
			TaxRateBP:         800,
			ServiceChargeBP:   1000,
			BulkMinQuantity:   20,
			BulkDiscountBP:    1000,
			LoyaltyDiscountBP: 500,
		},
		Dispatcher: DispatcherConfig{
			ClassifyMaxAttempts: 3,
			ClassifyBaseBackoff: time.Millisecond,
			ClassifyMaxBackoff:  5 * time.Millisecond,
			TurnTimeout:         5 * time.Second,
		},
		Dining: DiningConfig{
			FuzzyThreshold: 600,
		},
	}
}

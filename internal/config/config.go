package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// CapitalBank holds the payment gateway profile. It is constructed once at
// startup and passed into the components that need it.
type CapitalBank struct {
	MerchantID string `envconfig:"CAPITAL_BANK_MERCHANT_ID" required:"true"`
	AccessKey  string `envconfig:"CAPITAL_BANK_ACCESS_KEY" required:"true"`
	SecretKey  string `envconfig:"CAPITAL_BANK_SECRET_KEY" required:"true"`
	Currency   string `envconfig:"CAPITAL_BANK_CURRENCY" default:"JOD"`
	Locale     string `envconfig:"CAPITAL_BANK_LOCALE" default:"ar"`
	// Accepted drift for signed_date_time on callback payloads.
	SignatureWindow time.Duration `envconfig:"CAPITAL_BANK_SIGNATURE_WINDOW" default:"15m"`
}

type App struct {
	// Network
	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":8080"`
	FrontendOrigin string `envconfig:"FRONTEND_URL" required:"true"`

	// Storage
	MongoURI string `envconfig:"MONGO_URI" required:"true"`
	MongoDB  string `envconfig:"MONGO_DB" default:"peekaboo"`

	// Cache
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisUser     string `envconfig:"REDIS_USER" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	// Events
	RabbitURL      string `envconfig:"RABBIT_URL" default:""`
	RabbitExchange string `envconfig:"RABBIT_EXCHANGE" default:"bookings"`

	// A processing finalization lock older than this is treated as abandoned.
	FinalizationStaleAfter time.Duration `envconfig:"FINALIZATION_STALE_AFTER" default:"5m"`

	CapitalBank CapitalBank
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

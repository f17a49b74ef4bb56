package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	TrustProxyHeaders bool   `mapstructure:"TRUST_PROXY_HEADERS"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Payment gateway (Razorpay) credentials.
	RazorpayKeyID     string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `mapstructure:"RAZORPAY_KEY_SECRET"`
	PaymentCurrency   string `mapstructure:"PAYMENT_CURRENCY"`

	// Geocoding.
	GeocoderBaseURL    string `mapstructure:"GEOCODER_BASE_URL"`
	GeocoderTimeoutSec int    `mapstructure:"GEOCODER_TIMEOUT_SEC"`
	GeocoderCountry    string `mapstructure:"GEOCODER_COUNTRY"`

	// Service-area pricing. Tier boundaries are km from the nearest branch,
	// inclusive on the upper bound; METRO_POSTAL_RANGES is a comma-separated
	// list of PIN ranges, e.g. "302001-302039,303001-303008".
	MetroPostalRanges string  `mapstructure:"METRO_POSTAL_RANGES"`
	NearTierKm        float64 `mapstructure:"NEAR_TIER_KM"`
	MidTierKm         float64 `mapstructure:"MID_TIER_KM"`
	FarTierKm         float64 `mapstructure:"FAR_TIER_KM"`
	MidTierCharge     float64 `mapstructure:"MID_TIER_CHARGE"`
	FarTierCharge     float64 `mapstructure:"FAR_TIER_CHARGE"`

	// Operations notification webhook.
	OpsWebhookURL string `mapstructure:"OPS_WEBHOOK_URL"`

	// Cloudinary media storage.
	CloudinaryURL string `mapstructure:"CLOUDINARY_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TRUST_PROXY_HEADERS", true)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "localserve")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("PAYMENT_CURRENCY", "INR")
	viper.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("GEOCODER_TIMEOUT_SEC", 5)
	viper.SetDefault("GEOCODER_COUNTRY", "in")
	viper.SetDefault("METRO_POSTAL_RANGES", "302001-302039")
	viper.SetDefault("NEAR_TIER_KM", 5.0)
	viper.SetDefault("MID_TIER_KM", 10.0)
	viper.SetDefault("FAR_TIER_KM", 15.0)
	viper.SetDefault("MID_TIER_CHARGE", 50.0)
	viper.SetDefault("FAR_TIER_CHARGE", 100.0)
	viper.SetDefault("OPS_WEBHOOK_URL", "")
	viper.SetDefault("CLOUDINARY_URL", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

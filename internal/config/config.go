package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	PayPalSandbox = "sandbox"
	PayPalLive    = "live"

	defaultIPNPath         = "/webhook/paypal/ipn"
	defaultVerifyTimeout   = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	PayPalEnv       string
	PayPalVerifyURL string
	VerifyTimeout   time.Duration
	IPNPath         string
	IPNRequireAgent bool
	ShutdownTimeout time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
		AppPort:         getEnv("APP_PORT", "8080"),
		AppEnv:          os.Getenv("APP_ENV"),
		PayPalEnv:       getEnv("PAYPAL_ENV", PayPalSandbox),
		PayPalVerifyURL: os.Getenv("PAYPAL_VERIFY_URL"),
		VerifyTimeout:   getDuration("PAYPAL_VERIFY_TIMEOUT", defaultVerifyTimeout),
		IPNPath:         getEnv("PAYPAL_IPN_PATH", defaultIPNPath),
		IPNRequireAgent: getBool("PAYPAL_IPN_REQUIRE_AGENT", false),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.PayPalEnv != PayPalSandbox && cfg.PayPalEnv != PayPalLive {
		log.Fatalf("PAYPAL_ENV must be %q or %q, got %q", PayPalSandbox, PayPalLive, cfg.PayPalEnv)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

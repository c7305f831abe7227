package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. The PayPal fields are
// handed to the gateway client constructor at startup; business logic never
// reads the environment directly.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	AppBaseURL     string
	PayPalClientID string
	PayPalSecret   string
	PayPalMode     string // "sandbox" or "live"
	PayPalCurrency string
}

// LoadConfig loads configuration from environment variables. A .env file is
// picked up when present but is optional outside local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),

		AppBaseURL:     os.Getenv("APP_BASE_URL"),
		PayPalClientID: os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalSecret:   os.Getenv("PAYPAL_SECRET"),
		PayPalMode:     os.Getenv("PAYPAL_MODE"),
		PayPalCurrency: os.Getenv("PAYPAL_CURRENCY"),
	}

	if config.Port == "" {
		config.Port = "8080"
	}
	if config.AppBaseURL == "" {
		config.AppBaseURL = "http://localhost:" + config.Port
	}
	if config.PayPalMode == "" {
		config.PayPalMode = "sandbox"
	}

	return config, nil
}

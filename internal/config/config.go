package config

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// Demand sources
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port              string
	LogLevel          string
	DemandSource      string
	DemandCSV         string
	CSVDelimiter      rune
	DBConn            string
	JWTSecret         string
	FuelPriceURL      string
	FuelPriceXPath    string
	FuelPriceSchedule string
	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string
	Locality          string
	Currency          string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		DemandSource:      getEnv("DEMAND_SOURCE", SourceCSV),
		DemandCSV:         getEnv("DEMAND_CSV", "demanda_historica_y_predicha.csv"),
		DBConn:            getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=solar sslmode=disable"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		FuelPriceURL:      getEnv("FUEL_PRICE_URL", ""),
		FuelPriceXPath:    getEnv("FUEL_PRICE_XPATH", "//Diesel/Price"),
		FuelPriceSchedule: getEnv("FUEL_PRICE_SCHEDULE", "@every 6h"),
		SMTPHost:          getEnv("SMTP_HOST", "localhost"),
		SMTPPort:          getEnv("SMTP_PORT", "1025"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", "simulador@localhost"),
		Locality:          getEnv("LOCALITY", "Leticia, Colombia"),
		Currency:          getEnv("CURRENCY", "COP"),
	}

	delim := getEnv("CSV_DELIMITER", ",")
	if utf8.RuneCountInString(delim) != 1 {
		return nil, fmt.Errorf("CSV_DELIMITER must be a single character, got %q", delim)
	}
	cfg.CSVDelimiter, _ = utf8.DecodeRuneInString(delim)

	switch cfg.DemandSource {
	case SourceCSV:
		if cfg.DemandCSV == "" {
			return nil, fmt.Errorf("DEMAND_CSV is required")
		}
	case SourcePostgres:
		if cfg.DBConn == "" {
			return nil, fmt.Errorf("DB_CONN is required")
		}
	default:
		return nil, fmt.Errorf("DEMAND_SOURCE must be %q or %q, got %q", SourceCSV, SourcePostgres, cfg.DemandSource)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.FuelPriceURL != "" && cfg.FuelPriceXPath == "" {
		return nil, fmt.Errorf("FUEL_PRICE_XPATH is required when FUEL_PRICE_URL is set")
	}
	if cfg.Currency == "" {
		return nil, fmt.Errorf("CURRENCY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

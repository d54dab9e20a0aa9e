package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	LogLevel     string
	DatabasePath string

	CommerceAPIBaseURL string
	CommerceAPIToken   string
	RequestTimeout     time.Duration

	// Outbound pacing for calls to the commerce API and concurrency
	// cap for bulk status fan-out.
	APIRequestsPerSecond float64
	APIRequestBurst      int
	BulkConcurrency      int

	RefreshInterval time.Duration // 0 disables the periodic re-fetch loop

	AllowedOrigin string

	AlertProvider        string
	MailgunDomain        string
	MailgunPrivateAPIKey string
	SenderEmail          string
	SenderName           string
	AlertRecipient       string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	baseURL := getEnv("COMMERCE_API_BASE_URL", "")
	if baseURL == "" {
		log.Fatalf("FATAL: COMMERCE_API_BASE_URL is required but not set in environment or .env file.")
	}

	apiToken := getEnv("COMMERCE_API_TOKEN", "")
	if apiToken == "" {
		log.Println("WARNING: COMMERCE_API_TOKEN is empty. Requests to the commerce API will be unauthenticated and will likely be rejected.")
	}

	requestTimeoutStr := getEnv("API_REQUEST_TIMEOUT", "15s")
	requestTimeout, err := time.ParseDuration(requestTimeoutStr)
	if err != nil {
		log.Printf("WARNING: Invalid API_REQUEST_TIMEOUT format '%s'. Using default 15s. Error: %v", requestTimeoutStr, err)
		requestTimeout = 15 * time.Second
	}

	refreshIntervalStr := getEnv("REFRESH_INTERVAL", "0s")
	refreshInterval, err := time.ParseDuration(refreshIntervalStr)
	if err != nil {
		log.Printf("WARNING: Invalid REFRESH_INTERVAL format '%s'. Disabling periodic refresh. Error: %v", refreshIntervalStr, err)
		refreshInterval = 0
	}

	rpsStr := getEnv("API_REQUESTS_PER_SECOND", "10")
	rps, err := strconv.ParseFloat(rpsStr, 64)
	if err != nil || rps <= 0 {
		log.Printf("WARNING: Invalid API_REQUESTS_PER_SECOND '%s'. Using default 10.", rpsStr)
		rps = 10
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8081"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabasePath: getEnv("DATABASE_PATH", "./settleadmin.db"),

		CommerceAPIBaseURL: baseURL,
		CommerceAPIToken:   apiToken,
		RequestTimeout:     requestTimeout,

		APIRequestsPerSecond: rps,
		APIRequestBurst:      getEnvAsInt("API_REQUEST_BURST", 20),
		BulkConcurrency:      getEnvAsInt("BULK_CONCURRENCY", 8),

		RefreshInterval: refreshInterval,

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		AlertProvider:        getEnv("ALERT_PROVIDER", "mock"),
		MailgunDomain:        getEnv("MAILGUN_DOMAIN", ""),
		MailgunPrivateAPIKey: getEnv("MAILGUN_PRIVATE_API_KEY", ""),
		SenderEmail:          getEnv("SENDER_EMAIL", "alerts@example.com"),
		SenderName:           getEnv("SENDER_NAME", "Settleadmin Console"),
		AlertRecipient:       getEnv("ALERT_RECIPIENT", ""),
	}

	if Cfg.BulkConcurrency < 1 {
		log.Printf("WARNING: BULK_CONCURRENCY must be at least 1, got %d. Using 1.", Cfg.BulkConcurrency)
		Cfg.BulkConcurrency = 1
	}

	if Cfg.AlertProvider == "mailgun" {
		if Cfg.MailgunDomain == "" || Cfg.MailgunPrivateAPIKey == "" {
			log.Println("WARNING: ALERT_PROVIDER is 'mailgun' but MAILGUN_DOMAIN or MAILGUN_PRIVATE_API_KEY is not set. Alerts will fall back to the mock provider.")
		}
		if Cfg.AlertRecipient == "" {
			log.Println("WARNING: ALERT_RECIPIENT is not set. Mailgun alerts have nowhere to go.")
		}
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, APIBaseURL=%s, RefreshInterval=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.CommerceAPIBaseURL, Cfg.RefreshInterval)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("WARNING: Invalid integer for %s: '%s'. Using default %d.", key, valueStr, fallback)
		return fallback
	}
	return value
}

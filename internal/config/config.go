package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DefaultParticipants are the family members the ledger tracks totals for.
var DefaultParticipants = []string{"Muhammad Raiz", "Qaisar Shahzad", "Muhammad Rizwan", "Muhammad Nawaz"}

// DefaultExtraReceivers are receivers offered in forms besides the participants.
var DefaultExtraReceivers = []string{"Ali Hussan"}

// Config holds application configuration
type Config struct {
	// Server
	Port       string
	Env        string
	CORSOrigin string

	// Metrics scrape key; empty leaves /metrics open
	MetricsAPIKey string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Session resolution
	ProfileFetchTimeout time.Duration

	// Ledger
	DefaultRate    decimal.Decimal
	Participants   []string
	ExtraReceivers []string

	// Reference market rate
	ForexEnabled  bool
	ForexBaseURL  string
	ForexCacheTTL time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		MetricsAPIKey: os.Getenv("METRICS_API_KEY"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "khata"),
		DBPassword: getEnv("DB_PASSWORD", "khata"),
		DBName:     getEnv("DB_NAME", "khata"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		Participants:   getList("PARTICIPANTS", DefaultParticipants),
		ExtraReceivers: getList("EXTRA_RECEIVERS", DefaultExtraReceivers),

		ForexEnabled: getBool("FOREX_ENABLED", true),
		ForexBaseURL: getEnv("FOREX_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
	}

	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.ProfileFetchTimeout = getDuration("PROFILE_FETCH_TIMEOUT", 5*time.Second)
	config.ForexCacheTTL = getDuration("FOREX_CACHE_TTL", time.Hour)

	rateStr := getEnv("DEFAULT_KWD_PKR_RATE", "85")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || !rate.IsPositive() {
		log.Printf("Warning: invalid DEFAULT_KWD_PKR_RATE value '%s', falling back to 85\n", rateStr)
		rate = decimal.NewFromInt(85)
	}
	config.DefaultRate = rate

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Receivers returns the participants followed by the extra receivers.
func (c *Config) Receivers() []string {
	out := make([]string, 0, len(c.ExtraReceivers)+len(c.Participants))
	out = append(out, c.ExtraReceivers...)
	return append(out, c.Participants...)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return b
}

// getList splits a comma separated variable, dropping blank entries.
func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return out
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once from the environment.
//
// Supported env vars are listed next to each field. Empty values fall back to
// the defaults so a bare `go run` works against local DynamoDB.
type Config struct {
	Port       int    // PORT (default: 8080)
	LogLevel   string // LOG_LEVEL (default: info)
	AppVersion string // APP_VERSION (default: dev)

	// DynamoDB tables
	PurchaseRequestsTable string // PURCHASE_REQUESTS_TABLE (default: purchase_requests)
	RFQsTable             string // RFQS_TABLE (default: rfqs)
	RFQCountersTable      string // RFQ_COUNTERS_TABLE (default: rfq_counters)
	SuppliersTable        string // SUPPLIERS_TABLE (default: suppliers)
	CreateTables          bool   // DYNAMODB_CREATE_TABLES (default: false)

	OpenAIAPIKey    string // OPENAI_API_KEY
	OpenAIBaseURL   string // OPENAI_BASE_URL (optional)
	OpenAIModelMini string // OPENAI_MODEL_MINI (default: gpt-4o-mini)
	OpenAIModelFull string // OPENAI_MODEL_FULL (default: gpt-4o)

	SerperAPIKey   string        // SERPER_API_KEY; web search is off without it
	SearchLocale   string        // SEARCH_LOCALE (default: es)
	SearchCountry  string        // SEARCH_COUNTRY (default: mx)
	SearchRegion   string        // SEARCH_REGION (default: México)
	RedisAddr      string        // REDIS_ADDR; search cache is off without it
	RedisPassword  string        // REDIS_PASSWORD
	SearchCacheTTL time.Duration // SEARCH_CACHE_TTL (default: 6h)

	SMTPHost     string // SMTP_HOST (default: smtp.gmail.com)
	SMTPPort     int    // SMTP_PORT (default: 587)
	SMTPUser     string // SMTP_USER
	SMTPPassword string // SMTP_PASSWORD
	SMTPFrom     string // SMTP_FROM (default: SMTP_USER)

	ContactEmail string // COMPANY_CONTACT_EMAIL (default: compras@pei.com)
	ContactPhone string // COMPANY_CONTACT_PHONE

	LLMTimeout    time.Duration // LLM_TIMEOUT (default: 60s)
	SearchTimeout time.Duration // SEARCH_TIMEOUT (default: 15s)
	EmailTimeout  time.Duration // EMAIL_TIMEOUT (default: 30s)

	DispatchWorkers int // DISPATCH_WORKERS (default: 4)
	SearchWorkers   int // SEARCH_WORKERS (default: 4)

	SuppliersSeedFile string // SUPPLIERS_SEED_FILE (default: config/suppliers.yaml)
}

// Load reads the configuration from the environment. Malformed numbers and
// durations are logged and replaced by their default.
func Load() Config {
	smtpUser := os.Getenv("SMTP_USER")
	return Config{
		Port:       getenvInt("PORT", 8080),
		LogLevel:   getenvDefault("LOG_LEVEL", "info"),
		AppVersion: getenvDefault("APP_VERSION", "dev"),

		PurchaseRequestsTable: getenvDefault("PURCHASE_REQUESTS_TABLE", "purchase_requests"),
		RFQsTable:             getenvDefault("RFQS_TABLE", "rfqs"),
		RFQCountersTable:      getenvDefault("RFQ_COUNTERS_TABLE", "rfq_counters"),
		SuppliersTable:        getenvDefault("SUPPLIERS_TABLE", "suppliers"),
		CreateTables:          getenvBool("DYNAMODB_CREATE_TABLES", false),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		OpenAIModelMini: getenvDefault("OPENAI_MODEL_MINI", "gpt-4o-mini"),
		OpenAIModelFull: getenvDefault("OPENAI_MODEL_FULL", "gpt-4o"),

		SerperAPIKey:   os.Getenv("SERPER_API_KEY"),
		SearchLocale:   getenvDefault("SEARCH_LOCALE", "es"),
		SearchCountry:  getenvDefault("SEARCH_COUNTRY", "mx"),
		SearchRegion:   getenvDefault("SEARCH_REGION", "México"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		SearchCacheTTL: getenvDuration("SEARCH_CACHE_TTL", 6*time.Hour),

		SMTPHost:     getenvDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getenvInt("SMTP_PORT", 587),
		SMTPUser:     smtpUser,
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getenvDefault("SMTP_FROM", smtpUser),

		ContactEmail: getenvDefault("COMPANY_CONTACT_EMAIL", "compras@pei.com"),
		ContactPhone: os.Getenv("COMPANY_CONTACT_PHONE"),

		LLMTimeout:    getenvDuration("LLM_TIMEOUT", 60*time.Second),
		SearchTimeout: getenvDuration("SEARCH_TIMEOUT", 15*time.Second),
		EmailTimeout:  getenvDuration("EMAIL_TIMEOUT", 30*time.Second),

		DispatchWorkers: getenvInt("DISPATCH_WORKERS", 4),
		SearchWorkers:   getenvInt("SEARCH_WORKERS", 4),

		SuppliersSeedFile: getenvDefault("SUPPLIERS_SEED_FILE", "config/suppliers.yaml"),
	}
}

// WebSearchEnabled reports whether a search provider key is configured.
func (c Config) WebSearchEnabled() bool {
	return strings.TrimSpace(c.SerperAPIKey) != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		log.Printf("[config] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

// getenvDuration accepts Go durations ("90s") or a plain number of seconds.
func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

package config // package config loads application configuration from environment variables

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Credentials for the external capabilities are
// plain fields here and are handed to the client constructors; nothing else
// in the application reads the environment.
//
// The API keys are optional at startup: a missing key makes the affected
// endpoint answer with a configuration error instead of preventing the
// service from starting.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	CatalogPath    string        // path to the static events JSON document
	ReferenceDate  string        // anchor date (YYYY-MM-DD) for relative-date resolution
	GroqAPIKey     string        // reasoning capability credentials (optional)
	GroqModel      string        // reasoning model override (optional)
	GroqBaseURL    string        // reasoning endpoint override (optional)
	OpenAIAPIKey   string        // transcription capability credentials (optional)
	OpenAIBaseURL  string        // transcription endpoint override (optional)
	SearchCacheTTL time.Duration // lifetime of cached query results in redis
	LogLevel       string        // zap level: debug/info/warn/error
	LogFormat      string        // "json" or "console"
	QueueEnabled   bool          // publish/consume search analytics events
}

// defaultReferenceDate matches the catalog's authored season so relative
// dates resolve reproducibly when no override is configured.
const defaultReferenceDate = "2026-02-28"

// Load reads configuration values from environment variables and returns a
// Config. Every value has a usable default; deployments only set what they
// need to change.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8080"),
		CatalogPath:    getenv("CATALOG_PATH", "events.json"),
		ReferenceDate:  getenv("REFERENCE_DATE", defaultReferenceDate),
		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		GroqModel:      os.Getenv("GROQ_MODEL"),
		GroqBaseURL:    os.Getenv("GROQ_BASE_URL"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		SearchCacheTTL: envDur("SEARCH_CACHE_TTL", 5*time.Minute),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "json"),
		QueueEnabled:   envBool("QUEUE_ENABLED", false),
	}
}

// Shared env helpers reused by the cache and ratelimit config files.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}

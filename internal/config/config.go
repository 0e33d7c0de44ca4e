package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StorePath  string // path to the jobs.json collection file
	BackupDir  string // directory for pre-write snapshots (default: <store dir>/backups)
	BackupKeep int    // how many snapshots to retain (0 = keep all)

	JobTTL        time.Duration // posting lifetime before expiry (default: 30 days)
	SweepInterval time.Duration // interval between expiry sweeps (default: 1h)
	IngestSpec    string        // cron spec for ingestion cycles (default: "@every 6h")

	SeedFile string   // path to a YAML seed file of manual/generated jobs (optional, empty = disabled)
	RSSFeeds []string // RSS feed URLs to import (optional)

	// Adzuna API producer (optional, empty credentials = disabled)
	AdzunaAppID    string
	AdzunaAppKey   string
	AdzunaCountry  string // "us", "gb", "fr", …
	AdzunaQuery    string // "what" search term, ex: "software engineer"
	AdzunaLocation string // "where" term, ex: "New York"

	SourceTimeout time.Duration // per-producer fetch timeout (default: 30s)

	// Redis (query cache + ingest run stats)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	QueryCacheTTL         time.Duration // TTL for cached query results (default: 5m)

	AllowedHosts []string // optional, restrict admin access to specific Host headers
	AllowedCIDRS []string // optional, restrict admin access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateBurst        int // token bucket burst for public endpoints
	RateRefillPerMin int // tokens refilled per IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("HD_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("HD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("HD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("HD_PRETTY_LOG", false),

		// Job store
		StorePath:  getenv("HD_STORE_PATH", "/data/jobs.json"),
		BackupDir:  getenv("HD_BACKUP_DIR", ""),
		BackupKeep: getenvInt("HD_BACKUP_KEEP", 20),

		// Lifecycle
		JobTTL:        mustDuration("HD_JOB_TTL", 30*24*time.Hour),
		SweepInterval: mustDuration("HD_SWEEP_INTERVAL", time.Hour),
		IngestSpec:    getenv("HD_INGEST_SPEC", "@every 6h"),

		// Producers
		SeedFile:       getenv("HD_SEED_FILE", ""),
		RSSFeeds:       splitAndTrim(getenv("HD_RSS_FEEDS", "")),
		AdzunaAppID:    getenv("HD_ADZUNA_APP_ID", ""),
		AdzunaAppKey:   getenv("HD_ADZUNA_APP_KEY", ""),
		AdzunaCountry:  getenv("HD_ADZUNA_COUNTRY", "us"),
		AdzunaQuery:    getenv("HD_ADZUNA_QUERY", ""),
		AdzunaLocation: getenv("HD_ADZUNA_LOCATION", ""),
		SourceTimeout:  mustDuration("HD_SOURCE_TIMEOUT", 30*time.Second),

		// Redis settings
		RedisAddr:             requireEnv("HD_REDIS_ADDR"),
		RedisUser:             getenv("HD_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("HD_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("HD_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("HD_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		QueryCacheTTL:         mustDuration("HD_QUERY_CACHE_TTL", 5*time.Minute),

		// Access restrictions (admin endpoints)
		AllowedHosts: splitAndTrim(getenv("HD_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("HD_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("HD_TRUST_PROXY", false),

		// Rate limiting (public endpoints)
		RateBurst:        getenvInt("HD_RATE_BURST", 30),
		RateRefillPerMin: getenvInt("HD_RATE_REFILL_PER_MIN", 60),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("FATAL: HD_REDIS_PASSWORD is required when HD_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.AdzunaAppKey = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ServiceName    string        // reported in payloads and metric labels
	InstanceID     string        // identity of this process in the snapshot store (default: random UUID)
	ReportInterval time.Duration // how often the status line is logged and published (default: 1m)
	MetricsEnabled bool          // expose /metrics

	// Redis (optional, empty RedisAddr disables snapshot publishing)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedCIDRS []string // optional, restrict /status and /metrics to specific IPs/CIDRs
	AllowedHosts []string // optional, restrict /status to specific Host headers (wildcards allowed)
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	RateLimitBurst     int // per-client burst on /status, 0 disables limiting
	RateLimitPerMinute int // per-client refill rate on /status
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("UPTIME_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("UPTIME_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("UPTIME_LOG_LEVEL", "info"),
		PrettyLog: mustBool("UPTIME_PRETTY_LOG", true),

		// Status reporting
		ServiceName:    getenv("UPTIME_SERVICE_NAME", "statusd"),
		InstanceID:     getenv("UPTIME_INSTANCE_ID", uuid.NewString()),
		ReportInterval: mustDuration("UPTIME_REPORT_INTERVAL", time.Minute),
		MetricsEnabled: mustBool("UPTIME_METRICS_ENABLED", true),

		// Redis settings
		RedisAddr:           getenv("UPTIME_REDIS_ADDR", ""),
		RedisUser:           getenv("UPTIME_REDIS_USERNAME", ""),
		RedisPassword:       getenv("UPTIME_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("UPTIME_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedCIDRS: parseAllowedIPs(getenv("UPTIME_ALLOWED_CIDRS", "")),
		AllowedHosts: splitAndTrim(getenv("UPTIME_ALLOWED_HOSTS", "")),
		TrustProxy:   mustBool("UPTIME_TRUST_PROXY", false),

		RateLimitBurst:     getenvInt("UPTIME_RATE_LIMIT_BURST", 0),
		RateLimitPerMinute: getenvInt("UPTIME_RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.ReportInterval <= 0 {
		panic(fmt.Sprintf("❌ FATAL: UPTIME_REPORT_INTERVAL must be > 0, got %v", cfg.ReportInterval))
	}
	if cfg.RateLimitBurst > 0 && cfg.RateLimitPerMinute <= 0 {
		panic(fmt.Sprintf("❌ FATAL: UPTIME_RATE_LIMIT_PER_MINUTE must be > 0 when limiting is on, got %d", cfg.RateLimitPerMinute))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether snapshot publishing is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Scraper  ScraperConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type ScraperConfig struct {
	// CrawlerUserAgent is the spoofed link-preview crawler identity sent
	// to Shopee. Shopee serves server-rendered HTML with OG tags and
	// JSON-LD only to known crawler identities; a browser identity gets
	// the empty SPA shell instead. Upstream may change behavior for this
	// string at any time, so it is configurable rather than hardcoded.
	CrawlerUserAgent string
	// DesktopUserAgent is the ordinary browser identity used for the
	// Tokopedia aggregation API and page fetches.
	DesktopUserAgent string

	ShopeeBaseURL    string
	TokopediaBaseURL string

	FetchTimeout time.Duration
	RateLimitMin time.Duration
	RateLimitMax time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

const (
	defaultCrawlerUserAgent = "facebookexternalhit/1.1;line-poker/1.0"
	defaultDesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getStringSliceOrDefault("SERVER_ALLOWED_ORIGINS", []string{"http://localhost:*", "https://localhost:*"}),
		},
		Scraper: ScraperConfig{
			CrawlerUserAgent: getEnvOrDefault("SCRAPER_CRAWLER_USER_AGENT", defaultCrawlerUserAgent),
			DesktopUserAgent: getEnvOrDefault("SCRAPER_DESKTOP_USER_AGENT", defaultDesktopUserAgent),
			ShopeeBaseURL:    getEnvOrDefault("SCRAPER_SHOPEE_BASE_URL", "https://shopee.co.id"),
			TokopediaBaseURL: getEnvOrDefault("SCRAPER_TOKOPEDIA_BASE_URL", "https://www.tokopedia.com"),
			FetchTimeout:     getDurationOrDefault("SCRAPER_FETCH_TIMEOUT", 10*time.Second),
			RateLimitMin:     getDurationOrDefault("SCRAPER_RATE_LIMIT_MIN", 0),
			RateLimitMax:     getDurationOrDefault("SCRAPER_RATE_LIMIT_MAX", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", ""),
			Port:     getIntOrDefault("DB_PORT", 5432),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", ""),
			Name:     getEnvOrDefault("DB_NAME", "onedash"),
			MaxConns: int32(getIntOrDefault("DB_MAX_CONNS", 10)),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", ""),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntOrDefault("REDIS_DB", 0),
			CacheTTL: getDurationOrDefault("REDIS_CACHE_TTL", time.Hour),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.FetchTimeout <= 0 {
		return fmt.Errorf("SCRAPER_FETCH_TIMEOUT must be positive")
	}

	if c.Scraper.RateLimitMin > c.Scraper.RateLimitMax {
		return fmt.Errorf("SCRAPER_RATE_LIMIT_MIN cannot be greater than SCRAPER_RATE_LIMIT_MAX")
	}

	if c.Scraper.CrawlerUserAgent == "" || c.Scraper.DesktopUserAgent == "" {
		return fmt.Errorf("scraper user agents cannot be empty")
	}

	return nil
}

// DatabaseEnabled reports whether a keyword database was configured.
// The scraper works without one, falling back to built-in category
// keywords.
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Host != ""
}

// RedisEnabled reports whether a result cache was configured. Caching
// is an optimization, not a correctness requirement.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

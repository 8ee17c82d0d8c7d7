// Package common provides shared utilities for Finsight
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Finsight
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Cache       CacheConfig   `toml:"cache"`
	Auth        AuthConfig    `toml:"auth"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	FMP    FMPConfig    `toml:"fmp"`
	Gemini GeminiConfig `toml:"gemini"`
}

// FMPConfig holds Financial Modeling Prep API configuration
type FMPConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FMPConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 25 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// CacheConfig holds TTL cache configuration per data family
type CacheConfig struct {
	PriceTTL        string `toml:"price_ttl"`
	NewsTTL         string `toml:"news_ttl"`
	FundamentalsTTL string `toml:"fundamentals_ttl"`
	MaxItems        int    `toml:"max_items"`
}

// GetPriceTTL parses the quote cache TTL
func (c *CacheConfig) GetPriceTTL() time.Duration {
	return parseDurationOr(c.PriceTTL, 60*time.Second)
}

// GetNewsTTL parses the news cache TTL
func (c *CacheConfig) GetNewsTTL() time.Duration {
	return parseDurationOr(c.NewsTTL, 5*time.Minute)
}

// GetFundamentalsTTL parses the fundamentals cache TTL
func (c *CacheConfig) GetFundamentalsTTL() time.Duration {
	return parseDurationOr(c.FundamentalsTTL, 30*time.Minute)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// AuthConfig holds API authorization configuration. An empty ActionKey
// disables bearer checks entirely (open mode), an explicit operator
// choice for private deployments.
type AuthConfig struct {
	ActionKey string `toml:"action_key"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Clients: ClientsConfig{
			FMP: FMPConfig{
				BaseURL:   "https://financialmodelingprep.com/api/v3",
				RateLimit: 10,
				Timeout:   "25s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Cache: CacheConfig{
			PriceTTL:        "60s",
			NewsTTL:         "5m",
			FundamentalsTTL: "30m",
			MaxItems:        1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINSIGHT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FINSIGHT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FINSIGHT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FINSIGHT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if origins := os.Getenv("FINSIGHT_CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		config.Server.CORSOrigins = parts
	}

	// API credentials: bare names first (matching provider docs), then
	// the FINSIGHT_-prefixed forms.
	for _, name := range []string{"FMP_API_KEY", "FINSIGHT_FMP_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.FMP.APIKey = v
			break
		}
	}
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "FINSIGHT_GEMINI_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.Gemini.APIKey = v
			break
		}
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		config.Clients.Gemini.Model = v
	}

	for _, name := range []string{"ACTION_KEY", "FINSIGHT_ACTION_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Auth.ActionKey = v
			break
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Config holds all application configuration
// Supports environment variables with sensible defaults
//
// Environment Variables:
// HTTP Configuration:
// - YT_HTTP_TIMEOUT: request timeout in seconds (default: 30)
// - YT_USER_AGENT: User-Agent header sent on every request
// - YT_ACCEPT_LANGUAGE: Accept-Language header sent on every request
// - HTTP_PROXY: proxy endpoint for http:// requests (optional)
// - HTTPS_PROXY: proxy endpoint for https:// requests (optional)
// - YT_PROXY_HEADERS: extra static headers, "Key:Value" comma-separated (optional)
//
// Fetch Configuration:
// - YT_LANGUAGES: default language preference list, comma-separated (default: en)
// - YT_FETCH_CONCURRENCY: parallel video fetch workers (default: 2)
//
// System Configuration:
// - LOG_LEVEL: debug, info, warn or error (default: info)
type Config struct {
	HTTP  HTTPConfig  `json:"http"`
	Fetch FetchConfig `json:"fetch"`
	Log   LogConfig   `json:"log"`
}

// HTTPConfig holds the configuration for the upstream HTTP transport
type HTTPConfig struct {
	Timeout        int               `json:"timeout"`
	UserAgent      string            `json:"user_agent"`
	AcceptLanguage string            `json:"accept_language"`
	HTTPProxy      string            `json:"http_proxy"`
	HTTPSProxy     string            `json:"https_proxy"`
	ProxyHeaders   map[string]string `json:"proxy_headers"`
}

// FetchConfig holds the defaults applied to transcript fetches
type FetchConfig struct {
	Languages   []string `json:"languages"`
	Concurrency int      `json:"concurrency"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `json:"level"`
}

// DefaultUserAgent mirrors a current desktop browser; YouTube serves a
// different page to clients it does not recognize.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

// Option is a function type for configuring Config
type Option func(*Config)

// WithLanguages overrides the default language preference list.
func WithLanguages(codes ...string) Option {
	return func(c *Config) {
		c.Fetch.Languages = codes
	}
}

// WithTimeout overrides the HTTP timeout in seconds.
func WithTimeout(seconds int) Option {
	return func(c *Config) {
		c.HTTP.Timeout = seconds
	}
}

// NewFromEnv creates a new Config instance with values from environment
// variables and options. A .env file in the working directory is loaded
// first when present.
func NewFromEnv(opts ...Option) (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	config := &Config{
		HTTP: HTTPConfig{
			Timeout:        getEnvInt("YT_HTTP_TIMEOUT", 30),
			UserAgent:      getEnvString("YT_USER_AGENT", DefaultUserAgent),
			AcceptLanguage: getEnvString("YT_ACCEPT_LANGUAGE", "en-US"),
			HTTPProxy:      getEnvString("HTTP_PROXY", ""),
			HTTPSProxy:     getEnvString("HTTPS_PROXY", ""),
			ProxyHeaders:   parseHeaderList(getEnvString("YT_PROXY_HEADERS", "")),
		},
		Fetch: FetchConfig{
			Languages:   splitList(getEnvString("YT_LANGUAGES", "en")),
			Concurrency: getEnvInt("YT_FETCH_CONCURRENCY", 2),
		},
		Log: LogConfig{
			Level: getEnvString("LOG_LEVEL", "info"),
		},
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("YT_HTTP_TIMEOUT must be positive, got %d", c.HTTP.Timeout)
	}
	if c.Fetch.Concurrency <= 0 {
		return fmt.Errorf("YT_FETCH_CONCURRENCY must be positive, got %d", c.Fetch.Concurrency)
	}
	if len(c.Fetch.Languages) == 0 {
		return fmt.Errorf("YT_LANGUAGES must name at least one language code")
	}
	for _, code := range c.Fetch.Languages {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("invalid language code %q: %w", code, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, trimming blanks.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	ret := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ret = append(ret, p)
		}
	}
	return ret
}

// parseHeaderList parses "Key:Value,Key2:Value2" into a header map.
func parseHeaderList(value string) map[string]string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		key, val, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key != "" && val != "" {
			headers[key] = val
		}
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source modes for the transaction collection.
const (
	SourceSynthetic = "synthetic"
	SourceRemote    = "remote"
)

type Config struct {
	// HTTP server
	Port string

	// Transaction source
	SourceMode          string
	RemoteURL           string
	RemoteUsername      string
	RemotePassword      string
	SyntheticCount      int
	SyntheticWindowDays int

	// Login + session
	AuthUsername  string
	AuthPassword  string
	SessionSecret string
	SessionTTL    time.Duration

	// Remote fetch cache
	CacheTTL time.Duration

	// Audit feed (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Load reads configuration from the environment. A local .env file is
// honored when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8081"),

		SourceMode:          getEnv("SOURCE_MODE", SourceSynthetic),
		RemoteURL:           getEnv("REMOTE_URL", ""),
		RemoteUsername:      getEnv("REMOTE_USERNAME", "user"),
		RemotePassword:      getEnv("REMOTE_PASSWORD", "password"),
		SyntheticCount:      getEnvInt("SYNTHETIC_COUNT", 50),
		SyntheticWindowDays: getEnvInt("SYNTHETIC_WINDOW_DAYS", 60),

		AuthUsername:  getEnv("AUTH_USERNAME", "user"),
		AuthPassword:  getEnv("AUTH_PASSWORD", "password"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		CacheTTL: getEnvDuration("CACHE_TTL", 30*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "portal"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transaction_audit"),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.SourceMode {
	case SourceSynthetic, SourceRemote:
	default:
		errors = append(errors, fmt.Sprintf("invalid source mode '%s': must be one of [%s %s]", c.SourceMode, SourceSynthetic, SourceRemote))
	}

	if c.SourceMode == SourceRemote {
		if c.RemoteURL == "" {
			errors = append(errors, "remote URL is required when using the remote source")
		} else if parsed, err := url.Parse(c.RemoteURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid remote URL '%s': %v", c.RemoteURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid remote URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
	}

	if c.SyntheticCount < 1 {
		errors = append(errors, fmt.Sprintf("invalid synthetic count %d: must be at least 1", c.SyntheticCount))
	}
	if c.SyntheticWindowDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid synthetic window %d: must be at least 1 day", c.SyntheticWindowDays))
	}

	if c.AuthUsername == "" || c.AuthPassword == "" {
		errors = append(errors, "login username and password must not be empty")
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	} else if c.SessionTTL > 7*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at most 7 days", c.SessionTTL))
	}

	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

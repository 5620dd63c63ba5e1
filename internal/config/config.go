package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config is built once at startup and passed into the components that need
// it; nothing else reads the process environment.
type Config struct {
	// HTTP server
	Port string

	// Ledger store
	SQLiteDBPath string

	// Reasoning service. APIKey may be empty at startup: the service still
	// boots, and chat requests answer 503 until a key is configured.
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Response language named in the rendered brief's instruction block.
	ResponseLanguage string

	// HistoryWindow bounds how many prior turns go into the prompt.
	HistoryWindow int

	// AMQP audit events (optional; disabled when URL is empty)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8001"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/digicfo.db"),

		LLMBaseURL: getEnv("LLM_BASE_URL", "https://api.anthropic.com"),
		LLMAPIKey:  getEnv("LLM_API_KEY", ""),
		LLMModel:   getEnv("LLM_MODEL", "claude-sonnet-4-5-20250929"),

		ResponseLanguage: getEnv("RESPONSE_LANGUAGE", "Spanish"),
		HistoryWindow:    getEnvInt("HISTORY_WINDOW", 6),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "digicfo"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "chat_events"),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}

	if parsed, err := url.Parse(c.LLMBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid LLM base URL '%s': %v", c.LLMBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid LLM base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.LLMModel == "" {
		errors = append(errors, "LLM model name cannot be empty")
	}

	if c.HistoryWindow < 1 || c.HistoryWindow > 50 {
		errors = append(errors, fmt.Sprintf("invalid history window %d: must be between 1 and 50", c.HistoryWindow))
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

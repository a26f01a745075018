package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Webhook    WebhookConfig
	Redis      RedisConfig
	Delivery   DeliveryConfig
	ConfigPath string
}

type ServerConfig struct {
	Port     int
	LogLevel string
}

func (c *ServerConfig) Addr() string {
	return "0.0.0.0:" + strconv.Itoa(c.Port)
}

// WebhookConfig points at the single incoming-webhook endpoint messages are posted to.
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DeliveryConfig controls how long relayed deliveries stay queryable.
type DeliveryConfig struct {
	TTL time.Duration
}

func LoadFromEnv() (*Config, error) {
	serverPort, err := getEnvOrDefaultInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}

	redisDB, err := getEnvOrDefaultInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	webhookTimeout, err := getEnvOrDefaultDuration("WEBHOOK_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	deliveryTTL, err := getEnvOrDefaultDuration("DELIVERY_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     serverPort,
			LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Webhook: WebhookConfig{
			URL:     os.Getenv("WEBHOOK_URL"),
			Timeout: webhookTimeout,
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Delivery: DeliveryConfig{
			TTL: deliveryTTL,
		},
		ConfigPath: getEnvOrDefault("CONFIG_PATH", "/etc/slackhook/config.yaml"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyFileConfig applies settings from FileConfig if env variables are not set.
// Env variables have priority over file config.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if os.Getenv("WEBHOOK_TIMEOUT") == "" && fc.Webhook.Timeout != "" {
		if d, err := time.ParseDuration(fc.Webhook.Timeout); err == nil && d > 0 {
			c.Webhook.Timeout = d
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Webhook.URL == "" {
		return fmt.Errorf("WEBHOOK_URL is required")
	}
	if err := ValidateWebhookURL(c.Webhook.URL); err != nil {
		return fmt.Errorf("WEBHOOK_URL: %w", err)
	}
	if c.Webhook.Timeout <= 0 {
		return fmt.Errorf("WEBHOOK_TIMEOUT must be positive, got %s", c.Webhook.Timeout)
	}
	if c.Delivery.TTL < time.Minute {
		return fmt.Errorf("DELIVERY_TTL must be at least 1m, got %s", c.Delivery.TTL)
	}
	return nil
}

// ValidateWebhookURL requires an absolute http(s) URL.
func ValidateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return i, nil
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return d, nil
}

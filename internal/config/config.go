package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the back-office service.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	Mailer      MailerConfig      `yaml:"mailer"`
	Panel       PanelConfig       `yaml:"panel"`
	Invitations InvitationsConfig `yaml:"invitations"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// RedisConfig holds Redis connection settings. Redis backs per-actor
// session state (the selected active business).
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MailerConfig holds SES mail transport settings.
type MailerConfig struct {
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
	SendTimeoutSec int    `yaml:"send_timeout_seconds"`
}

// SendTimeout returns the bounded mail-send timeout as a duration.
// A timed-out send is treated as a delivery failure.
func (c MailerConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSec) * time.Second
}

// PanelConfig holds URLs for the owner panel that outbound emails and
// redirects point at.
type PanelConfig struct {
	BaseURL           string `yaml:"base_url"`
	SelectBusinessURL string `yaml:"select_business_url"`
}

// InvitationsConfig holds manager-invitation settings.
type InvitationsConfig struct {
	ExpiryDays int `yaml:"expiry_days"`
}

// Load reads and parses the configuration file, applying environment
// overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return &cfg, nil
}

// LoadEnv loads a .env file if present. Missing files are not an error so
// production containers can rely on real environment variables.
func LoadEnv() {
	_ = godotenv.Load()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Mailer.Region == "" {
		c.Mailer.Region = "us-west-2"
	}
	if c.Mailer.SendTimeoutSec == 0 {
		c.Mailer.SendTimeoutSec = 15
	}
	if c.Panel.BaseURL == "" {
		c.Panel.BaseURL = "http://localhost:5173"
	}
	if c.Panel.SelectBusinessURL == "" {
		c.Panel.SelectBusinessURL = c.Panel.BaseURL + "/select-business"
	}
	if c.Invitations.ExpiryDays == 0 {
		c.Invitations.ExpiryDays = 7
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		c.Mailer.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		c.Mailer.SecretKey = v
	}
}

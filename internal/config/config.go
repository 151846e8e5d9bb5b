package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the publish tool configuration loaded from files and
// environment variables. The library itself takes the token
// programmatically; this config only feeds the CLI tool.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	Token          string `mapstructure:"qstash_token"`
	BaseURL        string `mapstructure:"qstash_url"`
	MessagesFile   string `mapstructure:"messages_file"`
	TimeoutSeconds int64  `mapstructure:"http_timeout_seconds"`

	LedgerType           string `mapstructure:"ledger_type"`
	LedgerPath           string `mapstructure:"ledger_path"`
	LedgerTTLSeconds     int64  `mapstructure:"ledger_ttl_seconds"`
	LedgerCleanupSeconds int64  `mapstructure:"ledger_cleanup_interval_seconds"`

	Timeout       time.Duration `mapstructure:"-"`
	LedgerTTL     time.Duration `mapstructure:"-"`
	LedgerCleanup time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	// Every key needs a default so AutomaticEnv can resolve it.
	v.SetDefault("app_name", "qstash-publish")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("qstash_token", "")
	v.SetDefault("qstash_url", "")
	v.SetDefault("messages_file", "./configs/messages.yaml")
	v.SetDefault("http_timeout_seconds", 10)
	v.SetDefault("ledger_type", "bbolt")
	v.SetDefault("ledger_path", "./data/ledger.db")
	v.SetDefault("ledger_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("ledger_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("qstash_token is required (set QSTASH_TOKEN)")
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if cfg.LedgerTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid ledger_ttl_seconds (must be positive seconds)")
	}
	if cfg.LedgerCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid ledger_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.LedgerTTL = time.Duration(cfg.LedgerTTLSeconds) * time.Second
	cfg.LedgerCleanup = time.Duration(cfg.LedgerCleanupSeconds) * time.Second

	return &cfg, nil
}

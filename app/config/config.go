// Package config loads application settings from an optional JSON file,
// fills defaults and applies environment overrides, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// DefaultPath is read when no explicit config file is given.
const DefaultPath = "config/config.json"

type AppConfig struct {
	Addr string `json:"addr"`
	// BaseURL, when set, is used for absolute links instead of the request host.
	BaseURL            string `json:"base_url"`
	PageSize           int    `json:"page_size"`
	RateLimitPerMinute int    `json:"rate_limit_per_minute"`
}

type StorageConfig struct {
	Driver string `json:"driver"`
	Path   string `json:"path"`
	DSN    string `json:"dsn"`
}

type MailConfig struct {
	Backend  string `json:"backend"`
	From     string `json:"from"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	TLS      bool   `json:"tls"`
}

type LogConfig struct {
	Level      string `json:"level"`
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

// Config holds every runtime setting of the blog.
type Config struct {
	App     AppConfig     `json:"app"`
	Storage StorageConfig `json:"storage"`
	Mail    MailConfig    `json:"smtp"`
	Log     LogConfig     `json:"log"`
}

// Load reads path (missing files are ignored), then applies defaults and
// environment overrides.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		path = DefaultPath
	}
	if err := loadJSONConfig(path, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadJSONConfig(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Addr == "" {
		cfg.App.Addr = ":8080"
	}
	if cfg.App.PageSize <= 0 {
		cfg.App.PageSize = 2
	}
	if cfg.App.RateLimitPerMinute <= 0 {
		cfg.App.RateLimitPerMinute = 30
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "badger"
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Driver {
		case "sqlite":
			cfg.Storage.Path = "data/blog.db"
		default:
			cfg.Storage.Path = "data/badger"
		}
	}
	if cfg.Mail.Backend == "" {
		cfg.Mail.Backend = "console"
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = "a@a.com"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 25
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func applyEnvOverrides(cfg *Config) error {
	setString(&cfg.App.Addr, "BLOG_ADDR")
	setString(&cfg.App.BaseURL, "BLOG_BASE_URL")
	setString(&cfg.Storage.Driver, "BLOG_STORAGE")
	setString(&cfg.Storage.Path, "BLOG_DB_PATH")
	setString(&cfg.Storage.DSN, "BLOG_DSN")
	setString(&cfg.Mail.Backend, "BLOG_MAIL_BACKEND")
	setString(&cfg.Mail.From, "BLOG_MAIL_FROM")
	setString(&cfg.Mail.Host, "SMTP_HOST")
	setString(&cfg.Mail.Username, "SMTP_USERNAME")
	setString(&cfg.Mail.Password, "SMTP_PASSWORD")
	setString(&cfg.Log.Level, "BLOG_LOG_LEVEL")
	setString(&cfg.Log.Path, "BLOG_LOG_PATH")

	for key, dst := range map[string]*int{
		"BLOG_PAGE_SIZE":  &cfg.App.PageSize,
		"BLOG_RATE_LIMIT": &cfg.App.RateLimitPerMinute,
		"SMTP_PORT":       &cfg.Mail.Port,
	} {
		if err := setInt(dst, key); err != nil {
			return err
		}
	}
	if v, ok := os.LookupEnv("SMTP_TLS"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("SMTP_TLS: %w", err)
		}
		cfg.Mail.TLS = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if n > 0 {
		*dst = n
	}
	return nil
}

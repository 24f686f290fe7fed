// Package config loads server and CLI settings from defaults, an optional
// JSON file, a .env file and the process environment, in that order.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	apperr "Airduct/internal/errors"
	"Airduct/internal/logging"
)

// Config is the main application configuration
type Config struct {
	Server  ServerConfig   `json:"server"`
	Sizing  SizingConfig   `json:"sizing"`
	Logging logging.Config `json:"logging"`
}

type ServerConfig struct {
	Addr    string `json:"addr"`
	TLSCert string `json:"tls_cert,omitempty"`
	TLSKey  string `json:"tls_key,omitempty"`

	// RateLimit is requests per second per client IP, RateBurst the bucket size.
	RateLimit float64 `json:"rate_limit"`
	RateBurst int     `json:"rate_burst"`

	MaxUploadMB int `json:"max_upload_mb"`

	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

type SizingConfig struct {
	// Workers bounds parallel segment sizing in batch requests.
	Workers       int    `json:"workers"`
	DefaultPolicy string `json:"default_policy"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                   ":8080",
			RateLimit:              5,
			RateBurst:              10,
			MaxUploadMB:            10,
			ShutdownTimeoutSeconds: 5,
		},
		Sizing: SizingConfig{
			Workers:       4,
			DefaultPolicy: "narrow",
		},
		Logging: logging.DefaultConfig(),
	}
}

// MaxUploadBytes returns the multipart limit for schedule uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// UseTLS reports whether both certificate and key are configured.
func (c *Config) UseTLS() bool {
	return c.Server.TLSCert != "" && c.Server.TLSKey != ""
}

// Load builds the configuration. path may be empty; a missing file or a
// missing .env is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, apperr.Config("parse "+path, err)
			}
		case !os.IsNotExist(err):
			return nil, apperr.Config("read "+path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, apperr.Config("load .env", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "AIRDUCT_ADDR")
	setString(&c.Server.TLSCert, "AIRDUCT_TLS_CERT")
	setString(&c.Server.TLSKey, "AIRDUCT_TLS_KEY")
	setString(&c.Logging.Level, "AIRDUCT_LOG_LEVEL")
	setString(&c.Logging.Format, "AIRDUCT_LOG_FORMAT")
	setString(&c.Sizing.DefaultPolicy, "AIRDUCT_DEFAULT_POLICY")

	if err := setFloat(&c.Server.RateLimit, "AIRDUCT_RATE_LIMIT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.RateBurst, "AIRDUCT_RATE_BURST"); err != nil {
		return err
	}
	if err := setInt(&c.Sizing.Workers, "AIRDUCT_WORKERS"); err != nil {
		return err
	}
	return setInt(&c.Server.MaxUploadMB, "AIRDUCT_MAX_UPLOAD_MB")
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return apperr.Config("server address is empty", nil)
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return apperr.Config("tls cert and key must be set together", nil)
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return apperr.Config("rate limit and burst must be positive", nil)
	}
	if c.Sizing.Workers <= 0 {
		return apperr.Config("workers must be positive", nil)
	}
	if c.Server.MaxUploadMB <= 0 {
		return apperr.Config("max upload size must be positive", nil)
	}
	switch c.Sizing.DefaultPolicy {
	case "narrow", "spread":
	default:
		return apperr.Config("unknown default policy "+strconv.Quote(c.Sizing.DefaultPolicy), nil)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return apperr.Config(key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return apperr.Config(key, err)
	}
	*dst = f
	return nil
}

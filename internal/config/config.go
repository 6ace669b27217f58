// Package config reads shipdesk settings from the environment and an optional .env file.
package config

import (
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	API     APIConfig
	Log     LogConfig
	Metrics MetricsConfig
	Session SessionConfig
}

type AppConfig struct {
	Env  string
	Name string
}

func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// APIConfig points at the logistics backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Enabled bool
}

type SessionConfig struct {
	CookieSecure bool
	CSRFKey      []byte
}

// CSRFKeyLen is the decoded length of CSRF_KEY.
const CSRFKeyLen = 32

const devCSRFKey = "shipdesk-development-csrf-key-32"

var ErrMissingCSRFKey = errors.New("CSRF_KEY must be 64 hex characters (32 bytes) outside development")

// Load builds the configuration. Environment variables win over .env values.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "shipdesk"),
		},
		HTTP: HTTPConfig{
			Addr:         getString(v, "CLIENT_ADDR", ":3000"),
			ReadTimeout:  getDuration(v, "READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration(v, "WRITE_TIMEOUT", 20*time.Second),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8080"), "/"),
			Timeout: getDuration(v, "API_TIMEOUT", 15*time.Second),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
		Session: SessionConfig{
			CookieSecure: getBool(v, "COOKIE_SECURE", false),
		},
	}

	key, err := hex.DecodeString(getString(v, "CSRF_KEY", ""))
	if err != nil || len(key) != CSRFKeyLen {
		if !cfg.App.IsDevelopment() {
			return nil, ErrMissingCSRFKey
		}
		key = []byte(devCSRFKey)
	}
	cfg.Session.CSRFKey = key
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := strings.TrimSpace(v.GetString(key)); s != "" {
			return s
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		if d := v.GetDuration(key); d > 0 {
			return d
		}
	}
	return def
}

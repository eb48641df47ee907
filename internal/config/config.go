// Package config loads application configuration from environment
// variables once at startup. Required values (ports, database, signing
// secrets) are enforced with must(): a missing secret kills the process
// at boot instead of failing on the first login.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values.
type Config struct {
	Env      string // application environment (dev/test/prod)
	Port     string // HTTP port to listen on
	LogLevel string // zap level: debug, info, warn, error

	DBUser string
	DBPass string // optional, empty allowed
	DBHost string
	DBPort string
	DBName string

	AccessSecret   string // signs access tokens (and password-reset tokens)
	RefreshSecret  string // signs refresh tokens; must differ from AccessSecret
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	ResetTTLMin    int    // password-reset token time-to-live in minutes
	BcryptCost     int    // bcrypt cost for password hashing

	FrontendURL string // base URL for password-reset links

	Mail MailConfig
}

// MailConfig selects and configures the outbound mail provider.
type MailConfig struct {
	Provider string // "smtp" or "sendgrid"
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	APIKey   string // sendgrid only
}

// Load reads configuration from the environment. Missing required
// variables are fatal.
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		AccessSecret:   must("JWT_ACCESS_SECRET"),
		RefreshSecret:  must("JWT_REFRESH_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		ResetTTLMin:    envInt("RESET_TOKEN_TTL_MIN", 60),
		BcryptCost:     mustInt("BCRYPT_COST"),
		FrontendURL:    envStr("FRONTEND_URL", "http://localhost:3000"),
		Mail: MailConfig{
			Provider: envStr("MAIL_PROVIDER", "smtp"),
			Host:     os.Getenv("MAIL_HOST"),
			Port:     envStr("MAIL_PORT", "587"),
			Username: os.Getenv("MAIL_USERNAME"),
			Password: os.Getenv("MAIL_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
			FromName: envStr("MAIL_FROM_NAME", "Orderstack"),
			APIKey:   os.Getenv("SENDGRID_API_KEY"),
		},
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return cfg
}

// AccessTTL returns the access token lifetime as a duration.
func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMin) * time.Minute
}

// RefreshTTL returns the refresh token lifetime as a duration.
func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLDays) * 24 * time.Hour
}

// ResetTTL returns the password-reset token lifetime as a duration.
func (c Config) ResetTTL() time.Duration {
	return time.Duration(c.ResetTTLMin) * time.Minute
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() plus integer conversion.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// Optional-value helpers shared by the redis, rate-limit and cache loaders.

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}

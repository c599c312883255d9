package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	HTTPPort       string
	LogLevel       string
	JWTSecret      string
	JWTExpiresIn   time.Duration
	AdminEmail     string
	AdminPassword  string // empty means generate one at seed time
	MaxUploadBytes int64
}

const (
	defaultPort      = "8080"
	defaultTTL       = 24 * time.Hour
	defaultAdmin     = "admin@trustaes.local"
	defaultMaxUpload = 32 << 20
	defaultLogLevel  = "info"
)

var ErrMissing = errors.New("config: required value missing")

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Config{
		DatabaseURL:    getenv("DATABASE_URL"),
		HTTPPort:       getenv("HTTP_PORT"),
		LogLevel:       strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL"))),
		JWTSecret:      getenv("JWT_SECRET"),
		JWTExpiresIn:   defaultTTL,
		AdminEmail:     strings.ToLower(strings.TrimSpace(getenv("ADMIN_EMAIL"))),
		AdminPassword:  getenv("ADMIN_PASSWORD"),
		MaxUploadBytes: defaultMaxUpload,
	}
	if c.HTTPPort == "" {
		c.HTTPPort = defaultPort
	}
	if c.AdminEmail == "" {
		c.AdminEmail = defaultAdmin
	}
	switch c.LogLevel {
	case "":
		c.LogLevel = defaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("config: LOG_LEVEL %q not one of debug|info|warn|error", c.LogLevel)
	}
	if s := getenv("JWT_EXPIRES_IN"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: JWT_EXPIRES_IN %q is not a positive duration", s)
		}
		c.JWTExpiresIn = d
	}
	if s := getenv("MAX_UPLOAD_BYTES"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: MAX_UPLOAD_BYTES %q is not a positive integer", s)
		}
		c.MaxUploadBytes = n
	}
	if c.JWTSecret == "" {
		return Config{}, fmt.Errorf("%w: JWT_SECRET", ErrMissing)
	}
	return c, nil
}

// RequireDatabase reports whether DATABASE_URL is set.
func (c Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL", ErrMissing)
	}
	return nil
}

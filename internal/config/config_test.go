package config

import (
	"errors"
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(env(map[string]string{"JWT_SECRET": "s3cret"}))
	if err != nil {
		t.Fatal(err)
	}
	if c.HTTPPort != "8080" || c.LogLevel != "info" || c.JWTExpiresIn != 24*time.Hour {
		t.Errorf("defaults = %+v", c)
	}
	if c.AdminEmail != "admin@trustaes.local" || c.MaxUploadBytes != 32<<20 {
		t.Errorf("defaults = %+v", c)
	}
	if err := c.RequireDatabase(); !errors.Is(err, ErrMissing) {
		t.Errorf("RequireDatabase = %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"JWT_SECRET":       "x",
		"DATABASE_URL":     "postgres://localhost/trustaes",
		"HTTP_PORT":        "9000",
		"LOG_LEVEL":        "DEBUG",
		"JWT_EXPIRES_IN":   "90m",
		"ADMIN_EMAIL":      " Root@Example.COM ",
		"MAX_UPLOAD_BYTES": "1024",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if c.HTTPPort != "9000" || c.LogLevel != "debug" || c.JWTExpiresIn != 90*time.Minute {
		t.Errorf("got %+v", c)
	}
	if c.AdminEmail != "root@example.com" || c.MaxUploadBytes != 1024 {
		t.Errorf("got %+v", c)
	}
	if err := c.RequireDatabase(); err != nil {
		t.Error(err)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []map[string]string{
		{},
		{"JWT_SECRET": "x", "LOG_LEVEL": "verbose"},
		{"JWT_SECRET": "x", "JWT_EXPIRES_IN": "tomorrow"},
		{"JWT_SECRET": "x", "JWT_EXPIRES_IN": "-1h"},
		{"JWT_SECRET": "x", "MAX_UPLOAD_BYTES": "lots"},
	}
	for _, m := range tests {
		if _, err := FromEnv(env(m)); err == nil {
			t.Errorf("FromEnv(%v) accepted", m)
		}
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether outgoing mail can actually be sent.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Username != "" && s.Password != ""
}

type StorageConfig struct {
	Driver  string
	DataDir string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Config struct {
	Port       string
	Env        string
	JWTSecret  string
	AdminEmail string
	SMTP       SMTPConfig
	Storage    StorageConfig
	DB         DBConfig
	RedisAddr  string
	Timezone   string
	Location   *time.Location
}

// Load reads the full configuration from the environment. JWT_SECRET is
// mandatory; everything else falls back to an explicit default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	tz := getenv("SCHEDULE_TZ", "Europe/Paris")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TZ %q: %w", tz, err)
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		smtpPort = p
	}

	cfg := &Config{
		Port:       getenv("PORT", "3001"),
		Env:        getenv("APP_ENV", "development"),
		JWTSecret:  secret,
		AdminEmail: os.Getenv("ADMIN_EMAIL"),
		SMTP: SMTPConfig{
			Host:     getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			Username: os.Getenv("EMAIL_USER"),
			Password: os.Getenv("EMAIL_PASS"),
			From:     getenv("EMAIL_FROM", os.Getenv("EMAIL_USER")),
		},
		Storage: StorageConfig{
			Driver:  getenv("STORAGE_DRIVER", DriverFile),
			DataDir: getenv("DATA_DIR", "data"),
		},
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getenv("DB_PORT", "5432"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		RedisAddr: os.Getenv("REDIS_ADDR"),
		Timezone:  tz,
		Location:  loc,
	}

	if cfg.Storage.Driver != DriverFile && cfg.Storage.Driver != DriverPostgres {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

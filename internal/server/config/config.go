// Package config handles configuration for the server component,
// including defaults and an environment-variable overlay.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the portfolio server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP endpoint.
//   - DBHost/DBPort/DBUser/DBPassword/DBName/DBSSLMode: PostgreSQL settings (pgx).
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     test defaults in prod.
//   - SessionValidityDuration: lifetime of a session token and its cookie.
//   - AWSAccessKeyID / AWSSecretAccessKey: optional static S3 credentials;
//     when empty the SDK's default (IAM-style) chain is used.
//   - S3Region / S3Bucket: object storage settings.
//   - MaxUploadSize: hard cap for a single uploaded file, in bytes.
//   - Debug: verbose logging.
type Config struct {
	ListenAddr              string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSSLMode               string
	SecretKey               string
	SessionValidityDuration time.Duration
	AWSAccessKeyID          string
	AWSSecretAccessKey      string
	S3Region                string
	S3Bucket                string
	MaxUploadSize           int64
	Debug                   bool
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":5000"
	c.DBHost = "localhost"
	c.DBPort = "5432"
	c.DBUser = "postgres"
	c.DBPassword = "postgres"
	c.DBName = "portfolio"
	c.DBSSLMode = "disable"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 24 * time.Hour
	c.S3Region = "us-east-1"
	c.S3Bucket = ""
	c.MaxUploadSize = 16777216
	c.Debug = false
}

// LoadConfig builds a Config by applying defaults and then overlaying values
// from the environment (an optional .env file is read first).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}

// DatabaseDSN assembles the pgx connection string from the DB_* parts.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
func parseEnv(c *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		c.ListenAddr = ":" + v
	}

	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBSSLMode = getEnv("DB_SSLMODE", c.DBSSLMode)

	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.SessionValidityDuration = getDurationEnv("SESSION_TTL", c.SessionValidityDuration)

	c.AWSAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", c.AWSAccessKeyID)
	c.AWSSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", c.AWSSecretAccessKey)
	c.S3Region = getEnv("AWS_REGION", c.S3Region)
	c.S3Bucket = getEnv("S3_BUCKET", c.S3Bucket)

	c.MaxUploadSize = getInt64Env("UPLOAD_MAX_SIZE", c.MaxUploadSize)
	c.Debug = getBoolEnv("DEBUG", c.Debug)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Cache  CacheConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
	Host string
}

// UploadConfig holds upload handling limits
type UploadConfig struct {
	MaxBytes int64
}

// CacheConfig holds loader memoization settings
type CacheConfig struct {
	Capacity uint64
	TTL      time.Duration
}

// Load reads configuration from environment variables. Every setting has a
// default; the server starts with no environment at all.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
			Host: getEnvOrDefault("HOST", ""),
		},
		Upload: UploadConfig{
			MaxBytes: getEnvInt64OrDefault("UPLOAD_MAX_BYTES", 50*1024*1024),
		},
		Cache: CacheConfig{
			Capacity: uint64(getEnvIntOrDefault("CACHE_CAPACITY", 16)),
			TTL:      getEnvDurationOrDefault("CACHE_TTL", 30*time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Helper functions for environment variables and logging setup

// getEnvOrDefault returns the value of an environment variable or a default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationOrDefault parses a duration from an environment variable or returns the default
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err == nil && duration > 0 {
			return duration
		}
		logrus.Warnf("Invalid duration in %s: %q, using default: %v", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvInt parses a positive integer from an environment variable or returns the default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil && parsed > 0 {
			return parsed
		}
		logrus.Warnf("Invalid integer in %s: %q, using default: %v", key, value, defaultValue)
	}
	return defaultValue
}

// setupLogging configures the global logrus logger from LOG_FORMAT and LOG_LEVEL
func setupLogging() {
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL: %v, using info", err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// SetupEnv loads environment variables from the .env file. A missing file is
// not fatal: deployments usually inject the variables directly.
func SetupEnv() {
	if err := godotenv.Load(".env"); err != nil {
		logrus.WithError(err).Warn("No .env file loaded, using process environment")
	}
}

// Config returns the environment variable or defaults to empty string
func Config(key string) string {
	return os.Getenv(key)
}

// ConfigOrDefault returns the environment variable or def when it is unset.
func ConfigOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Duration parses key as a Go duration ("5m", "168h") or a number of seconds.
func Duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	logrus.WithField("key", key).Warnf("Invalid duration %q, using %s", v, def)
	return def
}

// Bool reports whether key is set to a true-like value.
func Bool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

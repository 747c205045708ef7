package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	ErrInvalidThreshold = errors.New("fuzzy thresholds must be between 0 and 100")
	ErrInvalidMaxItems  = errors.New("max items must be positive")
)

type Config struct {
	Search SearchConfig
	HTTP   HTTPConfig
	Filter FilterConfig
	Log    LogConfig
}

type SearchConfig struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	MaxItems  int
}

type HTTPConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerMinute int
}

type FilterConfig struct {
	TitleThreshold       int
	DescriptionThreshold int
	ExcludedThreshold    int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Search: SearchConfig{
			BaseURL:   getEnvOrDefault("WALLASEEK_BASE_URL", "https://api.wallapop.com/api/v3/search"),
			Latitude:  getEnvFloatOrDefault("WALLASEEK_LATITUDE", 43.318611),
			Longitude: getEnvFloatOrDefault("WALLASEEK_LONGITUDE", 11.330556),
			MaxItems:  getEnvIntOrDefault("WALLASEEK_MAX_ITEMS", 100),
		},
		HTTP: HTTPConfig{
			Timeout:           time.Duration(getEnvIntOrDefault("WALLASEEK_HTTP_TIMEOUT_SEC", 15)) * time.Second,
			MaxRetries:        getEnvIntOrDefault("WALLASEEK_HTTP_MAX_RETRIES", 3),
			RequestsPerMinute: getEnvIntOrDefault("WALLASEEK_REQUESTS_PER_MINUTE", 30),
		},
		Filter: FilterConfig{
			TitleThreshold:       getEnvIntOrDefault("WALLASEEK_TITLE_THRESHOLD", 75),
			DescriptionThreshold: getEnvIntOrDefault("WALLASEEK_DESCRIPTION_THRESHOLD", 65),
			ExcludedThreshold:    getEnvIntOrDefault("WALLASEEK_EXCLUDED_THRESHOLD", 85),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	for _, t := range []int{c.Filter.TitleThreshold, c.Filter.DescriptionThreshold, c.Filter.ExcludedThreshold} {
		if t < 0 || t > 100 {
			return ErrInvalidThreshold
		}
	}
	if c.Search.MaxItems <= 0 {
		return ErrInvalidMaxItems
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

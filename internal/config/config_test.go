package config

import (
	"os"
	"testing"
	"time"
)

var configEnvVars = []string{
	"WALLASEEK_BASE_URL",
	"WALLASEEK_LATITUDE",
	"WALLASEEK_LONGITUDE",
	"WALLASEEK_MAX_ITEMS",
	"WALLASEEK_HTTP_TIMEOUT_SEC",
	"WALLASEEK_HTTP_MAX_RETRIES",
	"WALLASEEK_REQUESTS_PER_MINUTE",
	"WALLASEEK_TITLE_THRESHOLD",
	"WALLASEEK_DESCRIPTION_THRESHOLD",
	"WALLASEEK_EXCLUDED_THRESHOLD",
	"LOG_LEVEL",
}

func clearEnvVars() {
	for _, k := range configEnvVars {
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Search.BaseURL != "https://api.wallapop.com/api/v3/search" {
		t.Errorf("BaseURL = %q", cfg.Search.BaseURL)
	}
	if cfg.Search.MaxItems != 100 {
		t.Errorf("MaxItems = %d, want 100", cfg.Search.MaxItems)
	}
	if cfg.HTTP.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.HTTP.Timeout)
	}
	if cfg.Filter.TitleThreshold != 75 || cfg.Filter.DescriptionThreshold != 65 || cfg.Filter.ExcludedThreshold != 85 {
		t.Errorf("thresholds = %+v, want 75/65/85", cfg.Filter)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("WALLASEEK_BASE_URL", "https://api.example.com/search")
	os.Setenv("WALLASEEK_MAX_ITEMS", "25")
	os.Setenv("WALLASEEK_TITLE_THRESHOLD", "90")
	os.Setenv("WALLASEEK_LATITUDE", "41.9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Search.BaseURL != "https://api.example.com/search" {
		t.Errorf("BaseURL = %q", cfg.Search.BaseURL)
	}
	if cfg.Search.MaxItems != 25 {
		t.Errorf("MaxItems = %d, want 25", cfg.Search.MaxItems)
	}
	if cfg.Filter.TitleThreshold != 90 {
		t.Errorf("TitleThreshold = %d, want 90", cfg.Filter.TitleThreshold)
	}
	if cfg.Search.Latitude != 41.9 {
		t.Errorf("Latitude = %v, want 41.9", cfg.Search.Latitude)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
	}{
		{
			name:    "threshold over 100",
			envVars: map[string]string{"WALLASEEK_TITLE_THRESHOLD": "150"},
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "negative threshold",
			envVars: map[string]string{"WALLASEEK_EXCLUDED_THRESHOLD": "-5"},
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "non-positive max items",
			envVars: map[string]string{"WALLASEEK_MAX_ITEMS": "0"},
			wantErr: ErrInvalidMaxItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()
			defer clearEnvVars()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			if _, err := Load(); err != tt.wantErr {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

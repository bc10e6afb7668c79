package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		setEnv       bool
		want         string
	}{
		{"environment variable set", "TEST_KEY_1", "default", "custom", true, "custom"},
		{"environment variable not set", "TEST_KEY_2", "default", "", false, "default"},
		{"empty environment variable", "TEST_KEY_3", "default", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}
			assert.Equal(t, tt.want, getEnvOrDefault(tt.key, tt.defaultValue))
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "REDIS_TTL", "IMPORT_MAX_ROWS", "IMPORT_MAX_FILE_SIZE", "IMPORT_RATE_LIMIT", "PHONE_STRUCTURAL_FALLBACK", "MONGODB_CONTACT_COLLECTION", "TRACING_SAMPLE_RATIO"} {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			defer os.Setenv(key, value)
		}
	}

	require.NoError(t, LoadConfig())
	assert.Equal(t, 8080, AppConfig.Port)
	assert.Equal(t, 60*time.Minute, AppConfig.RedisTTL)
	assert.Equal(t, 5000, AppConfig.ImportMaxRows)
	assert.Equal(t, int64(10<<20), AppConfig.ImportMaxFileSize)
	assert.Equal(t, 10, AppConfig.ImportRateLimit)
	assert.True(t, AppConfig.PhoneStructuralFallback)
	assert.Equal(t, "contacts", AppConfig.ContactCollection)
	assert.Equal(t, "import_configs", AppConfig.ImportConfigCollection)
	assert.Equal(t, 1.0, AppConfig.TracingSampleRatio)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("IMPORT_MAX_ROWS", "100")
	t.Setenv("PHONE_STRUCTURAL_FALLBACK", "false")
	t.Setenv("ADMIN_GROUP", "ops")

	require.NoError(t, LoadConfig())
	assert.Equal(t, 9090, AppConfig.Port)
	assert.Equal(t, 100, AppConfig.ImportMaxRows)
	assert.False(t, AppConfig.PhoneStructuralFallback)
	assert.Equal(t, "ops", AppConfig.AdminGroup)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "eighty"},
		{"REDIS_DB", "x"},
		{"REDIS_TTL", "forever"},
		{"IMPORT_MAX_ROWS", "0"},
		{"IMPORT_MAX_FILE_SIZE", "-1"},
		{"IMPORT_RATE_LIMIT", "-5"},
		{"PHONE_STRUCTURAL_FALLBACK", "maybe"},
		{"TRACING_ENABLED", "sometimes"},
		{"TRACING_SAMPLE_RATIO", "1.5"},
		{"TRACING_SAMPLE_RATIO", "half"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			assert.Error(t, LoadConfig())
		})
	}
}

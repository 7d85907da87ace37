package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapsKey = "AIza-test-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", testMapsKey)
	t.Setenv("GOOGLE_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5001", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testMapsKey, cfg.GoogleMapsAPIKey)
	assert.Equal(t, 10*time.Second, cfg.GoogleMapsTimeout)
	assert.Equal(t, "Belgium", cfg.GeocodeCountry)
	assert.Equal(t, 10*time.Second, cfg.NotionTimeout)
	assert.Equal(t, "BE", cfg.PhoneRegion)
	assert.False(t, cfg.NotionEnabled())
	assert.False(t, cfg.SheetsEnabled)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "prospect-exports", cfg.KafkaExportTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	creds := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(creds, []byte(`{}`), 0o600))

	t.Setenv("GOOGLE_MAPS_API_KEY", testMapsKey)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GOOGLE_MAPS_TIMEOUT", "3s")
	t.Setenv("GEOCODE_COUNTRY", "France")
	t.Setenv("NOTION_TOKEN", "secret_abc")
	t.Setenv("NOTION_DATABASE_ID", "db-123")
	t.Setenv("NOTION_TIMEOUT", "4s")
	t.Setenv("PHONE_REGION", "FR")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", creds)
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_EXPORT_TOPIC", "custom-exports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.GoogleMapsTimeout)
	assert.Equal(t, "France", cfg.GeocodeCountry)
	assert.True(t, cfg.NotionEnabled())
	assert.Equal(t, "db-123", cfg.NotionDatabaseID)
	assert.Equal(t, 4*time.Second, cfg.NotionTimeout)
	assert.Equal(t, "FR", cfg.PhoneRegion)
	assert.True(t, cfg.SheetsEnabled, "existing credentials file implies sheets enabled")
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "custom-exports", cfg.KafkaExportTopic)
}

func TestLoad_MissingMapsKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_MAPS_API_KEY")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", testMapsKey)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidMapsTimeout(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", testMapsKey)
	t.Setenv("GOOGLE_MAPS_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_MAPS_TIMEOUT")
}

func TestLoad_InvalidNotionTimeout(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", testMapsKey)
	t.Setenv("NOTION_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTION_TIMEOUT")
}

func TestLoad_SheetsEnabledWithoutCredentials(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", testMapsKey)
	t.Setenv("GOOGLE_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("SHEETS_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CREDENTIALS_FILE")
}

func TestLoad_SheetsExplicitlyDisabled(t *testing.T) {
	creds := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(creds, []byte(`{}`), 0o600))

	t.Setenv("GOOGLE_MAPS_API_KEY", testMapsKey)
	t.Setenv("GOOGLE_CREDENTIALS_FILE", creds)
	t.Setenv("SHEETS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.SheetsEnabled)
}

func TestLoad_NotionNeedsBothSettings(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", testMapsKey)
	t.Setenv("NOTION_TOKEN", "secret_abc")
	t.Setenv("NOTION_DATABASE_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.NotionEnabled())
}

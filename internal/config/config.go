package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Google Maps Platform.
	GoogleMapsAPIKey  string
	GoogleMapsTimeout time.Duration
	GeocodeCountry    string

	// Notion workspace database. Enabled only when both token and database are set.
	NotionToken      string
	NotionDatabaseID string
	NotionTimeout    time.Duration
	PhoneRegion      string

	// Google Sheets export.
	GoogleCredentialsFile string
	SheetsEnabled         bool

	// Export audit events. Disabled when no brokers are configured.
	KafkaBrokers     []string
	KafkaExportTopic string
}

// NotionEnabled reports whether the workspace database is configured.
func (c *Config) NotionEnabled() bool {
	return c.NotionToken != "" && c.NotionDatabaseID != ""
}

// KafkaEnabled reports whether export events are published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	mapsTimeout, err := parsePositiveDuration("GOOGLE_MAPS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	notionTimeout, err := parsePositiveDuration("NOTION_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	credentialsFile := sharedcfg.EnvOrDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	sheetsEnabled := fileExists(credentialsFile)
	if v := os.Getenv("SHEETS_ENABLED"); v != "" {
		sheetsEnabled = v == "true"
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":5001"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GoogleMapsAPIKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		GoogleMapsTimeout: mapsTimeout,
		GeocodeCountry:    sharedcfg.EnvOrDefault("GEOCODE_COUNTRY", "Belgium"),

		NotionToken:      os.Getenv("NOTION_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DATABASE_ID"),
		NotionTimeout:    notionTimeout,
		PhoneRegion:      sharedcfg.EnvOrDefault("PHONE_REGION", "BE"),

		GoogleCredentialsFile: credentialsFile,
		SheetsEnabled:         sheetsEnabled,

		KafkaBrokers:     brokers,
		KafkaExportTopic: sharedcfg.EnvOrDefault("KAFKA_EXPORT_TOPIC", "prospect-exports"),
	}

	if cfg.GoogleMapsAPIKey == "" {
		return nil, errors.New("GOOGLE_MAPS_API_KEY is required")
	}
	if cfg.SheetsEnabled && !fileExists(cfg.GoogleCredentialsFile) {
		return nil, fmt.Errorf("SHEETS_ENABLED is true but GOOGLE_CREDENTIALS_FILE %q does not exist", cfg.GoogleCredentialsFile)
	}
	if cfg.KafkaEnabled() && cfg.KafkaExportTopic == "" {
		return nil, errors.New("KAFKA_EXPORT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

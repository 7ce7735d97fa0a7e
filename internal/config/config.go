package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	FormRoute          string
	CORSAllowedOrigins []string
	UISchemaDir        string

	// Sink settings. A sink is enabled when its address is set.
	SinkTimeout  time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool

	InfluxURL     string
	InfluxToken   string
	InfluxOrg     string
	InfluxBucket  string
	InfluxEnabled bool

	SQLitePath    string
	SQLiteEnabled bool
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	sinkTimeout, err := parseDuration("SINK_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		FormRoute:          sharedcfg.EnvOrDefault("FORM_ROUTE", "/simulation"),
		CORSAllowedOrigins: sharedcfg.ParseBrokers(os.Getenv("CORS_ALLOWED_ORIGINS")),
		UISchemaDir:        os.Getenv("UISCHEMA_DIR"),

		SinkTimeout:  sinkTimeout,
		KafkaBrokers: sharedcfg.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "environmental-observations"),

		InfluxURL:    os.Getenv("INFLUX_URL"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    os.Getenv("INFLUX_ORG"),
		InfluxBucket: sharedcfg.EnvOrDefault("INFLUX_BUCKET", "fireform"),

		SQLitePath: os.Getenv("SQLITE_PATH"),
	}
	cfg.KafkaEnabled = len(cfg.KafkaBrokers) > 0
	cfg.InfluxEnabled = cfg.InfluxURL != ""
	cfg.SQLiteEnabled = cfg.SQLitePath != ""

	if !strings.HasPrefix(cfg.FormRoute, "/") {
		return nil, errors.New("FORM_ROUTE must start with /")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.InfluxEnabled && cfg.InfluxOrg == "" {
		return nil, errors.New("INFLUX_ORG is required when INFLUX_URL is set")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/simulation", cfg.FormRoute)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.SinkTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.False(t, cfg.InfluxEnabled)
	assert.False(t, cfg.SQLiteEnabled)
	assert.Equal(t, "environmental-observations", cfg.KafkaTopic)
	assert.Equal(t, "fireform", cfg.InfluxBucket)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FORM_ROUTE", "/fire")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://ops.example.com")
	t.Setenv("UISCHEMA_DIR", "/etc/fireform")
	t.Setenv("SINK_TIMEOUT", "2s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "obs")
	t.Setenv("INFLUX_URL", "http://influx:8086")
	t.Setenv("INFLUX_TOKEN", "secret")
	t.Setenv("INFLUX_ORG", "fire")
	t.Setenv("INFLUX_BUCKET", "weather")
	t.Setenv("SQLITE_PATH", "/var/lib/fireform.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/fire", cfg.FormRoute)
	assert.Equal(t, []string{"http://localhost:5173", "https://ops.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "/etc/fireform", cfg.UISchemaDir)
	assert.Equal(t, 2*time.Second, cfg.SinkTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "obs", cfg.KafkaTopic)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, "http://influx:8086", cfg.InfluxURL)
	assert.Equal(t, "secret", cfg.InfluxToken)
	assert.Equal(t, "fire", cfg.InfluxOrg)
	assert.Equal(t, "weather", cfg.InfluxBucket)
	assert.True(t, cfg.InfluxEnabled)
	assert.Equal(t, "/var/lib/fireform.db", cfg.SQLitePath)
	assert.True(t, cfg.SQLiteEnabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{name: "negative shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}},
		{name: "sink timeout", env: map[string]string{"SINK_TIMEOUT": "abc"}},
		{name: "log format", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "relative route", env: map[string]string{"FORM_ROUTE": "simulation"}},
		{name: "influx without org", env: map[string]string{"INFLUX_URL": "http://influx:8086"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

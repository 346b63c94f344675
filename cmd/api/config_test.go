package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	config, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", config.ServerAddr)
	assert.Equal(t, "name", config.SummaryGroupBy)
	assert.Equal(t, 1000, config.Invoicing.ProductsPageSize)
	assert.Equal(t, 100, config.Invoicing.OrdersPageSize)
	assert.Equal(t, "2024-01-01", config.Invoicing.OrdersFrom)
	assert.Equal(t, "2025-12-31", config.Invoicing.OrdersTo)
	assert.False(t, config.Events.Enabled)
	assert.Equal(t, "wms.delivery.events", config.Events.Topic)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
serverAddr: ":9000"
summaryGroupBy: sku
invoicing:
  baseUrl: https://invoicing.example
  timeout: 5s
  ordersPageSize: 250
  ordersFrom: "2025-01-01"
events:
  enabled: true
  brokers: [kafka-1:9092]
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_ADDR", ":9100")
	t.Setenv("INVOICING_SECRET", "s3cret")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	config, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9100", config.ServerAddr)
	assert.Equal(t, "sku", config.SummaryGroupBy)
	assert.Equal(t, "https://invoicing.example", config.Invoicing.BaseURL)
	assert.Equal(t, 5*time.Second, config.Invoicing.Timeout)
	assert.Equal(t, 250, config.Invoicing.OrdersPageSize)
	assert.Equal(t, 1000, config.Invoicing.ProductsPageSize)
	assert.Equal(t, "2025-01-01", config.Invoicing.OrdersFrom)
	assert.Equal(t, "s3cret", config.Invoicing.Secret)
	assert.True(t, config.Events.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.Events.Brokers)
	assert.Equal(t, []string{"http://localhost:5173"}, config.CORSOrigins)

	inv := config.invoicingConfig()
	assert.Equal(t, "s3cret", inv.Secret)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.kafkaConfig().Brokers)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"Unknown grouping", map[string]string{"SUMMARY_GROUP_BY": "color"}},
		{"Bad window date", map[string]string{"ORDERS_FROM": "01-01-2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DELIVERY_PLANNER_TEST_VAR", "set")
	assert.Equal(t, "set", getEnv("DELIVERY_PLANNER_TEST_VAR", "fallback"))
	assert.Equal(t, "fallback", getEnv("DELIVERY_PLANNER_UNSET_VAR", "fallback"))
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 42, parseInt("42", 1))
	assert.Equal(t, 1, parseInt("-5", 1))
	assert.True(t, parseBool("true", false))
	assert.False(t, parseBool("maybe", false))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}

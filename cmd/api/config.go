package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wms-platform/delivery-planner/internal/domain"
	"github.com/wms-platform/delivery-planner/internal/infrastructure/invoicing"
	"github.com/wms-platform/delivery-planner/pkg/kafka"
)

// Config holds application configuration
type Config struct {
	ServerAddr     string          `yaml:"serverAddr"`
	LogLevel       string          `yaml:"logLevel"`
	Environment    string          `yaml:"environment"`
	LoadTimeout    time.Duration   `yaml:"loadTimeout"`
	SummaryGroupBy string          `yaml:"summaryGroupBy"`
	CORSOrigins    []string        `yaml:"corsOrigins"`
	Invoicing      InvoicingConfig `yaml:"invoicing"`
	Tracing        TracingConfig   `yaml:"tracing"`
	Events         EventsConfig    `yaml:"events"`
}

// InvoicingConfig holds the invoicing provider settings. Credentials only come from the environment.
type InvoicingConfig struct {
	BaseURL          string        `yaml:"baseUrl"`
	Secret           string        `yaml:"-"`
	UserKey          string        `yaml:"-"`
	Timeout          time.Duration `yaml:"timeout"`
	ProductsPageSize int           `yaml:"productsPageSize"`
	OrdersPageSize   int           `yaml:"ordersPageSize"`
	OrdersFrom       string        `yaml:"ordersFrom"`
	OrdersTo         string        `yaml:"ordersTo"`
}

// TracingConfig holds OpenTelemetry export settings
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Endpoint   string  `yaml:"endpoint"`
	SampleRate float64 `yaml:"sampleRate"`
}

// EventsConfig holds assignment event publishing settings
type EventsConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func defaultConfig() *Config {
	inv := invoicing.DefaultConfig()
	return &Config{
		ServerAddr:     ":8080",
		LogLevel:       "info",
		Environment:    "development",
		LoadTimeout:    2 * time.Minute,
		SummaryGroupBy: string(domain.GroupingName),
		Invoicing: InvoicingConfig{
			BaseURL:          inv.BaseURL,
			Timeout:          inv.Timeout,
			ProductsPageSize: inv.ProductsPageSize,
			OrdersPageSize:   inv.OrdersPageSize,
			OrdersFrom:       inv.OrdersFrom,
			OrdersTo:         inv.OrdersTo,
		},
		Tracing: TracingConfig{
			Endpoint:   "localhost:4317",
			SampleRate: 1.0,
		},
		Events: EventsConfig{
			Brokers: kafka.DefaultConfig().Brokers,
			Topic:   kafka.Topics.DeliveryEvents,
		},
	}
}

// loadConfig layers defaults, the optional CONFIG_FILE and environment overrides
func loadConfig() (*Config, error) {
	config := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(config)

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(c *Config) {
	c.ServerAddr = getEnv("SERVER_ADDR", c.ServerAddr)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LoadTimeout = parseDuration(getEnv("LOAD_TIMEOUT", ""), c.LoadTimeout)
	c.SummaryGroupBy = getEnv("SUMMARY_GROUP_BY", c.SummaryGroupBy)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	c.Invoicing.BaseURL = getEnv("INVOICING_BASE_URL", c.Invoicing.BaseURL)
	c.Invoicing.Secret = getEnv("INVOICING_SECRET", c.Invoicing.Secret)
	c.Invoicing.UserKey = getEnv("INVOICING_USER_KEY", c.Invoicing.UserKey)
	c.Invoicing.Timeout = parseDuration(getEnv("INVOICING_TIMEOUT", ""), c.Invoicing.Timeout)
	c.Invoicing.ProductsPageSize = parseInt(getEnv("PRODUCTS_PAGE_SIZE", ""), c.Invoicing.ProductsPageSize)
	c.Invoicing.OrdersPageSize = parseInt(getEnv("ORDERS_PAGE_SIZE", ""), c.Invoicing.OrdersPageSize)
	c.Invoicing.OrdersFrom = getEnv("ORDERS_FROM", c.Invoicing.OrdersFrom)
	c.Invoicing.OrdersTo = getEnv("ORDERS_TO", c.Invoicing.OrdersTo)

	c.Tracing.Enabled = parseBool(getEnv("TRACING_ENABLED", ""), c.Tracing.Enabled)
	c.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.Endpoint)

	c.Events.Enabled = parseBool(getEnv("EVENTS_ENABLED", ""), c.Events.Enabled)
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		c.Events.Brokers = kafka.ParseBrokers(brokers)
	}
}

func (c *Config) validate() error {
	if !domain.SummaryGrouping(c.SummaryGroupBy).IsValid() {
		return fmt.Errorf("invalid SUMMARY_GROUP_BY %q: must be name or sku", c.SummaryGroupBy)
	}
	if c.Invoicing.BaseURL == "" {
		return fmt.Errorf("invoicing base url is required")
	}
	for _, date := range []string{c.Invoicing.OrdersFrom, c.Invoicing.OrdersTo} {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("invalid order window date %q: %w", date, err)
		}
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("events are enabled but no kafka brokers are configured")
	}
	return nil
}

func (c *Config) invoicingConfig() *invoicing.Config {
	return &invoicing.Config{
		BaseURL:          c.Invoicing.BaseURL,
		Secret:           c.Invoicing.Secret,
		UserKey:          c.Invoicing.UserKey,
		Timeout:          c.Invoicing.Timeout,
		ProductsPageSize: c.Invoicing.ProductsPageSize,
		OrdersPageSize:   c.Invoicing.OrdersPageSize,
		OrdersFrom:       c.Invoicing.OrdersFrom,
		OrdersTo:         c.Invoicing.OrdersTo,
	}
}

func (c *Config) kafkaConfig() *kafka.Config {
	kc := kafka.DefaultConfig()
	kc.Brokers = c.Events.Brokers
	kc.ClientID = serviceName
	return kc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}

func parseBool(s string, fallback bool) bool {
	if s == "" {
		return fallback
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

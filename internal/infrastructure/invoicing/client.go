package invoicing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/wms-platform/delivery-planner/internal/domain"
	"github.com/wms-platform/delivery-planner/pkg/logging"
	"github.com/wms-platform/delivery-planner/pkg/metrics"
	"github.com/wms-platform/delivery-planner/pkg/resilience"
	"github.com/wms-platform/delivery-planner/pkg/tracing"
)

const (
	operationProducts = "getAllProducts"
	operationOrders   = "getOpenInvoices"
)

// ErrProviderRejected is returned when the provider answers with Success=false
var ErrProviderRejected = errors.New("invoicing provider rejected the request")

// maxErrorBody bounds the provider response kept in a StatusError
const maxErrorBody = 512

// StatusError carries a non-2xx provider response. Body is truncated to maxErrorBody bytes.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invoicing provider returned status %d: %s", e.StatusCode, e.Body)
}

// Config holds the provider endpoint, credentials and query window
type Config struct {
	BaseURL          string
	Secret           string
	UserKey          string
	Timeout          time.Duration
	ProductsPageSize int
	OrdersPageSize   int
	OrdersFrom       string
	OrdersTo         string
}

// DefaultConfig returns the page sizes and window the warehouse has always used
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          "https://api.yeshinvoice.co.il",
		Timeout:          30 * time.Second,
		ProductsPageSize: 1000,
		OrdersPageSize:   100,
		OrdersFrom:       "2024-01-01",
		OrdersTo:         "2025-12-31",
	}
}

// Client fetches products and open orders from the invoicing provider.
// It implements domain.CatalogSource and domain.OrderSource.
type Client struct {
	config     *Config
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	retry      *resilience.RetryConfig
	tracer     trace.Tracer
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig replaces the retry policy
func WithRetryConfig(rc *resilience.RetryConfig) Option {
	return func(c *Client) { c.retry = rc }
}

// WithCircuitBreaker replaces the circuit breaker
func WithCircuitBreaker(cb *resilience.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithTracer sets the tracer used for client spans
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// NewClient creates a provider client. m may be nil.
func NewClient(config *Config, m *metrics.Metrics, logger *logging.Logger, opts ...Option) *Client {
	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		tracer:     otel.Tracer("delivery-planner/invoicing"),
		metrics:    m,
		logger:     logger.WithComponent("invoicing-client"),
	}

	retry := resilience.DefaultRetryConfig()
	retry.RetryableErrors = isRetryable
	c.retry = retry

	for _, opt := range opts {
		opt(c)
	}

	if c.breaker == nil {
		cbConfig := resilience.DefaultCircuitBreakerConfig("invoicing")
		cbConfig.OnStateChange = c.onBreakerStateChange
		c.breaker = resilience.NewCircuitBreaker(cbConfig, c.logger.Logger)
	}

	return c
}

func (c *Client) onBreakerStateChange(name string, _, to gobreaker.State) {
	if c.metrics == nil {
		return
	}
	c.metrics.SetCircuitBreakerState(name, int(to))
	if to == gobreaker.StateOpen {
		c.metrics.RecordCircuitBreakerTrip(name)
	}
}

// isRetryable retries transport failures and 5xx answers, never 4xx or a rejected envelope
func isRetryable(err error) bool {
	if errors.Is(err, resilience.ErrCircuitOpen) ||
		errors.Is(err, ErrProviderRejected) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

// FetchProducts loads the full product catalog
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	body := productsRequest{PageSize: c.config.ProductsPageSize, PageNumber: 1}

	records, err := call[productRecord](ctx, c, operationProducts, productsPath, body)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toDomain())
	}
	return products, nil
}

// FetchOpenOrders loads the open sales orders of every customer within the configured window
func (c *Client) FetchOpenOrders(ctx context.Context) ([]domain.Order, error) {
	body := ordersRequest{
		CustomerID: allCustomers,
		PageSize:   c.config.OrdersPageSize,
		PageNumber: 1,
		DocTypeID:  salesOrderDocType,
		From:       c.config.OrdersFrom,
		To:         c.config.OrdersTo,
	}

	records, err := call[orderRecord](ctx, c, operationOrders, ordersPath, body)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(records))
	for _, r := range records {
		order, clamped := r.toDomain()
		if clamped > 0 {
			c.logger.WithContext(ctx).Warn("Negative item values clamped to zero",
				"orderId", order.ID,
				"values", clamped,
			)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// call runs one provider operation through retry, breaker and a client span
func call[T any](ctx context.Context, c *Client, operation, path string, body interface{}) ([]T, error) {
	url := strings.TrimSuffix(c.config.BaseURL, "/") + path
	start := time.Now()

	records, err := tracing.TracedOperation(ctx, c.tracer, "invoicing."+operation,
		func(ctx context.Context) ([]T, error) {
			return resilience.RetryWithResult(ctx, c.retry, func() ([]T, error) {
				result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
					return post[T](ctx, c, url, body)
				})
				if err != nil {
					return nil, err
				}
				return result.([]T), nil
			})
		},
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(tracing.InvoicingSpanAttributes(operation, url)...),
	)

	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordInvoicingRequest(operation, err == nil, duration)
	}
	c.logger.InvoicingCall(ctx, operation, len(records), duration, err)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return records, nil
}

func post[T any](ctx context.Context, c *Client, url string, body interface{}) ([]T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	auth, err := json.Marshal(credentials{Secret: c.config.Secret, UserKey: c.config.UserKey})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", string(auth))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncateBody(respBody)}
	}

	var env envelope[T]
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s", ErrProviderRejected, env.ErrorMessage)
	}
	if env.ReturnValue == nil {
		return []T{}, nil
	}
	return env.ReturnValue, nil
}

func truncateBody(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	return string(body[:maxErrorBody]) + "...(truncated)"
}

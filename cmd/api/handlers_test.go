package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/delivery-planner/internal/application"
	"github.com/wms-platform/delivery-planner/internal/domain"
	"github.com/wms-platform/delivery-planner/pkg/contracts/openapi"
	"github.com/wms-platform/delivery-planner/pkg/logging"
	"github.com/wms-platform/delivery-planner/pkg/metrics"
	"github.com/wms-platform/delivery-planner/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCatalog struct {
	FetchProductsFn func(ctx context.Context) ([]domain.Product, error)
}

func (s *stubCatalog) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return s.FetchProductsFn(ctx)
}

type stubOrders struct {
	FetchOpenOrdersFn func(ctx context.Context) ([]domain.Order, error)
}

func (s *stubOrders) FetchOpenOrders(ctx context.Context) ([]domain.Order, error) {
	return s.FetchOpenOrdersFn(ctx)
}

type testServer struct {
	t         *testing.T
	router    *gin.Engine
	service   *application.PlannerService
	validator *openapi.Validator
}

func newTestServer(t *testing.T, load bool) *testServer {
	t.Helper()
	logger := logging.New(&logging.Config{Level: logging.LevelError, ServiceName: serviceName, Output: io.Discard})
	m := metrics.New(metrics.DefaultConfig(serviceName))

	catalog := &stubCatalog{FetchProductsFn: func(context.Context) ([]domain.Product, error) {
		return []domain.Product{{SKU: "A", Name: "Widget"}}, nil
	}}
	orders := &stubOrders{FetchOpenOrdersFn: func(context.Context) ([]domain.Order, error) {
		return []domain.Order{
			{ID: "1", DocumentNumber: "1001", Date: "05-03-2025", CustomerName: "Alpha",
				Items: []domain.OrderItem{{SKU: "A", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("9.90")}}},
			{ID: "2", DocumentNumber: "1002", Date: "06-03-2025", CustomerName: "Beta",
				Items: []domain.OrderItem{{SKU: "B", Quantity: decimal.NewFromInt(5)}}},
		}, nil
	}}

	service := application.NewPlannerService(catalog, orders, nil, m, logger, domain.GroupingName)
	if load {
		service.Load(context.Background())
	}

	router, err := newRouter(service, m, logger, nil)
	require.NoError(t, err)

	validator, err := openapi.NewValidator("../../docs/openapi.yaml")
	require.NoError(t, err)

	return &testServer{t: t, router: router, service: service, validator: validator}
}

// do serves the request and checks the exchange against the OpenAPI document
func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(s.t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	contractReq := httptest.NewRequest(method, path, bytes.NewReader(payload))
	contractReq.Header = req.Header.Clone()
	assert.NoError(s.t, s.validator.ValidateResponse(contractReq, rec.Code, rec.Header(), rec.Body.Bytes()),
		"%s %s does not match the OpenAPI document", method, path)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthAndReadiness(t *testing.T) {
	s := newTestServer(t, false)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/ready", nil).Code)

	s.service.Load(context.Background())
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/ready", nil).Code)
}

func TestListEndpoints(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[map[string]interface{}](t, rec)
	assert.Equal(t, 2.0, orders["total"])
	first := orders["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "05/03/2025", first["date"])
	assert.Equal(t, 3.0, first["totalItems"])

	rec = s.do(http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decode[map[string]interface{}](t, rec)["total"])

	rec = s.do(http.MethodGet, "/api/v1/delivery-days", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5.0, decode[map[string]interface{}](t, rec)["total"])
}

func TestListProductsPagingAndSearch(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(http.MethodGet, "/api/v1/products?search=widg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, 1.0, body["total"])
	assert.Equal(t, false, body["hasNext"])

	rec = s.do(http.MethodGet, "/api/v1/products?search=gadget", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[map[string]interface{}](t, rec)
	assert.Equal(t, 0.0, body["total"])
	assert.Empty(t, body["items"])

	rec = s.do(http.MethodGet, "/api/v1/products?page=2&pageSize=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[map[string]interface{}](t, rec)
	assert.Equal(t, 2.0, body["page"])
	assert.Equal(t, true, body["hasPrev"])
	assert.Empty(t, body["items"])
}

func TestGetOrder(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(http.MethodGet, "/api/v1/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	order := decode[application.OrderDTO](t, rec)
	assert.Equal(t, "Widget", order.Items[0].Name)
	assert.Equal(t, "9.9", order.Items[0].UnitPrice.String())

	rec = s.do(http.MethodGet, "/api/v1/orders/404", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", decode[middleware.APIErrorResponse](t, rec).Code)
}

func TestAssignDeliveryDay(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(http.MethodPut, "/api/v1/orders/1/delivery-day", map[string]string{"day": "sunday"})
	require.Equal(t, http.StatusOK, rec.Code)
	assignment := decode[application.AssignmentDTO](t, rec)
	assert.Equal(t, "sunday", assignment.DeliveryDay)
	assert.True(t, assignment.Changed)

	rec = s.do(http.MethodPut, "/api/v1/orders/1/delivery-day", map[string]string{"day": "monday"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sunday", decode[application.AssignmentDTO](t, rec).PreviousDay)

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"Invalid day", "/api/v1/orders/1/delivery-day", map[string]string{"day": "saturday"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Missing day", "/api/v1/orders/1/delivery-day", map[string]string{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"Unknown order", "/api/v1/orders/99/delivery-day", map[string]string{"day": "sunday"}, http.StatusNotFound, "RESOURCE_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPut, tt.path, tt.body)
			require.Equal(t, tt.status, rec.Code)
			resp := decode[middleware.APIErrorResponse](t, rec)
			assert.Equal(t, tt.code, resp.Code)
		})
	}

	invalid := s.do(http.MethodPut, "/api/v1/orders/1/delivery-day", map[string]string{"day": "saturday"})
	assert.Equal(t, "must be one of: sunday monday tuesday wednesday thursday",
		decode[middleware.APIErrorResponse](t, invalid).Details["day"])
}

func TestReports(t *testing.T) {
	s := newTestServer(t, true)
	for _, id := range []string{"1", "2"} {
		rec := s.do(http.MethodPut, "/api/v1/orders/"+id+"/delivery-day", map[string]string{"day": "sunday"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := s.do(http.MethodPost, "/api/v1/reports/summary", map[string]string{"day": "sunday"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"day":"sunday","dayLabel":"ראשון","groupBy":"name",
		"products":[{"name":"Widget","quantity":3},{"name":"Product B","quantity":5}],
		"totalQuantity":8
	}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/reports/summary", map[string]string{"day": "sunday", "groupBy": "sku"})
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[application.SummaryReportDTO](t, rec)
	assert.Equal(t, "A", summary.Products[0].SKU)

	rec = s.do(http.MethodPost, "/api/v1/reports/summary", map[string]string{"day": "sunday", "groupBy": "color"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/reports/detailed", map[string]string{"day": "monday"})
	require.Equal(t, http.StatusOK, rec.Code)
	detailed := decode[application.DetailedReportDTO](t, rec)
	assert.Empty(t, detailed.Orders)

	rec = s.do(http.MethodPost, "/api/v1/reports/detailed", map[string]string{"day": "sunday"})
	require.Equal(t, http.StatusOK, rec.Code)
	detailed = decode[application.DetailedReportDTO](t, rec)
	require.Len(t, detailed.Orders, 2)
	assert.Equal(t, "1", detailed.Orders[0].ID)
	assert.Equal(t, "Product B", detailed.Orders[1].Items[0].Name)

	rec = s.do(http.MethodGet, "/api/v1/selection", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	selection := decode[application.SelectionDTO](t, rec)
	assert.Equal(t, "detailed", selection.Kind)
	require.NotNil(t, selection.Detailed)
	assert.Equal(t, "sunday", selection.Detailed.Day)
}

func TestSelection(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(http.MethodGet, "/api/v1/selection", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"kind":"none"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/selection/orders/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	selection := decode[application.SelectionDTO](t, rec)
	assert.Equal(t, "single", selection.Kind)
	require.NotNil(t, selection.Order)
	assert.Equal(t, "Beta", selection.Order.CustomerName)

	rec = s.do(http.MethodPost, "/api/v1/selection/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/selection", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/selection", nil)
	assert.Equal(t, "none", decode[application.SelectionDTO](t, rec).Kind)
}

func TestDocumentedPathsAreRouted(t *testing.T) {
	s := newTestServer(t, true)

	routed := make(map[string]bool)
	for _, r := range s.router.Routes() {
		routed[r.Path] = true
	}

	for _, path := range s.validator.GetPaths() {
		ginPath := strings.ReplaceAll(path, "{orderId}", ":orderId")
		assert.True(t, routed[ginPath], "documented path %s has no route", path)
	}
}

func TestReload(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(http.MethodPost, "/api/v1/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":1,"orders":2,"catalogFailed":false,"ordersFailed":false}`, rec.Body.String())
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/ready", nil).Code)
}

func TestReloadUpstreamFailure(t *testing.T) {
	logger := logging.New(&logging.Config{Level: logging.LevelError, ServiceName: serviceName, Output: io.Discard})
	m := metrics.New(metrics.DefaultConfig(serviceName))
	down := errors.New("provider down")

	service := application.NewPlannerService(
		&stubCatalog{FetchProductsFn: func(context.Context) ([]domain.Product, error) { return nil, down }},
		&stubOrders{FetchOpenOrdersFn: func(context.Context) ([]domain.Order, error) { return nil, down }},
		nil, m, logger, domain.GroupingName,
	)
	router, err := newRouter(service, m, logger, nil)
	require.NoError(t, err)
	validator, err := openapi.NewValidator("../../docs/openapi.yaml")
	require.NoError(t, err)
	s := &testServer{t: t, router: router, service: service, validator: validator}

	rec := s.do(http.MethodPost, "/api/v1/reload", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_ERROR", decode[middleware.APIErrorResponse](t, rec).Code)
}

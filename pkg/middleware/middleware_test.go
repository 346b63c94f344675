package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/delivery-planner/pkg/errors"
	"github.com/wms-platform/delivery-planner/pkg/logging"
	"github.com/wms-platform/delivery-planner/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestRouter() *gin.Engine {
	router := gin.New()
	Setup(router, DefaultConfig("delivery-planner", testLogger()))
	return router
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIErrorResponse {
	t.Helper()
	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRequestAndCorrelationIDs(t *testing.T) {
	router := newTestRouter()

	var ctxCorrelation any
	router.GET("/ping", func(c *gin.Context) {
		ctxCorrelation = c.Request.Context().Value(logging.CorrelationIDKey)
		c.Status(http.StatusOK)
	})

	t.Run("Generated when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
		assert.NotEmpty(t, rec.Header().Get(HeaderCorrelationID))
		assert.Equal(t, rec.Header().Get(HeaderCorrelationID), ctxCorrelation)
	})

	t.Run("Propagated when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "req-1")
		req.Header.Set(HeaderCorrelationID, "corr-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))
		assert.Equal(t, "corr-1", rec.Header().Get(HeaderCorrelationID))
		assert.Equal(t, "corr-1", ctxCorrelation)
	})
}

func TestNoRouteAndNoMethod(t *testing.T) {
	router := newTestRouter()
	router.GET("/only-get", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", decodeError(t, rec).Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/only-get", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Code)
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	router := newTestRouter()
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errors.CodeInternalError, decodeError(t, rec).Code)
}

func TestContentTypeEnforced(t *testing.T) {
	router := newTestRouter()
	router.POST("/echo", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("day=sunday"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type colorRequest struct {
	Color string `json:"color" binding:"required,primary_color"`
}

func TestBindAndValidateWithCustomTag(t *testing.T) {
	require.NoError(t, RegisterCustomValidation("primary_color", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "red", "green", "blue":
			return true
		}
		return false
	}, "must be a primary color"))

	router := newTestRouter()
	router.POST("/colors", func(c *gin.Context) {
		var req colorRequest
		if appErr := BindAndValidate(c, &req); appErr != nil {
			NewErrorResponder(c, testLogger()).RespondWithAppError(appErr)
			return
		}
		c.JSON(http.StatusOK, req)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{name: "Valid", body: `{"color":"red"}`, wantStatus: http.StatusOK},
		{name: "Custom tag fails", body: `{"color":"pink"}`, wantStatus: http.StatusBadRequest, wantCode: errors.CodeValidationError, wantDetail: "must be a primary color"},
		{name: "Missing field", body: `{}`, wantStatus: http.StatusBadRequest, wantCode: errors.CodeValidationError, wantDetail: "is required"},
		{name: "Malformed JSON", body: `{`, wantStatus: http.StatusBadRequest, wantCode: errors.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/colors", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode == "" {
				return
			}
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, resp.Details["color"])
			}
		})
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	m := metrics.New(metrics.DefaultConfig("delivery-planner"))
	router := gin.New()
	router.Use(MetricsMiddleware(m))
	router.GET("/orders/:orderId", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", MetricsEndpoint(m))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/42", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `path="/orders/:orderId"`)
}

func TestCORS(t *testing.T) {
	config := DefaultConfig("delivery-planner", testLogger())
	config.AllowedOrigins = []string{"http://localhost:5173"}
	router := gin.New()
	Setup(router, config)
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

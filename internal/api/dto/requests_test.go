package dto

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/delivery-planner/internal/application"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, v.RegisterValidation(DeliveryDayTag, ValidateDeliveryDay))
	return v
}

func TestReportRequestValidation(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		req     ReportRequest
		wantErr bool
	}{
		{"Valid day", ReportRequest{Day: "sunday"}, false},
		{"Mixed case day", ReportRequest{Day: " Thursday "}, false},
		{"Group by sku", ReportRequest{Day: "monday", GroupBy: "sku"}, false},
		{"Missing day", ReportRequest{}, true},
		{"Weekend day", ReportRequest{Day: "saturday"}, true},
		{"Unknown grouping", ReportRequest{Day: "monday", GroupBy: "color"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecimalsRenderAsNumbers(t *testing.T) {
	body, err := json.Marshal(application.ProductTotalDTO{Name: "Widget", Quantity: decimal.RequireFromString("2.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Widget","quantity":2.5}`, string(body))
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse[application.ProductDTO](nil)
	assert.NotNil(t, resp.Items)
	assert.Equal(t, 0, resp.Total)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"total":0}`, string(body))
}

package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/wms-platform/delivery-planner/internal/domain"
)

// DeliveryDayTag is the validator tag accepting the five delivery days, case-insensitively
const DeliveryDayTag = "delivery_day"

// DeliveryDayMessage is the validation message reported for DeliveryDayTag
const DeliveryDayMessage = "must be one of: sunday monday tuesday wednesday thursday"

func init() {
	// quantities render as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// AssignDeliveryDayRequest is the body of PUT /orders/:orderId/delivery-day
type AssignDeliveryDayRequest struct {
	Day string `json:"day" binding:"required,delivery_day"`
}

// ReportRequest is the body of the report endpoints
type ReportRequest struct {
	Day     string `json:"day" binding:"required,delivery_day"`
	GroupBy string `json:"groupBy" binding:"omitempty,oneof=name sku"`
}

// ValidateDeliveryDay implements DeliveryDayTag
func ValidateDeliveryDay(fl validator.FieldLevel) bool {
	_, err := domain.ParseDeliveryDay(fl.Field().String())
	return err == nil
}

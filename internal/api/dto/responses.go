package dto

import "github.com/wms-platform/delivery-planner/internal/application"

// ListResponse wraps collection endpoints
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse builds a ListResponse. A nil slice renders as an empty list.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// OrderListResponse is the body of GET /orders
type OrderListResponse = ListResponse[application.OrderListItemDTO]

// DeliveryDayListResponse is the body of GET /delivery-days
type DeliveryDayListResponse = ListResponse[application.DeliveryDayDTO]

package application

import "github.com/shopspring/decimal"

// DeliveryDayDTO describes one delivery day and how many orders it holds
type DeliveryDayDTO struct {
	Day            string `json:"day"`
	Label          string `json:"label"`
	AssignedOrders int    `json:"assignedOrders"`
}

// ProductDTO is a catalog entry
type ProductDTO struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// OrderListItemDTO is one row of the order list
type OrderListItemDTO struct {
	ID               string          `json:"id"`
	DocumentNumber   string          `json:"documentNumber"`
	Date             string          `json:"date"`
	CustomerName     string          `json:"customerName"`
	TotalItems       decimal.Decimal `json:"totalItems"`
	DeliveryDay      string          `json:"deliveryDay,omitempty"`
	DeliveryDayLabel string          `json:"deliveryDayLabel,omitempty"`
}

// OrderItemDTO is an order line with its resolved product name
type OrderItemDTO struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderDTO is a full order with resolved item names
type OrderDTO struct {
	ID             string         `json:"id"`
	DocumentNumber string         `json:"documentNumber"`
	Date           string         `json:"date,omitempty"`
	CustomerName   string         `json:"customerName"`
	DeliveryDay    string         `json:"deliveryDay,omitempty"`
	Items          []OrderItemDTO `json:"items"`
}

// AssignmentDTO is the outcome of a delivery day assignment
type AssignmentDTO struct {
	OrderID     string `json:"orderId"`
	DeliveryDay string `json:"deliveryDay"`
	Label       string `json:"label"`
	PreviousDay string `json:"previousDay,omitempty"`
	Changed     bool   `json:"changed"`
}

// ProductTotalDTO is one summary row
type ProductTotalDTO struct {
	SKU      string          `json:"sku,omitempty"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// SummaryReportDTO is the rendered summary report
type SummaryReportDTO struct {
	Day           string            `json:"day"`
	DayLabel      string            `json:"dayLabel"`
	GroupBy       string            `json:"groupBy"`
	Products      []ProductTotalDTO `json:"products"`
	TotalQuantity decimal.Decimal   `json:"totalQuantity"`
}

// DetailedReportDTO is the rendered detailed report
type DetailedReportDTO struct {
	Day      string     `json:"day"`
	DayLabel string     `json:"dayLabel"`
	Orders   []OrderDTO `json:"orders"`
}

// SelectionDTO is the active selection. Exactly one payload is set unless kind is none.
type SelectionDTO struct {
	Kind     string             `json:"kind"`
	Order    *OrderDTO          `json:"order,omitempty"`
	Summary  *SummaryReportDTO  `json:"summary,omitempty"`
	Detailed *DetailedReportDTO `json:"detailed,omitempty"`
}

// LoadResultDTO reports the outcome of a reload
type LoadResultDTO struct {
	Products      int  `json:"products"`
	Orders        int  `json:"orders"`
	CatalogFailed bool `json:"catalogFailed"`
	OrdersFailed  bool `json:"ordersFailed"`
}

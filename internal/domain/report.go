package domain

import "github.com/shopspring/decimal"

// ProductTotal is one row of a summary report. SKU is only set when grouping by sku.
type ProductTotal struct {
	SKU      string          `json:"sku,omitempty"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// SummaryReport holds per-product quantity totals for one delivery day
type SummaryReport struct {
	Day      DeliveryDay     `json:"day"`
	Grouping SummaryGrouping `json:"grouping"`
	Products []ProductTotal  `json:"products"`
}

// DetailedOrder is one order of a detailed report. Item names are resolved by the reader.
type DetailedOrder struct {
	OrderID        string      `json:"orderId"`
	DocumentNumber string      `json:"documentNumber"`
	CustomerName   string      `json:"customerName"`
	Items          []OrderItem `json:"items"`
}

// DetailedReport lists the orders assigned to one delivery day
type DetailedReport struct {
	Day    DeliveryDay     `json:"day"`
	Orders []DetailedOrder `json:"orders"`
}

// SummaryGrouping selects the aggregation key of a summary report
type SummaryGrouping string

const (
	GroupingName SummaryGrouping = "name"
	GroupingSKU  SummaryGrouping = "sku"
)

// IsValid checks if the grouping is supported
func (g SummaryGrouping) IsValid() bool {
	return g == GroupingName || g == GroupingSKU
}

type summaryOptions struct {
	grouping SummaryGrouping
}

// SummaryOption customises Summarize
type SummaryOption func(*summaryOptions)

// GroupBySKU keys totals by sku; the name is resolved for display only
func GroupBySKU() SummaryOption {
	return WithGrouping(GroupingSKU)
}

// WithGrouping sets the aggregation key. Unsupported values keep name grouping.
func WithGrouping(g SummaryGrouping) SummaryOption {
	return func(o *summaryOptions) {
		if g.IsValid() {
			o.grouping = g
		}
	}
}

// Summarize totals item quantities per product over the orders assigned to day.
// Rows follow first-encounter order across the selected orders' items. By default rows are
// keyed by resolved name, so distinct skus sharing a name are merged.
func Summarize(store *OrderStore, assignments AssignmentMap, index *ProductIndex, day DeliveryDay, opts ...SummaryOption) (SummaryReport, error) {
	if !day.IsValid() {
		return SummaryReport{}, ErrInvalidDeliveryDay
	}

	options := summaryOptions{grouping: GroupingName}
	for _, opt := range opts {
		opt(&options)
	}

	positions := make(map[string]int)
	products := make([]ProductTotal, 0)

	for _, order := range assignments.OrdersForDay(store, day) {
		for _, item := range order.Items {
			name := index.Resolve(item.SKU)
			key := name
			if options.grouping == GroupingSKU {
				key = item.SKU
			}

			pos, seen := positions[key]
			if !seen {
				row := ProductTotal{Name: name, Quantity: decimal.Zero}
				if options.grouping == GroupingSKU {
					row.SKU = item.SKU
				}
				pos = len(products)
				positions[key] = pos
				products = append(products, row)
			}
			products[pos].Quantity = products[pos].Quantity.Add(item.Quantity)
		}
	}

	return SummaryReport{Day: day, Grouping: options.grouping, Products: products}, nil
}

// Detail projects the orders assigned to day, keeping store order and item order
func Detail(store *OrderStore, assignments AssignmentMap, day DeliveryDay) (DetailedReport, error) {
	if !day.IsValid() {
		return DetailedReport{}, ErrInvalidDeliveryDay
	}

	selected := assignments.OrdersForDay(store, day)
	orders := make([]DetailedOrder, 0, len(selected))
	for _, order := range selected {
		items := make([]OrderItem, len(order.Items))
		copy(items, order.Items)
		orders = append(orders, DetailedOrder{
			OrderID:        order.ID,
			DocumentNumber: order.DocumentNumber,
			CustomerName:   order.CustomerName,
			Items:          items,
		})
	}

	return DetailedReport{Day: day, Orders: orders}, nil
}

package application

import (
	"github.com/shopspring/decimal"

	"github.com/wms-platform/delivery-planner/internal/domain"
)

// ToProductDTOs converts catalog entries
func ToProductDTOs(products []domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProductDTO{SKU: p.SKU, Name: p.Name})
	}
	return dtos
}

// ToOrderListItemDTO converts an order into a list row
func ToOrderListItemDTO(order domain.Order, assignments domain.AssignmentMap) OrderListItemDTO {
	dto := OrderListItemDTO{
		ID:             order.ID,
		DocumentNumber: order.DocumentNumber,
		Date:           order.DisplayDate(),
		CustomerName:   order.CustomerName,
		TotalItems:     order.TotalQuantity(),
	}
	if day, ok := assignments.Get(order.ID); ok {
		dto.DeliveryDay = day.String()
		dto.DeliveryDayLabel = day.Label()
	}
	return dto
}

// ToOrderItemDTOs resolves item names against index
func ToOrderItemDTOs(items []domain.OrderItem, index *domain.ProductIndex) []OrderItemDTO {
	dtos := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, OrderItemDTO{
			SKU:       item.SKU,
			Name:      index.Resolve(item.SKU),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dtos
}

// ToOrderDTO converts an order, resolving item names
func ToOrderDTO(order domain.Order, assignments domain.AssignmentMap, index *domain.ProductIndex) OrderDTO {
	dto := OrderDTO{
		ID:             order.ID,
		DocumentNumber: order.DocumentNumber,
		Date:           order.DisplayDate(),
		CustomerName:   order.CustomerName,
		Items:          ToOrderItemDTOs(order.Items, index),
	}
	if day, ok := assignments.Get(order.ID); ok {
		dto.DeliveryDay = day.String()
	}
	return dto
}

// ToSummaryReportDTO converts a summary report
func ToSummaryReportDTO(report domain.SummaryReport) SummaryReportDTO {
	total := decimal.Zero
	products := make([]ProductTotalDTO, 0, len(report.Products))
	for _, p := range report.Products {
		total = total.Add(p.Quantity)
		products = append(products, ProductTotalDTO{SKU: p.SKU, Name: p.Name, Quantity: p.Quantity})
	}
	return SummaryReportDTO{
		Day:           report.Day.String(),
		DayLabel:      report.Day.Label(),
		GroupBy:       string(report.Grouping),
		Products:      products,
		TotalQuantity: total,
	}
}

// ToDetailedReportDTO renders a detailed report, resolving item names against the current index
func ToDetailedReportDTO(report domain.DetailedReport, index *domain.ProductIndex) DetailedReportDTO {
	orders := make([]OrderDTO, 0, len(report.Orders))
	for _, o := range report.Orders {
		orders = append(orders, OrderDTO{
			ID:             o.OrderID,
			DocumentNumber: o.DocumentNumber,
			CustomerName:   o.CustomerName,
			DeliveryDay:    report.Day.String(),
			Items:          ToOrderItemDTOs(o.Items, index),
		})
	}
	return DetailedReportDTO{
		Day:      report.Day.String(),
		DayLabel: report.Day.Label(),
		Orders:   orders,
	}
}

// ToLoadResultDTO converts a LoadResult to its DTO
func ToLoadResultDTO(result LoadResult) *LoadResultDTO {
	return &LoadResultDTO{
		Products:      result.Products,
		Orders:        result.Orders,
		CatalogFailed: result.CatalogErr != nil,
		OrdersFailed:  result.OrdersErr != nil,
	}
}

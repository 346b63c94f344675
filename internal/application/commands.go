package application

// AssignDeliveryDayCommand routes an order to a delivery day
type AssignDeliveryDayCommand struct {
	OrderID string
	Day     string
}

// ReportQuery requests a report for one delivery day.
// GroupBy is only read by the summary report; empty uses the configured default.
type ReportQuery struct {
	Day     string
	GroupBy string
}

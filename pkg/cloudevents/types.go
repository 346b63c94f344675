package cloudevents

import "time"

// Event types published by the delivery planner
const (
	DeliveryDayAssigned = "wms.delivery.day-assigned"
)

// SourceDeliveryPlanner is the CloudEvents source of planner events
const SourceDeliveryPlanner = "/wms/delivery-planner"

// Extension attribute names
const (
	ExtCorrelationID = "wmscorrelationid"
	ExtDeliveryDay   = "wmsdeliveryday"
)

// WMSCloudEvent represents a CloudEvents v1.0 compliant event
type WMSCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	CorrelationID string `json:"wmscorrelationid,omitempty"`
	DeliveryDay   string `json:"wmsdeliveryday,omitempty"`
}

// DeliveryDayAssignedData is the payload of DeliveryDayAssigned
type DeliveryDayAssignedData struct {
	OrderID        string `json:"orderId"`
	DocumentNumber string `json:"documentNumber"`
	DeliveryDay    string `json:"deliveryDay"`
	PreviousDay    string `json:"previousDay,omitempty"`
}

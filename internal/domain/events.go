package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// DeliveryDayAssignedEvent is published when an order is routed to a delivery day.
// PreviousDay is empty on the first assignment.
type DeliveryDayAssignedEvent struct {
	OrderID        string    `json:"orderId"`
	DocumentNumber string    `json:"documentNumber"`
	DeliveryDay    string    `json:"deliveryDay"`
	PreviousDay    string    `json:"previousDay,omitempty"`
	AssignedAt     time.Time `json:"assignedAt"`
}

func (e *DeliveryDayAssignedEvent) EventType() string    { return "wms.delivery.day-assigned" }
func (e *DeliveryDayAssignedEvent) OccurredAt() time.Time { return e.AssignedAt }

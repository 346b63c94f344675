package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type correlationKey struct{}

// ContextWithCorrelationID stores the correlation id stamped onto events created from ctx
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

// EventFactory creates CloudEvents for one source
type EventFactory struct {
	source string
	now    func() time.Time
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source, now: time.Now}
}

// CreateEvent creates a new WMSCloudEvent, carrying the correlation id found in ctx
func (f *EventFactory) CreateEvent(ctx context.Context, eventType, subject string, data interface{}) *WMSCloudEvent {
	event := &WMSCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            f.now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}

	if id, ok := ctx.Value(correlationKey{}).(string); ok {
		event.CorrelationID = id
	}

	return event
}

// CreateDeliveryDayAssignedEvent creates a DeliveryDayAssigned event with subject order/{id}
func (f *EventFactory) CreateDeliveryDayAssignedEvent(ctx context.Context, data DeliveryDayAssignedData) *WMSCloudEvent {
	event := f.CreateEvent(ctx, DeliveryDayAssigned, "order/"+data.OrderID, data)
	event.DeliveryDay = data.DeliveryDay
	return event
}

package events

import (
	"context"
	"fmt"

	"github.com/wms-platform/delivery-planner/internal/domain"
	"github.com/wms-platform/delivery-planner/pkg/cloudevents"
	"github.com/wms-platform/delivery-planner/pkg/kafka"
)

// EventPublisher implements domain.EventPublisher using Kafka
type EventPublisher struct {
	producer     *kafka.InstrumentedProducer
	eventFactory *cloudevents.EventFactory
	topic        string
}

// NewEventPublisher creates a new Kafka-based event publisher
func NewEventPublisher(
	producer *kafka.InstrumentedProducer,
	eventFactory *cloudevents.EventFactory,
	topic string,
) *EventPublisher {
	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
		topic:        topic,
	}
}

// Publish converts a domain event into a CloudEvent and writes it to the delivery topic
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	ce, err := p.toCloudEvent(ctx, event)
	if err != nil {
		return err
	}

	if err := p.producer.PublishEvent(ctx, p.topic, ce); err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}
	return nil
}

func (p *EventPublisher) toCloudEvent(ctx context.Context, event domain.DomainEvent) (*cloudevents.WMSCloudEvent, error) {
	switch e := event.(type) {
	case *domain.DeliveryDayAssignedEvent:
		ce := p.eventFactory.CreateDeliveryDayAssignedEvent(ctx, cloudevents.DeliveryDayAssignedData{
			OrderID:        e.OrderID,
			DocumentNumber: e.DocumentNumber,
			DeliveryDay:    e.DeliveryDay,
			PreviousDay:    e.PreviousDay,
		})
		if !e.AssignedAt.IsZero() {
			ce.Time = e.AssignedAt.UTC()
		}
		return ce, nil
	default:
		return nil, fmt.Errorf("unsupported domain event %T", event)
	}
}

// NoopPublisher drops every event. Used when event publishing is disabled.
type NoopPublisher struct{}

// Publish does nothing
func (NoopPublisher) Publish(context.Context, domain.DomainEvent) error { return nil }

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/wms-platform/delivery-planner/pkg/cloudevents"
)

// MessageWriter is the subset of *kafka.Writer the producer needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes CloudEvents to Kafka topics, one writer per topic
type Producer struct {
	mu        sync.Mutex
	writers   map[string]MessageWriter
	newWriter func(topic string) MessageWriter
}

// NewProducer creates a new Kafka producer
func NewProducer(config *Config) *Producer {
	return NewProducerWithWriterFactory(func(topic string) MessageWriter {
		return &kafka.Writer{
			Addr:         kafka.TCP(config.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchSize:    config.BatchSize,
			BatchTimeout: config.BatchTimeout,
			WriteTimeout: config.WriteTimeout,
			RequiredAcks: kafka.RequiredAcks(config.RequiredAcks),
			Transport:    &kafka.Transport{ClientID: config.ClientID},
		}
	})
}

// NewProducerWithWriterFactory creates a producer whose per-topic writers come from newWriter
func NewProducerWithWriterFactory(newWriter func(topic string) MessageWriter) *Producer {
	return &Producer{
		writers:   make(map[string]MessageWriter),
		newWriter: newWriter,
	}
}

func (p *Producer) getWriter(topic string) MessageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, exists := p.writers[topic]; exists {
		return writer
	}
	writer := p.newWriter(topic)
	p.writers[topic] = writer
	return writer
}

// BuildMessage encodes event in binary content mode: the JSON event is the value and
// the CloudEvents attributes are copied into ce-* headers. The subject is the message key.
func BuildMessage(event *cloudevents.WMSCloudEvent, extra ...kafka.Header) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Subject),
		Value: data,
		Headers: []kafka.Header{
			{Key: "ce-specversion", Value: []byte(event.SpecVersion)},
			{Key: "ce-type", Value: []byte(event.Type)},
			{Key: "ce-source", Value: []byte(event.Source)},
			{Key: "ce-id", Value: []byte(event.ID)},
			{Key: "ce-time", Value: []byte(event.Time.Format(time.RFC3339))},
			{Key: "content-type", Value: []byte(event.DataContentType)},
		},
		Time: event.Time,
	}

	if event.Subject != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "ce-subject", Value: []byte(event.Subject)})
	}
	if event.CorrelationID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "ce-" + cloudevents.ExtCorrelationID, Value: []byte(event.CorrelationID)})
	}
	if event.DeliveryDay != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "ce-" + cloudevents.ExtDeliveryDay, Value: []byte(event.DeliveryDay)})
	}

	msg.Headers = append(msg.Headers, extra...)
	return msg, nil
}

// PublishEvent publishes a CloudEvent to the specified topic
func (p *Producer) PublishEvent(ctx context.Context, topic string, event *cloudevents.WMSCloudEvent, extra ...kafka.Header) error {
	msg, err := BuildMessage(event, extra...)
	if err != nil {
		return err
	}

	if err := p.getWriter(topic).WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event to topic %s: %w", topic, err)
	}
	return nil
}

// Close closes all writers
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]MessageWriter)
	return lastErr
}

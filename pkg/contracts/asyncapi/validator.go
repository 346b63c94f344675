package asyncapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// EventTypeExtension is the schema extension naming the CloudEvents type a payload schema belongs to
const EventTypeExtension = "x-event-type"

// EventValidator validates CloudEvents payloads against AsyncAPI component schemas.
type EventValidator struct {
	schemas  map[string]*jsonschema.Schema
	channels map[string]string
}

// CloudEvent is the structured-mode envelope read back from a published message.
type CloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	Type            string          `json:"type"`
	Source          string          `json:"source"`
	Subject         string          `json:"subject,omitempty"`
	ID              string          `json:"id"`
	Time            string          `json:"time,omitempty"`
	DataContentType string          `json:"datacontenttype,omitempty"`
	Data            json.RawMessage `json:"data,omitempty"`
}

// Spec represents the parts of an AsyncAPI document the validator reads.
type Spec struct {
	AsyncAPI   string             `yaml:"asyncapi"`
	Info       Info               `yaml:"info"`
	Channels   map[string]Channel `yaml:"channels"`
	Components Components         `yaml:"components"`
}

// Info contains AsyncAPI info section.
type Info struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

// Channel represents a channel in AsyncAPI.
type Channel struct {
	Address  string                 `yaml:"address"`
	Messages map[string]interface{} `yaml:"messages"`
}

// Components contains reusable components.
type Components struct {
	Schemas map[string]interface{} `yaml:"schemas"`
}

// NewEventValidator creates a new event validator from an AsyncAPI document on disk.
func NewEventValidator(asyncAPIPath string) (*EventValidator, error) {
	data, err := os.ReadFile(asyncAPIPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read AsyncAPI spec: %w", err)
	}
	return NewEventValidatorFromBytes(data)
}

// NewEventValidatorFromBytes compiles every component schema carrying x-event-type.
func NewEventValidatorFromBytes(specBytes []byte) (*EventValidator, error) {
	var spec Spec
	if err := yaml.Unmarshal(specBytes, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse AsyncAPI spec: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	v := &EventValidator{
		schemas:  make(map[string]*jsonschema.Schema),
		channels: make(map[string]string),
	}

	for name, address := range channelAddresses(spec.Channels) {
		v.channels[name] = address
	}

	for schemaName, raw := range spec.Components.Schemas {
		schemaMap, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		eventType, _ := schemaMap[EventTypeExtension].(string)
		if eventType == "" {
			continue
		}

		compiled, err := compileSchema(compiler, "https://delivery-planner.local/schemas/"+schemaName+".json", schemaMap)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", schemaName, err)
		}
		v.schemas[eventType] = compiled
	}

	return v, nil
}

func channelAddresses(channels map[string]Channel) map[string]string {
	out := make(map[string]string, len(channels))
	for name, ch := range channels {
		out[name] = ch.Address
	}
	return out
}

func compileSchema(compiler *jsonschema.Compiler, url string, schema interface{}) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}

	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return compiled, nil
}

// ValidateEventJSON validates the data payload of a JSON encoded CloudEvent.
func (v *EventValidator) ValidateEventJSON(eventJSON []byte) error {
	var event CloudEvent
	if err := json.Unmarshal(eventJSON, &event); err != nil {
		return fmt.Errorf("failed to parse CloudEvent: %w", err)
	}

	if event.SpecVersion != "1.0" {
		return fmt.Errorf("unsupported specversion %q", event.SpecVersion)
	}
	if event.ID == "" || event.Source == "" {
		return fmt.Errorf("event id and source are required")
	}

	return v.ValidateData(event.Type, event.Data)
}

// ValidateData validates a raw JSON payload against the schema registered for eventType.
func (v *EventValidator) ValidateData(eventType string, data []byte) error {
	if eventType == "" {
		return fmt.Errorf("event type is required")
	}

	schema, ok := v.schemas[eventType]
	if !ok {
		return fmt.Errorf("no schema found for event type: %s", eventType)
	}

	if len(data) == 0 {
		return fmt.Errorf("event data is required")
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode event data: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("event data validation failed for type %s: %w", eventType, err)
	}
	return nil
}

// GetSupportedEventTypes returns the event types with registered schemas, sorted.
func (v *EventValidator) GetSupportedEventTypes() []string {
	types := make([]string, 0, len(v.schemas))
	for eventType := range v.schemas {
		types = append(types, eventType)
	}
	sort.Strings(types)
	return types
}

// ChannelAddress returns the address (topic) of a named channel.
func (v *EventValidator) ChannelAddress(channel string) (string, bool) {
	address, ok := v.channels[channel]
	return address, ok
}

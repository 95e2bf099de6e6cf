package runtime

import (
	"context"
	"fmt"
	"sync"

	"cosmossdk.io/core/event"

	"google.golang.org/protobuf/runtime/protoiface"
)

// EmittedEvent is one recorded event: its type and flattened attributes.
type EmittedEvent struct {
	Type       string
	Attributes []event.Attribute
}

// EventService is an in-memory core event service that records everything
// emitted through it. Tests assert against the recorded stream; a standalone
// engine can drain it for indexing.
type EventService struct {
	mu     sync.Mutex
	events []EmittedEvent
}

var (
	_ event.Service = (*EventService)(nil)
	_ event.Manager = (*EventService)(nil)
)

// NewEventService returns an empty recording event service.
func NewEventService() *EventService {
	return &EventService{}
}

// EventManager returns the recording manager.
func (s *EventService) EventManager(_ context.Context) event.Manager {
	return s
}

// Emit records a protobuf event by its Go type name.
func (s *EventService) Emit(ev protoiface.MessageV1) error {
	s.record(EmittedEvent{Type: fmt.Sprintf("%T", ev)})
	return nil
}

// EmitKV records a key-value event.
func (s *EventService) EmitKV(eventType string, attrs ...event.Attribute) error {
	copied := make([]event.Attribute, len(attrs))
	copy(copied, attrs)
	s.record(EmittedEvent{Type: eventType, Attributes: copied})
	return nil
}

// EmitNonConsensus records a protobuf event by its Go type name.
func (s *EventService) EmitNonConsensus(ev protoiface.MessageV1) error {
	return s.Emit(ev)
}

func (s *EventService) record(ev EmittedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Events returns a copy of every recorded event in emission order.
func (s *EventService) Events() []EmittedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EmittedEvent, len(s.events))
	copy(out, s.events)
	return out
}

// EventsOfType returns the recorded events with the given type.
func (s *EventService) EventsOfType(eventType string) []EmittedEvent {
	var out []EmittedEvent
	for _, ev := range s.Events() {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// Reset drops every recorded event.
func (s *EventService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

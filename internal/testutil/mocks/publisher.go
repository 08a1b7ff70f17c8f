package mocks

import (
	"context"
	"sync"

	"github.com/stridelab/wellness-challenges/internal/domain/event"
	"github.com/stridelab/wellness-challenges/internal/port/outbound/messaging"
)

// --- EventPublisher Mock ---

// EventPublisher is a mock implementation of messaging.EventPublisher.
type EventPublisher struct {
	mu sync.RWMutex

	// Published events in order
	Published []event.Event

	// Call tracking
	Calls struct {
		Publish    int
		PublishAll int
	}

	// Error injection
	Errors struct {
		Publish    error
		PublishAll error
	}
}

// NewEventPublisher creates a new mock EventPublisher.
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

func (m *EventPublisher) Publish(ctx context.Context, evt event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Publish++

	if m.Errors.Publish != nil {
		return m.Errors.Publish
	}

	m.Published = append(m.Published, evt)
	return nil
}

func (m *EventPublisher) PublishAll(ctx context.Context, events []event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.PublishAll++

	if m.Errors.PublishAll != nil {
		return m.Errors.PublishAll
	}

	m.Published = append(m.Published, events...)
	return nil
}

// PublishedCount returns how many events were published.
func (m *EventPublisher) PublishedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Published)
}

// --- ProgressPublisher Mock ---

// ProgressPublisher is a mock implementation of messaging.ProgressPublisher.
type ProgressPublisher struct {
	mu sync.RWMutex

	// Published events in order
	Published []event.ProgressSubmitted

	// Call tracking
	Calls struct {
		Publish int
	}

	// Error injection
	Errors struct {
		Publish error
	}
}

// NewProgressPublisher creates a new mock ProgressPublisher.
func NewProgressPublisher() *ProgressPublisher {
	return &ProgressPublisher{}
}

func (m *ProgressPublisher) Publish(ctx context.Context, evt event.ProgressSubmitted) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Publish++

	if m.Errors.Publish != nil {
		return m.Errors.Publish
	}

	m.Published = append(m.Published, evt)
	return nil
}

// Last returns the most recently published event, or nil when none.
func (m *ProgressPublisher) Last() *event.ProgressSubmitted {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.Published) == 0 {
		return nil
	}
	evt := m.Published[len(m.Published)-1]
	return &evt
}

// --- DeadLetterPublisher Mock ---

// DeadLetter records a single diverted delivery.
type DeadLetter struct {
	Payload []byte
	Reason  messaging.DeadLetterReason
	Cause   error
}

// DeadLetterPublisher is a mock implementation of messaging.DeadLetterPublisher.
type DeadLetterPublisher struct {
	mu sync.RWMutex

	// Diverted deliveries in order
	Diverted []DeadLetter

	// Call tracking
	Calls struct {
		PublishDeadLetter int
	}

	// Error injection
	Errors struct {
		PublishDeadLetter error
	}
}

// NewDeadLetterPublisher creates a new mock DeadLetterPublisher.
func NewDeadLetterPublisher() *DeadLetterPublisher {
	return &DeadLetterPublisher{}
}

func (m *DeadLetterPublisher) PublishDeadLetter(ctx context.Context, payload []byte, reason messaging.DeadLetterReason, cause error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.PublishDeadLetter++

	if m.Errors.PublishDeadLetter != nil {
		return m.Errors.PublishDeadLetter
	}

	m.Diverted = append(m.Diverted, DeadLetter{Payload: payload, Reason: reason, Cause: cause})
	return nil
}

// Package nats adapts the messaging ports onto NATS. Lifecycle events ride
// core NATS subjects; progress submissions ride a JetStream stream so that
// unacknowledged deliveries survive consumer restarts.
package nats

import (
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

const (
	// StreamName is the JetStream stream holding progress traffic.
	StreamName = "PROGRESS"

	// SubjectProgressSubmitted carries submissions from producers to the
	// consumer group.
	SubjectProgressSubmitted = "progress.submitted"

	// SubjectProgressDeadLetter collects deliveries that could not be
	// processed: unenrolled users, malformed payloads, exhausted retries.
	SubjectProgressDeadLetter = "progress.deadletter"

	// DurableConsumer names the shared consumer group; every consumer
	// process binds to it, so each message is delivered to exactly one.
	DurableConsumer = "progress-consumer"
)

// EnsureStream creates the progress stream if it does not already exist.
func EnsureStream(js nats.JetStreamContext) error {
	_, err := js.StreamInfo(StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{"progress.>"},
		Storage:  nats.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

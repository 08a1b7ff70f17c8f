// Package error defines the domain error taxonomy for the wellness service.
package error

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary mapping (HTTP status, ack/nack decisions).
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindUnavailable Kind = "unavailable"
	KindDomain      Kind = "domain"
)

// Code identifies a specific domain error.
type Code string

const (
	// Challenge errors
	CodeChallengeNotFound     Code = "CHALLENGE_NOT_FOUND"
	CodeChallengeIDRequired   Code = "CHALLENGE_ID_REQUIRED"
	CodeChallengeNameRequired Code = "CHALLENGE_NAME_REQUIRED"
	CodeChallengeDatesInvalid Code = "CHALLENGE_DATES_INVALID"

	// Participant errors
	CodeParticipantExists   Code = "PARTICIPANT_ALREADY_EXISTS"
	CodeParticipantNotFound Code = "PARTICIPANT_NOT_FOUND"
	CodeUserIDRequired      Code = "USER_ID_REQUIRED"

	// Pipeline errors
	CodeQueueUnavailable Code = "QUEUE_UNAVAILABLE"
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodeEventMalformed   Code = "EVENT_MALFORMED"
)

// Error is a domain error carrying a kind and a stable code.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches domain errors by code, so wrapped instances compare equal
// to their sentinel.
func (e *Error) Is(target error) bool {
	var de *Error
	if errors.As(target, &de) {
		return e.Code == de.Code
	}
	return false
}

// New creates a domain error.
func New(kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a copy of a sentinel domain error.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		cause:   cause,
	}
}

// KindOf returns the kind of err if it is a domain error, KindDomain otherwise.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindDomain
}

// Challenge errors
var (
	ErrChallengeNotFound = New(KindNotFound, CodeChallengeNotFound, "challenge not found")

	ErrChallengeIDRequired = New(KindValidation, CodeChallengeIDRequired, "challenge ID is required")

	ErrChallengeNameRequired = New(KindValidation, CodeChallengeNameRequired, "challenge name is required")

	ErrChallengeDatesInvalid = New(KindValidation, CodeChallengeDatesInvalid, "challenge start date must not be after end date")
)

// Participant errors
var (
	ErrParticipantExists = New(KindConflict, CodeParticipantExists, "user is already a participant of this challenge")

	ErrParticipantNotFound = New(KindNotFound, CodeParticipantNotFound, "participant not found")

	ErrUserIDRequired = New(KindValidation, CodeUserIDRequired, "user ID is required")
)

// Pipeline errors
var (
	ErrQueueUnavailable = New(KindUnavailable, CodeQueueUnavailable, "progress queue is unavailable")

	ErrStoreUnavailable = New(KindUnavailable, CodeStoreUnavailable, "store is unavailable")

	ErrEventMalformed = New(KindValidation, CodeEventMalformed, "progress event payload is malformed")
)

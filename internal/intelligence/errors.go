package intelligence

import (
	"errors"
	"fmt"
)

const (
	KindInvalidRequest       = "invalid_request"
	KindNotFound             = "not_found"
	KindReasoningUnavailable = "reasoning_unavailable"
	KindSchemaViolation      = "schema_violation"
	KindPersistenceFailure   = "persistence_failure"
)

// Error is the typed failure surfaced by the generation pipelines. The kind
// is preserved all the way to the caller; nothing is retried internally.
type Error struct {
	Kind    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewInvalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewReasoningUnavailable(err error) *Error {
	return &Error{Kind: KindReasoningUnavailable, Message: "reasoning engine call failed", Err: err}
}

func NewSchemaViolation(message string, err error) *Error {
	return &Error{Kind: KindSchemaViolation, Message: message, Err: err}
}

func NewPersistenceFailure(err error) *Error {
	return &Error{Kind: KindPersistenceFailure, Message: "store rejected the write", Err: err}
}

// KindOf returns the kind of a pipeline error, or "" for foreign errors.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

package internal

import (
	"errors"
	"fmt"
)

// ErrProgressEvent is returned when a progress event is offered for
// persistence. Progress events are live indicator updates only.
var ErrProgressEvent = errors.New("progress events cannot be appended to history")

// FrameError represents a single malformed stream frame. Recoverable: the
// frame is dropped and the stream continues.
type FrameError struct {
	Frame string
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame error: %v", e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// TransportError represents a network or stream failure. It aborts the
// current stream; transcript already persisted is kept.
type TransportError struct {
	Op  string // "create", "stream", "delete", "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error [%s]: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendError represents a non-success result from the backend
// (create/stream/delete returned an explicit failure).
type BackendError struct {
	Op      string
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend rejected %s: %s", e.Op, e.Message)
}

// UnknownSessionError is returned by the store for operations on a session
// id it has no record of.
type UnknownSessionError struct {
	ID string
}

func (e *UnknownSessionError) Error() string {
	return fmt.Sprintf("unknown session: %s", e.ID)
}

// DuplicateSessionError is returned by the store when creating a session
// whose id already exists.
type DuplicateSessionError struct {
	ID string
}

func (e *DuplicateSessionError) Error() string {
	return fmt.Sprintf("duplicate session: %s", e.ID)
}

// StateError represents an operation rejected by the controller state
// machine, e.g. starting a new analysis while a stream is in flight.
type StateError struct {
	Op    string
	State ControllerState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

// StoreError represents errors accessing the backing database.
type StoreError struct {
	Op  string // "open", "read", "write"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during report export.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s]: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Package persistence converts ledgers to and from their JSON document and
// reads or writes that document as a whole file.
package persistence

import (
	"errors"
	"fmt"
)

// Persistence error kinds. Match them with errors.Is.
var (
	ErrParse    = errors.New("malformed ledger data")
	ErrNotFound = errors.New("ledger source not found")
	ErrWrite    = errors.New("ledger destination not writable")
)

// ParseError reports structurally invalid persisted data.
type ParseError struct {
	Err    error
	Reason string
	// Index is the position of the offending transaction, or -1 when the
	// problem is with the document itself.
	Index int
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("transaction at index %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrParse, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NotFoundError reports a missing or unreadable source.
type NotFoundError struct {
	Err  error
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrNotFound, e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// WriteError reports a destination that could not be written.
type WriteError struct {
	Err  error
	Path string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrWrite, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is matches ErrWrite.
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

func documentError(reason string, err error) error {
	return &ParseError{Reason: reason, Index: -1, Err: err}
}

func recordError(index int, reason string, err error) error {
	return &ParseError{Reason: reason, Index: index, Err: err}
}

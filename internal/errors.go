package internal

import (
	"errors"
	"fmt"
)

// ErrEmptyExport is returned when an export parses but holds no usable conversation
var ErrEmptyExport = errors.New("export contains no conversations with valid messages")

// SchemaError represents a malformed top-level export structure
type SchemaError struct {
	Path   string // key path, e.g. "Direct Message > Direct Messages > ChatHistory"
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error at %q: %s", e.Path, e.Reason)
}

// ParseError represents errors parsing data
type ParseError struct {
	Source string // "json", "timestamp"
	Key    string // offending key or raw value
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a single message record that was dropped
type ValidationError struct {
	Partner string
	Index   int
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid message [%s #%d]: %s", e.Partner, e.Index, e.Reason)
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

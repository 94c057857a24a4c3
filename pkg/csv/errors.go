// Package csv provides error types for CSV parsing.
package csv

import (
	"errors"

	"github.com/shapestone/gridcsv/internal/parser"
)

// MalformedInputError reports content right after a closed quoted field
// where a separator was expected. Its message has the form
//
//	Expecting ',' but found '<char><rest of the line>'
//
// Line and Column are set when the source tracks positions.
type MalformedInputError = parser.MalformedInputError

// Common errors
var (
	// ErrInvalidSeparator indicates a separator that cannot delimit fields.
	ErrInvalidSeparator = parser.ErrInvalidSeparator

	// ErrUnknownEncoding indicates an encoding name that is not supported.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrNotGrid indicates an AST that is not an array of arrays of literals.
	ErrNotGrid = errors.New("node is not a grid")
)

// SourceIOError reports a failure of the character source: opening a file,
// reading from it, or decoding its bytes. The parser never interprets these
// failures; the underlying error is available through Unwrap.
type SourceIOError struct {
	// Op is the failed operation: "open", "read" or "close".
	Op string
	// Path is the file path, if the source is a file.
	Path string
	// Err is the underlying error.
	Err error
}

// Error returns the operation, path and cause.
func (e *SourceIOError) Error() string {
	if e.Path == "" {
		return "csv: " + e.Op + ": " + e.Err.Error()
	}
	return "csv: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *SourceIOError) Unwrap() error {
	return e.Err
}

package bperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a document could not be read or decoded.
	ErrParse = errors.New("parse error")

	// ErrReference indicates an extends or import reference failed to resolve.
	ErrReference = errors.New("reference error")

	// ErrReferenceNotFound indicates a reference resolved to no physical location.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrCycleDetected indicates an extends or import chain revisited an active location.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrPathTraversal indicates a reference tried to escape its layer root.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrMalformedDirective indicates a directive value had an unusable shape.
	ErrMalformedDirective = errors.New("malformed directive")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to read or decode a blueprint document.
type ParseError struct {
	// Path is the physical location or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve an extends or import reference.
// This includes missing documents, cycles, and path traversal attempts.
type ReferenceError struct {
	// Ref is the reference as written in the directive (or the document name)
	Ref string
	// Directive is the logical directive name: "extends", "import", or "" for the root document
	Directive string
	// Location is the resolved logical or physical location, when known
	Location string
	// Chain lists the active locations leading to the failure, outermost first
	Chain []string
	// IsNotFound is true if the reference resolved to no physical location
	IsNotFound bool
	// IsCircular is true if this error is due to a reference cycle
	IsCircular bool
	// IsPathTraversal is true if this error is due to a path traversal attempt
	IsPathTraversal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	switch {
	case e.IsCircular:
		msg = "cycle detected"
	case e.IsPathTraversal:
		msg = "path traversal detected"
	case e.IsNotFound:
		msg = "reference not found"
	}
	if e.Directive != "" {
		msg += " in " + e.Directive
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Location != "" && e.Location != e.Ref {
		msg += " (" + e.Location + ")"
	}
	if len(e.Chain) > 0 {
		msg += ": " + strings.Join(e.Chain, " -> ")
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCycleDetected, ErrPathTraversal or
// ErrReferenceNotFound when the corresponding flag is set.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrCycleDetected:
		return e.IsCircular
	case ErrPathTraversal:
		return e.IsPathTraversal
	case ErrReferenceNotFound:
		return e.IsNotFound
	}
	return false
}

// DirectiveError represents a directive value that is neither a string, an
// object with a string "type", nor a list of those.
type DirectiveError struct {
	// Key is the directive key as written (e.g., "@import", "extends@")
	Key string
	// Index is the position of the entry inside a list value, or -1
	Index int
	// Value is the offending value (may be nil)
	Value any
	// Message describes what is wrong with the value
	Message string
}

// Error returns a human-readable error message.
func (e *DirectiveError) Error() string {
	msg := "malformed directive"
	if e.Key != "" {
		msg += " " + e.Key
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf("[%d]", e.Index)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *DirectiveError) Is(target error) bool {
	return target == ErrMalformedDirective
}

// Resource names a bounded quantity.
type Resource string

// Bounded resources.
const (
	// ResourceChainDepth is the number of documents being resolved at once
	// along one extends/import path.
	ResourceChainDepth Resource = "chain_depth"
	// ResourceFileSize is the byte size of one document.
	ResourceFileSize Resource = "file_size"
)

// ResourceLimitError reports that resolving or reading a document went past
// a configured bound.
type ResourceLimitError struct {
	Resource Resource
	// Limit is the configured maximum.
	Limit int64
	// Actual is the value reached, 0 when unknown.
	Actual int64
	// Location is the reference or file being processed.
	Location string
}

func (e *ResourceLimitError) Error() string {
	msg := fmt.Sprintf("resource limit exceeded: %s", e.Resource)
	if e.Actual > 0 {
		msg += fmt.Sprintf(" %d > %d", e.Actual, e.Limit)
	} else {
		msg += fmt.Sprintf(" over %d", e.Limit)
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError reports an invalid option value, or an input that is missing
// or given more than once.
type ConfigError struct {
	// Option is the flag, setting or option function at fault.
	Option string
	// Value is the offending value, empty when the option was missing.
	Value string
	// Message says what was expected.
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	msg := "invalid configuration"
	if e.Option != "" {
		msg = "invalid " + e.Option
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

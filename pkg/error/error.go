package error

import (
	"fmt"
	"runtime"
	"strings"
)

// ErrorCategory classifies errors by their nature and appropriate handling strategy.
// Every failure raised by the type and catalog core is a deterministic function
// of its input, so nothing here is ever retried internally.
type ErrorCategory int

const (
	// ErrCategoryUser represents errors caused by invalid input.
	// Examples: unknown column name, mismatched reference keys, unresolved signature.
	// These errors are fixable by changing the schema or the request.
	ErrCategoryUser ErrorCategory = iota

	// ErrCategorySystem represents errors requiring operator intervention.
	// Examples: unreadable configuration or catalog definition files.
	ErrCategorySystem

	// ErrCategoryIntegrity represents violations of catalog structure rules.
	// Examples: a wrong object kind placed in a typed container.
	ErrCategoryIntegrity
)

// SchemaError is a failure raised while building, resolving or emitting
// catalog objects.
type SchemaError struct {
	// Code identifies the failure, e.g. "COLUMN_NOT_FOUND".
	Code string

	// Category classifies the error.
	Category ErrorCategory

	// Message is the human-readable description.
	Message string

	// Detail provides additional context about the specific error instance.
	// Example: "column 'Orders.ID'" where Message might be "column not found".
	Detail string

	// Hint suggests how the user might fix or work around this error.
	// Example: "qualify the column name with its table".
	Hint string

	// Operation names the function that raised the error.
	// Examples: "GetIndexOfColumn", "Resolve", "SetKeys".
	Operation string

	// Component names the type or package that raised it.
	// Examples: "Columns", "Signature", "Reference", "EmissionContext".
	Component string

	// Cause is the wrapped error, if any.
	Cause error

	// Stack is captured by New and Wrap.
	Stack []uintptr
}

// New creates an error and captures the caller's stack.
func New(category ErrorCategory, code, message string) *SchemaError {
	err := &SchemaError{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
	return err
}

// WithDetail sets the detail text and returns the error for chaining.
func (e *SchemaError) WithDetail(detail string) *SchemaError {
	e.Detail = detail
	return e
}

// WithHint sets the hint text and returns the error for chaining.
func (e *SchemaError) WithHint(hint string) *SchemaError {
	e.Hint = hint
	return e
}

// In records where the error was raised and returns the error for chaining.
func (e *SchemaError) In(operation, component string) *SchemaError {
	e.Operation = operation
	e.Component = component
	return e
}

// Wrap turns err into a SchemaError with the given code. An err that is
// already a SchemaError keeps its code and only gains the location fields
// it lacks.
func Wrap(err error, code, operation, component string) *SchemaError {
	if err == nil {
		return nil
	}

	if schemaErr, ok := err.(*SchemaError); ok {
		if schemaErr.Operation == "" {
			schemaErr.Operation = operation
		}
		if schemaErr.Component == "" {
			schemaErr.Component = component
		}
		return schemaErr
	}

	return &SchemaError{
		Code:      code,
		Category:  ErrCategorySystem,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// captureStack skips runtime.Callers, captureStack and New or Wrap.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error formats as
//
//	[CODE] Message: Detail (operation: Op, component: Comp) caused by: cause
func (e *SchemaError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Unwrap returns the cause so errors.Is and errors.As see through.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// FormatStack renders the captured stack, one frame per entry.
func (e *SchemaError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		b.WriteString(fmt.Sprintf("  %s\n    %s:%d\n",
			f.Function, f.File, f.Line))
		if !more {
			break
		}
	}

	return b.String()
}

// Package errors provides a lightweight structured error type (BuildError)
// for category-based classification of site generation failures in the
// render engine, the generator and the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the kind of failure for classification.
type ErrorCategory string

const (
	// Template resolution and rendering
	CategoryTemplateNotFound    ErrorCategory = "template_not_found"
	CategoryTemplateFileMissing ErrorCategory = "template_file_missing"
	CategoryTemplateRender      ErrorCategory = "template_render"

	// Content loading
	CategoryContentFileMissing ErrorCategory = "content_file_missing"
	CategoryFrontMatterParse   ErrorCategory = "front_matter_parse"
	CategoryMarkdown           ErrorCategory = "markdown_conversion"

	// Filesystem
	CategoryOutputWrite          ErrorCategory = "output_write"
	CategoryDirectoryEnumeration ErrorCategory = "directory_enumeration"

	// Setup and everything else
	CategoryConfig   ErrorCategory = "config"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the run
	SeverityError   ErrorSeverity = "error"   // Fails one task or file
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded output
)

// BuildError is a structured error with category, severity and context
type BuildError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BuildError
type ContextFields map[string]any

// Error implements the error interface
func (e *BuildError) Error() string {
	msg := e.Message
	if tpl, ok := e.Context["template"]; ok {
		msg = fmt.Sprintf("%s [template=%v]", msg, tpl)
	}
	if path, ok := e.Context["path"]; ok {
		msg = fmt.Sprintf("%s [path=%v]", msg, path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, msg, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, msg)
}

// Unwrap implements error unwrapping
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BuildError) WithContext(key string, value any) *BuildError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BuildError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BuildError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BuildError {
	return &BuildError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost BuildError in err's chain.
func As(err error) (*BuildError, bool) {
	var be *BuildError
	if stderrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsCategory checks if an error (or anything it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}
	if be, ok := err.(*BuildError); ok && be.Category == category {
		return true
	}
	switch x := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if IsCategory(e, category) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return IsCategory(x.Unwrap(), category)
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BuildError
func GetCategory(err error) ErrorCategory {
	if be, ok := As(err); ok {
		return be.Category
	}
	return CategoryInternal
}

package errors

import (
	"fmt"
	"strings"
)

// Convenience functions for the failure kinds of a generation run.

// Templates

// TemplateNotFound reports a lookup miss. known lists the names the store
// does hold and is included in the message.
func TemplateNotFound(name string, known ...string) *BuildError {
	msg := "template not found"
	if len(known) > 0 {
		msg = fmt.Sprintf("%s (available: %s)", msg, strings.Join(known, ", "))
	}
	return New(CategoryTemplateNotFound, SeverityFatal, msg).
		WithContext("template", name)
}

func TemplateFileMissing(name, path string, cause error) *BuildError {
	return Wrap(cause, CategoryTemplateFileMissing, SeverityFatal, "template file could not be read").
		WithContext("template", name).
		WithContext("path", path)
}

func TemplateRender(name string, cause error) *BuildError {
	return Wrap(cause, CategoryTemplateRender, SeverityFatal, "template rendering failed").
		WithContext("template", name)
}

// Content

func ContentFileMissing(path string, cause error) *BuildError {
	return Wrap(cause, CategoryContentFileMissing, SeverityFatal, "content file could not be read").
		WithContext("path", path)
}

func FrontMatterParse(path string, cause error) *BuildError {
	return Wrap(cause, CategoryFrontMatterParse, SeverityFatal, "front matter could not be parsed").
		WithContext("path", path)
}

func MarkdownConversion(path string, cause error) *BuildError {
	return Wrap(cause, CategoryMarkdown, SeverityFatal, "markdown conversion failed").
		WithContext("path", path)
}

// Filesystem

func OutputWrite(path string, cause error) *BuildError {
	return Wrap(cause, CategoryOutputWrite, SeverityFatal, "output could not be written").
		WithContext("path", path)
}

func DirectoryEnumeration(path string, cause error) *BuildError {
	return Wrap(cause, CategoryDirectoryEnumeration, SeverityFatal, "directory could not be listed").
		WithContext("path", path)
}

// Setup

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found: "+path).
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BuildError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf("invalid %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}

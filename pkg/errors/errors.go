// Package errors provides the unified error type and factory functions for the
// solhycool visualization pipeline.  Every layer (domain, application,
// infrastructure, interfaces) uses AppError as the single carrier for
// structured error information so that the pipeline can decide, from the code
// alone, whether a failure aborts one diagram, one aggregation pass, or nothing.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and New/Wrap).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// AppError: the canonical error type
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout the pipeline.
// It satisfies the standard error interface and supports error wrapping so
// that errors.Is / errors.As / errors.Unwrap work across all layers.
//
// Usage:
//
//	return errors.TemplateMismatch("fan_dc")
//	return errors.Wrap(err, errors.ErrCodeIO, "failed to write results.json")
type AppError struct {
	// Code is the typed error code that identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description of the error.
	Message string

	// Detail carries supplementary context (file names, cell ids, bounds).
	Detail string

	// Cause is the underlying error that triggered this AppError.
	Cause error

	// Stack contains the call-stack captured at the point of error creation.
	// It is not part of Error() output.
	Stack string
}

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>: <cause>"; empty segments are omitted.
func (e *AppError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", e.Code.String(), e.Message)
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a shallow copy of the receiver with Detail set.
// It is safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// ─────────────────────────────────────────────────────────────────────────────
// Primary factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error.
// If err is nil, Wrap returns nil.  Callers returning the result through an
// `error` interface must check err first to avoid a typed-nil interface.
//
// When err is already an *AppError and code is ErrCodeUnknown the original
// code is preserved.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == ErrCodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Domain constructors
// ─────────────────────────────────────────────────────────────────────────────

// TemplateMismatch reports that a required cell id resolved to zero (or more
// than one) element in the diagram template.
func TemplateMismatch(cellID string) *AppError {
	return &AppError{
		Code:    ErrCodeTemplateMismatch,
		Message: DefaultMessage(ErrCodeTemplateMismatch),
		Detail:  "cell-" + cellID,
		Stack:   captureStack(1),
	}
}

// InvalidRange reports a zero-width normalization domain.
func InvalidRange(min, max float64) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidRange,
		Message: DefaultMessage(ErrCodeInvalidRange),
		Detail:  fmt.Sprintf("min=%g max=%g", min, max),
		Stack:   captureStack(1),
	}
}

// MalformedFilename reports a result file that does not follow the
// ptop_<condition>_<point>.json convention.
func MalformedFilename(name string) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedFilename,
		Message: DefaultMessage(ErrCodeMalformedFilename),
		Detail:  name,
		Stack:   captureStack(1),
	}
}

// MissingIndexFile reports that the consolidated index does not exist yet.
func MissingIndexFile(path string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingIndexFile,
		Message: DefaultMessage(ErrCodeMissingIndexFile),
		Detail:  path,
		Stack:   captureStack(1),
	}
}

// MissingVariable reports a variable the diagram needs that the record lacks.
func MissingVariable(group, name string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingVariable,
		Message: DefaultMessage(ErrCodeMissingVariable),
		Detail:  group + "." + name,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		if ae != nil {
			err = ae.Cause
			ae = nil
			continue
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the ErrorCode from the first *AppError found in err's chain.
// If no *AppError is present, ErrCodeUnknown is returned.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrCodeUnknown
}

// IsTemplateMismatch reports whether err carries ErrCodeTemplateMismatch.
func IsTemplateMismatch(err error) bool { return IsCode(err, ErrCodeTemplateMismatch) }

// IsInvalidRange reports whether err carries ErrCodeInvalidRange.
func IsInvalidRange(err error) bool { return IsCode(err, ErrCodeInvalidRange) }

// IsMalformedFilename reports whether err carries ErrCodeMalformedFilename.
func IsMalformedFilename(err error) bool { return IsCode(err, ErrCodeMalformedFilename) }

// IsMissingIndexFile reports whether err carries ErrCodeMissingIndexFile.
func IsMissingIndexFile(err error) bool { return IsCode(err, ErrCodeMissingIndexFile) }

// IsDiagramScoped reports whether err only invalidates the diagram being
// rendered, so a batch may continue with the next operating point.
func IsDiagramScoped(err error) bool {
	for _, code := range []ErrorCode{
		ErrCodeTemplateMismatch,
		ErrCodeInvalidRange,
		ErrCodeMissingVariable,
		ErrCodeAssetUnavailable,
	} {
		if IsCode(err, code) {
			return true
		}
	}
	return false
}

// Is is a re-export of the standard library errors.Is.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is a re-export of the standard library errors.As.
func As(err error, target interface{}) bool { return errors.As(err, target) }

//Personal.AI order the ending

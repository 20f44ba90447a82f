// Package errors provides the structured error taxonomy of the brief
// generation pipeline.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeValidationFailed: required request fields missing. Surfaced
	// to the caller, never retried.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// ErrCodeSourceUnavailable: a data provider timed out, errored,
	// returned an unusable schema, or returned nothing. Always recovered
	// locally via fallback synthesis.
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"

	// ErrCodeSourceQuotaExceeded: the provider's quota, billing limit, or
	// our own daily call budget was hit. Recovered like SourceUnavailable.
	ErrCodeSourceQuotaExceeded ErrorCode = "SOURCE_QUOTA_EXCEEDED"

	// ErrCodeNarrativeFailed: the language-model call failed. The only
	// fatal pipeline error.
	ErrCodeNarrativeFailed ErrorCode = "NARRATIVE_GENERATION_FAILED"

	ErrCodeBriefNotFound ErrorCode = "BRIEF_NOT_FOUND"

	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a non-retryable validation error listing the
// missing request fields in Details.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Missing required fields",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceUnavailableError wraps a provider failure for one source.
func NewSourceUnavailableError(source string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   fmt.Sprintf("Source '%s' unavailable", source),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceEmptyError marks a provider call that succeeded but returned
// nothing usable. Treated exactly like an unavailable source.
func NewSourceEmptyError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   fmt.Sprintf("Source '%s' returned no usable results", source),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuotaExceededError marks an exhausted provider quota or call budget.
func NewQuotaExceededError(source, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceQuotaExceeded,
		Message:   fmt.Sprintf("Source '%s' quota exceeded", source),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNarrativeError wraps a language-model failure.
func NewNarrativeError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeNarrativeFailed,
		Message:   "Narrative generation failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBriefNotFoundError reports an unknown brief ID.
func NewBriefNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBriefNotFound,
		Message:   "Brief not found",
		Details:   fmt.Sprintf("briefId: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError wraps a storage collaborator failure.
func NewStoreUnavailableError(store string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   fmt.Sprintf("Store '%s' unavailable", store),
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the ErrorCode from err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsSourceError reports whether err is a recoverable source failure, the
// branch where the orchestrator switches to synthesized fallback data.
func IsSourceError(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeSourceUnavailable || code == ErrCodeSourceQuotaExceeded
}
